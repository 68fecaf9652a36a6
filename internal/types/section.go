// Package types defines the data model shared across the scraping pipeline.
package types

// SectionStatus is the verdict category for one section on one profile.
type SectionStatus string

const (
	// SectionPresent means a strategy located the section and extracted a value.
	SectionPresent SectionStatus = "present"
	// SectionAbsent means the page genuinely has no such section.
	SectionAbsent SectionStatus = "absent"
	// SectionFailed means every located strategy errored while parsing.
	SectionFailed SectionStatus = "failed"
)

// SectionResult is an extractor's verdict for one section.
// Value is only meaningful when Status is SectionPresent; Reason is only
// populated when Status is SectionFailed.
type SectionResult[T any] struct {
	Status SectionStatus
	Value  T
	Reason string
}

// Present wraps an extracted value.
func Present[T any](value T) SectionResult[T] {
	return SectionResult[T]{Status: SectionPresent, Value: value}
}

// Absent reports that the page has no such section. This is not an error.
func Absent[T any]() SectionResult[T] {
	return SectionResult[T]{Status: SectionAbsent}
}

// Failed reports that extraction errored. Distinct from Absent so callers can
// log and count it differently from a legitimately missing section.
func Failed[T any](reason string) SectionResult[T] {
	return SectionResult[T]{Status: SectionFailed, Reason: reason}
}

// IsPresent reports whether the section yielded a value.
func (r SectionResult[T]) IsPresent() bool { return r.Status == SectionPresent }

// IsFailed reports whether extraction errored.
func (r SectionResult[T]) IsFailed() bool { return r.Status == SectionFailed }
