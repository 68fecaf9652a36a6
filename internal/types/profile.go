package types

// RecordStatus summarizes how extraction went for one target.
type RecordStatus string

const (
	// StatusSuccess means every section is Present or Absent with no failures.
	StatusSuccess RecordStatus = "success"
	// StatusPartial means at least one section succeeded and at least one failed.
	StatusPartial RecordStatus = "partial"
	// StatusFailed means the page never reached Ready, or no section survived.
	StatusFailed RecordStatus = "failed"
)

// SectionError records one per-section or navigation failure on a record.
type SectionError struct {
	Section string `json:"section"`
	Reason  string `json:"reason"`
}

// ProfileRecord is the aggregated structured output for one target. It is
// created once per target by the orchestrator and immutable once returned.
// Mapping-valued fields are always non-nil so they serialize as {} rather than
// null when a section is absent or failed.
type ProfileRecord struct {
	Target         string            `json:"target"`
	Name           string            `json:"name"`
	Bio            string            `json:"bio"`
	Socials        map[string]string `json:"socials"`
	Experience     map[string]string `json:"experience"`
	Education      map[string]string `json:"education"`
	Certifications map[string]string `json:"certifications"`
	Projects       map[string]string `json:"projects"`
	Status         RecordStatus      `json:"status"`
	Errors         []SectionError    `json:"errors,omitempty"`
}

// NewProfileRecord returns a record for target with every mapping initialized
// to an empty, non-nil map.
func NewProfileRecord(target string) ProfileRecord {
	return ProfileRecord{
		Target:         target,
		Socials:        map[string]string{},
		Experience:     map[string]string{},
		Education:      map[string]string{},
		Certifications: map[string]string{},
		Projects:       map[string]string{},
	}
}

// BatchResult is the ordered collection of records for a full run, one per
// input target and in the same order as the input.
type BatchResult []ProfileRecord
