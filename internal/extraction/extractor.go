// Package extraction turns a parsed profile page into structured section
// values. Every extractor is a pure function over a goquery document: it owns
// an ordered list of locating strategies for the page layouts we know about
// and returns the first strategy's non-absent result.
package extraction

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/profile-harvester/internal/types"
)

// Strategy is one way of locating a section on a page. Locate returns the
// extracted value, whether the section was found, and any parsing fault.
type Strategy[T any] struct {
	Name   string
	Locate func(doc *goquery.Document) (T, bool, error)
}

// Cascade tries each strategy in order and returns the first Present result.
// A strategy that errors is recorded and the remaining strategies are still
// tried; the section only counts as Failed when at least one strategy errored
// and none succeeded. If every strategy simply finds nothing, the section is
// Absent.
func Cascade[T any](doc *goquery.Document, strategies []Strategy[T]) types.SectionResult[T] {
	var faults []string
	for _, s := range strategies {
		value, found, err := tryStrategy(doc, s)
		if err != nil {
			faults = append(faults, fmt.Sprintf("%s: %v", s.Name, err))
			continue
		}
		if found {
			return types.Present(value)
		}
	}
	if len(faults) > 0 {
		return types.Failed[T](strings.Join(faults, "; "))
	}
	return types.Absent[T]()
}

// tryStrategy runs one strategy, converting a panic inside the locator into an
// ordinary error so a misbehaving selector never escapes the section boundary.
func tryStrategy[T any](doc *goquery.Document, s Strategy[T]) (value T, found bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			value, found, err = zero, false, fmt.Errorf("panic: %v", r)
		}
	}()
	return s.Locate(doc)
}

// cleanText collapses the whitespace goquery keeps from the markup.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
