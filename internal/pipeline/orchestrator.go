// Package pipeline runs the per-target state machine and the batch loop
// around it. Its central contract is containment: no failure on one target or
// one section ever crosses to another, and the batch always produces exactly
// one record per input target.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/profile-harvester/internal/extraction"
	"github.com/jonathan/profile-harvester/internal/types"
)

// Navigator loads a target in the shared session and classifies the result.
// The error return is reserved for unrecoverable driver faults.
type Navigator interface {
	Load(ctx context.Context, target string) (types.PageState, error)
}

// Orchestrator turns one target into one ProfileRecord:
// navigate, snapshot, run every section extractor, aggregate.
type Orchestrator struct {
	nav Navigator
	log *logrus.Entry

	// extract runs the section extractors against one snapshot. Tests
	// substitute it to drive the status aggregation directly.
	extract func(doc *goquery.Document, rec *types.ProfileRecord) []extraction.Verdict
}

// NewOrchestrator returns an orchestrator using nav for page loads.
func NewOrchestrator(nav Navigator, log *logrus.Entry) *Orchestrator {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Orchestrator{nav: nav, log: log, extract: extraction.ExtractAll}
}

// Process produces the record for one target. It never panics and never
// returns an extraction failure as an error: everything that goes wrong below
// the driver level becomes data on the record. The error return mirrors the
// Navigator contract and is non-nil only when the browser itself is gone.
func (o *Orchestrator) Process(ctx context.Context, target string) (types.ProfileRecord, error) {
	rec := types.NewProfileRecord(target)
	log := o.log.WithField("target", target)

	state, navErr := o.nav.Load(ctx, target)
	log.WithFields(logrus.Fields{
		"status": state.Status,
		"reason": state.Reason,
	}).Info("navigation outcome")

	if state.Status != types.PageReady {
		rec.Status = types.StatusFailed
		rec.Errors = append(rec.Errors, types.SectionError{
			Section: "navigation",
			Reason:  navigationReason(state),
		})
		return rec, navErr
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(state.HTML))
	if err != nil {
		rec.Status = types.StatusFailed
		rec.Errors = append(rec.Errors, types.SectionError{
			Section: "content",
			Reason:  fmt.Sprintf("parsing snapshot: %v", err),
		})
		return rec, navErr
	}

	verdicts := o.extract(doc, &rec)

	var succeeded, failed int
	for _, v := range verdicts {
		entry := log.WithFields(logrus.Fields{"section": v.Section, "verdict": v.Status})
		switch v.Status {
		case types.SectionFailed:
			failed++
			rec.Errors = append(rec.Errors, types.SectionError{Section: v.Section, Reason: v.Reason})
			entry.WithField("reason", v.Reason).Warn("section extraction failed")
		default:
			// Absent due to a genuinely missing section is not an error.
			succeeded++
			entry.Debug("section extracted")
		}
	}

	switch {
	case failed == 0:
		rec.Status = types.StatusSuccess
	case succeeded > 0:
		rec.Status = types.StatusPartial
	default:
		rec.Status = types.StatusFailed
	}

	log.WithField("status", rec.Status).Info("target processed")
	return rec, navErr
}

func navigationReason(state types.PageState) string {
	if state.Reason != "" {
		return fmt.Sprintf("%s: %s", state.Status, state.Reason)
	}
	return string(state.Status)
}
