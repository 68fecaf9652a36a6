package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/profile-harvester/internal/types"
)

// Processor produces the record for one target. *Orchestrator is the real
// implementation; tests substitute fakes.
type Processor interface {
	Process(ctx context.Context, target string) (types.ProfileRecord, error)
}

// Runner iterates the target list strictly in input order against one shared
// session. One logical worker is deliberate: concurrent requests from a
// single identity raise the detection risk, and readiness waiting blocks one
// browser context anyway.
type Runner struct {
	proc Processor
	// delay is the politeness pause between consecutive targets.
	delay time.Duration
	log   *logrus.Entry
}

// NewRunner returns a runner that processes targets with proc, pausing delay
// between consecutive targets.
func NewRunner(proc Processor, delay time.Duration, log *logrus.Entry) *Runner {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Runner{proc: proc, delay: delay, log: log}
}

// Run processes every target and always returns exactly one record per input
// target, in input order. Failures are isolated per target: a panic or fatal
// driver fault substitutes a Failed record for that target, and a fatal fault
// additionally marks all remaining targets Failed since the session cannot be
// recreated mid-batch.
func (r *Runner) Run(ctx context.Context, targets []string) types.BatchResult {
	results := make(types.BatchResult, 0, len(targets))

	fatal := false
	var fatalReason string

	for i, target := range targets {
		if fatal {
			results = append(results, failedRecord(target, "session", fatalReason))
			continue
		}

		rec, err := r.processContained(ctx, target)
		results = append(results, rec)

		if err != nil {
			fatal = true
			fatalReason = fmt.Sprintf("browser session lost: %v", err)
			r.log.WithField("target", target).WithError(err).
				Error("unrecoverable driver fault, failing remaining targets")
			continue
		}

		if r.delay > 0 && i < len(targets)-1 {
			select {
			case <-time.After(r.delay):
			case <-ctx.Done():
			}
		}
	}

	return results
}

// processContained guards the per-target boundary: whatever escapes the
// orchestrator, including a panic, becomes a Failed record here.
func (r *Runner) processContained(ctx context.Context, target string) (rec types.ProfileRecord, err error) {
	defer func() {
		if p := recover(); p != nil {
			r.log.WithField("target", target).Errorf("panic while processing: %v", p)
			rec = failedRecord(target, "internal", fmt.Sprintf("panic: %v", p))
			err = nil
		}
	}()
	return r.proc.Process(ctx, target)
}

// failedRecord builds the all-sections-empty substitute for a target that
// never produced a usable record.
func failedRecord(target, section, reason string) types.ProfileRecord {
	rec := types.NewProfileRecord(target)
	rec.Status = types.StatusFailed
	rec.Errors = append(rec.Errors, types.SectionError{Section: section, Reason: reason})
	return rec
}
