package pipeline

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/profile-harvester/internal/types"
)

// RunParallel processes the targets across len(procs) workers, each holding
// exclusive ownership of its own processor (and therefore its own session).
// Targets are split into contiguous disjoint chunks and results are written
// back by original input index, so ordering and positional correspondence are
// preserved exactly as in the sequential run.
func RunParallel(ctx context.Context, targets []string, procs []Processor, delay time.Duration, log *logrus.Entry) types.BatchResult {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if len(procs) == 0 {
		results := make(types.BatchResult, 0, len(targets))
		for _, target := range targets {
			results = append(results, failedRecord(target, "session", "no workers available"))
		}
		return results
	}
	if len(procs) == 1 {
		return NewRunner(procs[0], delay, log).Run(ctx, targets)
	}

	results := make(types.BatchResult, len(targets))
	chunk := (len(targets) + len(procs) - 1) / len(procs)

	var g errgroup.Group
	for w, proc := range procs {
		start := w * chunk
		if start >= len(targets) {
			break
		}
		end := min(start+chunk, len(targets))

		runner := NewRunner(proc, delay, log.WithField("worker", w))
		g.Go(func() error {
			part := runner.Run(ctx, targets[start:end])
			copy(results[start:end], part)
			return nil
		})
	}
	// Workers never return errors; failures are already data on the records.
	_ = g.Wait()

	return results
}
