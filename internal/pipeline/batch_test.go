package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/profile-harvester/internal/types"
)

// fakeProcessor returns canned records and can panic or fail on demand.
type fakeProcessor struct {
	records   map[string]types.ProfileRecord
	fatalOn   string
	panicOn   string
	processed []string
}

func (f *fakeProcessor) Process(_ context.Context, target string) (types.ProfileRecord, error) {
	f.processed = append(f.processed, target)
	if target == f.panicOn {
		panic("extractor exploded")
	}
	if target == f.fatalOn {
		return failedRecord(target, "navigation", "browser closed"), errors.New("browser process exited")
	}
	if rec, ok := f.records[target]; ok {
		return rec, nil
	}
	rec := types.NewProfileRecord(target)
	rec.Status = types.StatusSuccess
	return rec, nil
}

func TestRun_OneRecordPerTargetInInputOrder(t *testing.T) {
	targets := []string{"/in/c", "/in/a", "/in/b"}
	runner := NewRunner(&fakeProcessor{}, 0, nil)

	results := runner.Run(context.Background(), targets)

	require.Len(t, results, len(targets))
	for i, target := range targets {
		assert.Equal(t, target, results[i].Target)
	}
}

func TestRun_SpecScenario_AliceSucceedsBobBlocked(t *testing.T) {
	alice := types.NewProfileRecord("/in/alice")
	alice.Bio = "ML Engineer"
	alice.Experience["Google"] = "ML Engineer"
	alice.Status = types.StatusSuccess

	bob := types.NewProfileRecord("/in/bob")
	bob.Status = types.StatusFailed
	bob.Errors = append(bob.Errors, types.SectionError{Section: "navigation", Reason: "blocked"})

	runner := NewRunner(&fakeProcessor{records: map[string]types.ProfileRecord{
		"/in/alice": alice,
		"/in/bob":   bob,
	}}, 0, nil)

	results := runner.Run(context.Background(), []string{"/in/alice", "/in/bob"})

	require.Len(t, results, 2)
	assert.Equal(t, types.StatusSuccess, results[0].Status)
	assert.Equal(t, "ML Engineer", results[0].Bio)
	assert.Equal(t, map[string]string{"Google": "ML Engineer"}, results[0].Experience)

	assert.Equal(t, types.StatusFailed, results[1].Status)
	assert.Empty(t, results[1].Experience)
	assert.Empty(t, results[1].Socials)
}

func TestRun_PanicIsContainedToOneTarget(t *testing.T) {
	proc := &fakeProcessor{panicOn: "/in/bad"}
	runner := NewRunner(proc, 0, nil)

	results := runner.Run(context.Background(), []string{"/in/a", "/in/bad", "/in/b"})

	require.Len(t, results, 3)
	assert.Equal(t, types.StatusSuccess, results[0].Status)
	assert.Equal(t, types.StatusFailed, results[1].Status)
	require.Len(t, results[1].Errors, 1)
	assert.Contains(t, results[1].Errors[0].Reason, "panic")
	assert.Equal(t, types.StatusSuccess, results[2].Status, "iteration continued past the panic")
}

func TestRun_FatalFaultFailsRemainingTargets(t *testing.T) {
	proc := &fakeProcessor{fatalOn: "/in/b"}
	runner := NewRunner(proc, 0, nil)

	results := runner.Run(context.Background(), []string{"/in/a", "/in/b", "/in/c", "/in/d"})

	require.Len(t, results, 4)
	assert.Equal(t, types.StatusSuccess, results[0].Status)
	assert.Equal(t, types.StatusFailed, results[1].Status)
	assert.Equal(t, types.StatusFailed, results[2].Status)
	assert.Equal(t, types.StatusFailed, results[3].Status)
	assert.Contains(t, results[2].Errors[0].Reason, "session lost")

	// The processor was never invoked for targets after the fatal fault.
	assert.Equal(t, []string{"/in/a", "/in/b"}, proc.processed)
}

func TestRun_EmptyTargetList(t *testing.T) {
	runner := NewRunner(&fakeProcessor{}, 0, nil)
	results := runner.Run(context.Background(), nil)
	assert.Empty(t, results)
}

func TestRunParallel_PreservesInputOrder(t *testing.T) {
	targets := []string{"/in/a", "/in/b", "/in/c", "/in/d", "/in/e"}
	procs := []Processor{&fakeProcessor{}, &fakeProcessor{}, &fakeProcessor{}}

	results := RunParallel(context.Background(), targets, procs, 0, nil)

	require.Len(t, results, len(targets))
	for i, target := range targets {
		assert.Equal(t, target, results[i].Target)
		assert.Equal(t, types.StatusSuccess, results[i].Status)
	}
}

func TestRunParallel_SingleWorkerMatchesSequential(t *testing.T) {
	targets := []string{"/in/a", "/in/b"}

	sequential := NewRunner(&fakeProcessor{}, 0, nil).Run(context.Background(), targets)
	parallel := RunParallel(context.Background(), targets, []Processor{&fakeProcessor{}}, 0, nil)

	assert.Equal(t, sequential, parallel)
}

func TestRunParallel_NoWorkers(t *testing.T) {
	results := RunParallel(context.Background(), []string{"/in/a"}, nil, 0, nil)

	require.Len(t, results, 1)
	assert.Equal(t, types.StatusFailed, results[0].Status)
}

func TestRunParallel_WorkerFatalOnlyAffectsItsChunk(t *testing.T) {
	targets := []string{"/in/a", "/in/b", "/in/c", "/in/d"}
	procs := []Processor{
		&fakeProcessor{fatalOn: "/in/a"}, // chunk a, b
		&fakeProcessor{},                 // chunk c, d
	}

	results := RunParallel(context.Background(), targets, procs, 0, nil)

	require.Len(t, results, 4)
	assert.Equal(t, types.StatusFailed, results[0].Status)
	assert.Equal(t, types.StatusFailed, results[1].Status)
	assert.Equal(t, types.StatusSuccess, results[2].Status)
	assert.Equal(t, types.StatusSuccess, results[3].Status)
}
