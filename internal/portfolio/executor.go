package portfolio

import (
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/google/uuid"

	"github.com/easychair/vampire-sub000/internal/collaborators"
	"github.com/easychair/vampire-sub000/internal/saturation"
)

// StrategyBuilder constructs a fresh SaturationLoop for one slice
// attempt over problem; cmd/prover supplies the concrete
// implementation, translating a Slice's options into a StrategyConfig
// (ordering, selector, generators, simplifiers) the way the teacher's
// main.go turns CLI flags into a Config.
type StrategyBuilder func(problem *collaborators.Problem, slice Slice) (*saturation.SaturationLoop, error)

// SliceJob is one scheduled attempt handed to an Executor. RunID
// identifies this specific attempt (spec.md §4.8 tags "one per forked
// child"); ForkExecutor's NewCommand can use it to name a temporary
// artifact without colliding with a sibling running the same slice
// code in a different pass.
type SliceJob struct {
	RunID   uuid.UUID
	Problem *collaborators.Problem
	Slice   Slice
	Budget  time.Duration
	Build   StrategyBuilder
}

// SliceResult is one completed (or abandoned) slice attempt.
type SliceResult struct {
	RunID   uuid.UUID
	Slice   Slice
	Outcome saturation.Outcome
	Err     error
}

// Executor runs one SliceJob to completion or until its budget expires.
// spec.md §4.8 names two flavors: thread-based (shares the parent's
// address space) and process-forking (isolates each slice in a child
// process, communicating through a writer pipe).
type Executor interface {
	Run(job SliceJob) SliceResult
}

// ThreadExecutor runs a slice's SaturationLoop directly in the calling
// goroutine. It shares the term factory and every other package-level
// singleton with its siblings, so StrategyBuilder must give each slice
// its own *engine.Context (own Active/indexes) — sharing a Context
// across concurrent ThreadExecutor goroutines would race.
type ThreadExecutor struct{}

func (ThreadExecutor) Run(job SliceJob) SliceResult {
	loop, err := job.Build(job.Problem, job.Slice)
	if err != nil {
		return SliceResult{RunID: job.RunID, Slice: job.Slice, Err: fmt.Errorf("portfolio: building strategy for slice %s: %w", job.Slice, err)}
	}
	return SliceResult{RunID: job.RunID, Slice: job.Slice, Outcome: loop.Run(job.Budget)}
}

// ForkExecutor runs a slice in a child OS process for full isolation
// (a misbehaving strategy cannot corrupt a sibling's term table). The
// caller supplies NewCommand, which builds the child command line
// (cmd/prover builds no ForkExecutor and has no single-slice child
// mode); ForkExecutor owns only the generic
// start/wait/timeout/kill lifecycle and the writer-pipe wiring spec.md
// §5 describes for "Writer pipe (C8)".
type ForkExecutor struct {
	// NewCommand builds the child command for job. Its Stdout/Stderr
	// are overwritten by Run to route through Stdout below.
	NewCommand func(job SliceJob) *exec.Cmd
	// Stdout is the writer-pipe destination every forked child's
	// stdout is routed to, in arrival order (internal/portfolio.Writer
	// is the intended implementation).
	Stdout io.Writer
}

// Run starts the child, waits up to job.Budget (already scaled and
// clamped by the caller), and maps its exit status: code 0 is treated
// as Refutation (spec.md §4.8's batch-mode convention), any other exit
// as Incomplete (surfaced as GaveUp by the driver), and an expired
// budget kills the child and reports TimeLimit.
func (f *ForkExecutor) Run(job SliceJob) SliceResult {
	cmd := f.NewCommand(job)
	cmd.Stdout = f.Stdout
	cmd.Stderr = f.Stdout
	if err := cmd.Start(); err != nil {
		return SliceResult{RunID: job.RunID, Slice: job.Slice, Err: fmt.Errorf("portfolio: forking slice %s: %w", job.Slice, err)}
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		if err == nil {
			return SliceResult{RunID: job.RunID, Slice: job.Slice, Outcome: saturation.Outcome{Kind: saturation.OutcomeRefutation}}
		}
		return SliceResult{RunID: job.RunID, Slice: job.Slice, Outcome: saturation.Outcome{Kind: saturation.OutcomeIncomplete}}
	case <-time.After(job.Budget):
		_ = cmd.Process.Kill()
		<-done // reap; a permissive ECHILD-equivalent error here is expected and ignored
		return SliceResult{RunID: job.RunID, Slice: job.Slice, Outcome: saturation.Outcome{Kind: saturation.OutcomeTimeLimit}}
	}
}
