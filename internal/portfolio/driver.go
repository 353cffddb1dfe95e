package portfolio

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"

	"github.com/easychair/vampire-sub000/internal/collaborators"
	"github.com/easychair/vampire-sub000/internal/saturation"
)

// Driver runs a Schedule's quick pass then, if nothing succeeds, its
// fallback pass against one Problem, honoring spec.md §4.8's
// at-most-one-success, de-duplication and time-accounting contracts.
type Driver struct {
	Executor       Executor
	Build          StrategyBuilder
	SlownessFactor float64
	Workers        int
	Log            *logrus.Entry
	Tracer         opentracing.Tracer
}

// NewDriver builds a Driver around a ThreadExecutor with the spec's
// suggested 1.15 slowness factor and a min(availableCores, N)-1 worker
// count (one core reserved for the parent/writer, spec.md §4.8).
func NewDriver(build StrategyBuilder) *Driver {
	return &Driver{
		Executor:       ThreadExecutor{},
		Build:          build,
		SlownessFactor: 1.15,
		Workers:        workerCount(0),
		Log:            logrus.NewEntry(logrus.New()),
	}
}

func workerCount(n int) int {
	cores := runtime.NumCPU()
	if n <= 0 || n > cores {
		n = cores
	}
	if n > 1 {
		n--
	}
	return n
}

// RunProblem runs schedule.Quick, then schedule.Fallback (skipping any
// slice already attempted by the quick pass, identified by its chopped
// name), within overallBudget. It returns the winning SliceResult if
// any slice reported Refutation; otherwise it returns a result with
// Outcome Incomplete that names no slice.
func (d *Driver) RunProblem(problem *collaborators.Problem, schedule Schedule, overallBudget time.Duration) SliceResult {
	remaining := overallBudget
	seen := map[string]bool{}
	last := SliceResult{Outcome: saturation.Outcome{Kind: saturation.OutcomeIncomplete}}

	for _, pass := range [][]Slice{schedule.Quick, schedule.Fallback} {
		if remaining <= 0 {
			break
		}
		var fresh []Slice
		for _, s := range pass {
			if seen[s.ChoppedName()] {
				continue // fallback never re-runs a quick-pass slice
			}
			seen[s.ChoppedName()] = true
			fresh = append(fresh, s)
		}
		if len(fresh) == 0 {
			continue
		}
		winner, spent := d.runPass(problem, fresh, remaining)
		remaining -= spent
		if winner != nil {
			return *winner
		}
	}
	return last
}

// runPass runs slices concurrently up to d.Workers, stopping once any
// slice reports Refutation (spec.md §4.8 at-most-one-success: already
// running siblings are left to finish naturally, but no new slice is
// launched once a winner is known). It returns the winning result (nil
// if none won) and the wall-clock time actually spent.
func (d *Driver) runPass(problem *collaborators.Problem, slices []Slice, remaining time.Duration) (*SliceResult, time.Duration) {
	start := time.Now()
	var won atomic.Bool
	var winner SliceResult
	var winMu sync.Mutex

	workers := d.Workers
	if workers < 1 {
		workers = 1
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for _, s := range slices {
		if won.Load() {
			break
		}
		budget := time.Duration(float64(s.Budget) * d.slowness())
		if budget > remaining {
			budget = remaining
		}
		if budget <= 0 {
			continue
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(s Slice, budget time.Duration) {
			defer wg.Done()
			defer func() { <-sem }()
			if won.Load() {
				return
			}
			span := d.tracerOrNoop().StartSpan("portfolio.slice")
			defer span.Finish()

			res := d.Executor.Run(SliceJob{RunID: uuid.New(), Problem: problem, Slice: s, Budget: budget, Build: d.Build})
			d.logger().WithField("slice", s.String()).WithField("outcome", res.Outcome.Kind.String()).Debug("slice finished")
			if res.Outcome.Kind == saturation.OutcomeRefutation && won.CompareAndSwap(false, true) {
				winMu.Lock()
				winner = res
				winMu.Unlock()
			}
		}(s, budget)
	}
	wg.Wait()

	elapsed := time.Since(start)
	if won.Load() {
		return &winner, elapsed
	}
	return nil, elapsed
}

func (d *Driver) slowness() float64 {
	if d.SlownessFactor <= 0 {
		return 1
	}
	return d.SlownessFactor
}

func (d *Driver) tracerOrNoop() opentracing.Tracer {
	if d.Tracer == nil {
		return opentracing.NoopTracer{}
	}
	return d.Tracer
}

func (d *Driver) logger() *logrus.Entry {
	if d.Log == nil {
		return logrus.NewEntry(logrus.New())
	}
	return d.Log
}
