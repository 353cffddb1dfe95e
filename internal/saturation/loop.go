// Package saturation implements the given-clause algorithm of spec.md
// §4.7 (component C7): SaturationLoop drains newly derived clauses
// through cheap immediate simplification, picks the best pending clause
// from Passive, forward- and backward-simplifies it against Active, and
// finally lets every registered generator derive children from it.
package saturation

import (
	"runtime"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"

	"github.com/easychair/vampire-sub000/internal/clause"
	"github.com/easychair/vampire-sub000/internal/container"
	"github.com/easychair/vampire-sub000/internal/engine"
	"github.com/easychair/vampire-sub000/internal/ordering"
	"github.com/easychair/vampire-sub000/internal/proverrors"
	"github.com/easychair/vampire-sub000/internal/selector"
)

// OutcomeKind enumerates spec.md §4.7's Outcome values.
type OutcomeKind int

const (
	OutcomeRefutation OutcomeKind = iota
	OutcomeSatisfiable
	OutcomeTimeLimit
	OutcomeMemoryLimit
	OutcomeIncomplete
	OutcomeInappropriate
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeRefutation:
		return "Refutation"
	case OutcomeSatisfiable:
		return "Satisfiable"
	case OutcomeTimeLimit:
		return "TimeLimit"
	case OutcomeMemoryLimit:
		return "MemoryLimit"
	case OutcomeIncomplete:
		return "Incomplete"
	default:
		return "Inappropriate"
	}
}

// Outcome is the loop's result; Refutation is only set when
// Kind == OutcomeRefutation.
type Outcome struct {
	Kind       OutcomeKind
	Refutation *clause.Clause
}

// StrategyConfig is the immutable set of rule choices a run is built
// from (spec.md §9 Design Note 4), analogous to the teacher's Config
// struct passed into engine.New.
type StrategyConfig struct {
	Ordering            ordering.Ordering
	Selector            selector.Selector
	AgeWeightRatio      int
	Generators          []engine.Generator
	ForwardSimplifiers  []engine.ForwardSimplifier
	BackwardSimplifiers []engine.BackwardSimplifier
	// MemoryLimitBytes is checked against runtime.MemStats.HeapAlloc at
	// every outer loop iteration; 0 disables the check.
	MemoryLimitBytes uint64
	// Complete records whether every enabled generator is a sound
	// superposition-calculus inference, every simplifier a
	// redundancy-preserving reduction, and Selector a complete selection
	// function (spec.md §4.7's isComplete()). Decided once, by whoever
	// assembles the strategy from its named rule set.
	Complete bool
}

// SaturationLoop drives one strategy's given-clause search over its own
// private Context/containers.
type SaturationLoop struct {
	cfg      StrategyConfig
	ctx      *engine.Context
	trivial  *engine.TrivialSimplifier
	unproc   *container.Unprocessed
	passive  *container.Passive
	active   *container.Active
	log      *logrus.Entry
	tracer   opentracing.Tracer
	iteration int
}

// New builds a SaturationLoop over cfg and ctx (ctx.Active must be the
// same Active the generators/simplifiers in cfg were already Attached
// to), seeds Unprocessed with inputs, and attaches its own
// TrivialSimplifier for immediateSimplify.
func New(cfg StrategyConfig, ctx *engine.Context, inputs []*clause.Clause, log *logrus.Entry) *SaturationLoop {
	if log == nil {
		log = logrus.NewEntry(logrus.New())
	}
	trivial := &engine.TrivialSimplifier{}
	trivial.Attach(ctx)
	sl := &SaturationLoop{
		cfg:     cfg,
		ctx:     ctx,
		trivial: trivial,
		unproc:  container.NewUnprocessed(),
		passive: container.NewPassive(cfg.AgeWeightRatio),
		active:  ctx.Active,
		log:     log,
		tracer:  ctx.Tracer,
	}
	for _, c := range inputs {
		sl.unproc.Add(c)
	}
	return sl
}

func (sl *SaturationLoop) tracerOrNoop() opentracing.Tracer {
	if sl.tracer == nil {
		return opentracing.NoopTracer{}
	}
	return sl.tracer
}

// Run executes the given-clause loop until a terminal Outcome is
// reached or timeBudget elapses.
func (sl *SaturationLoop) Run(timeBudget time.Duration) Outcome {
	deadline := time.Now().Add(timeBudget)
	for {
		if out, ok := sl.drainUnprocessed(); ok {
			return out
		}
		if sl.passive.Size() == 0 {
			if sl.cfg.Complete {
				return Outcome{Kind: OutcomeSatisfiable}
			}
			return Outcome{Kind: OutcomeIncomplete}
		}
		if time.Now().After(deadline) {
			sl.log.WithField("iteration", sl.iteration).Info("time budget exceeded")
			return Outcome{Kind: OutcomeTimeLimit}
		}
		if sl.cfg.MemoryLimitBytes > 0 && heapBytes() > sl.cfg.MemoryLimitBytes {
			sl.log.WithField("iteration", sl.iteration).Info("memory budget exceeded")
			return Outcome{Kind: OutcomeMemoryLimit}
		}

		g, ok := sl.passive.Select()
		if !ok {
			continue
		}
		sl.iteration++
		span := sl.tracerOrNoop().StartSpan("saturation.iteration")
		sl.log.WithFields(logrus.Fields{
			"iteration": sl.iteration,
			"clause_id": g.ID,
			"store":     "passive",
		}).Debug("given clause selected")

		changed, reduced, deleted := sl.forwardSimplify(g)
		if deleted {
			span.Finish()
			continue
		}
		if changed {
			sl.unproc.Add(reduced)
			span.Finish()
			continue
		}
		if g.IsEmpty() {
			span.Finish()
			return Outcome{Kind: OutcomeRefutation, Refutation: g}
		}

		sl.backwardSimplify(g)
		sl.cfg.Selector.Select(sl.cfg.Ordering, g)
		sl.active.Add(g)

		for _, gen := range sl.cfg.Generators {
			for _, child := range gen.Generate(g) {
				sl.unproc.Add(child)
			}
		}
		span.Finish()
	}
}

// drainUnprocessed runs immediateSimplify over every pending
// Unprocessed clause, moving survivors to Passive; it returns a
// Refutation Outcome immediately if any clause simplifies to ⊥.
func (sl *SaturationLoop) drainUnprocessed() (Outcome, bool) {
	for {
		c, ok := sl.unproc.Pop()
		if !ok {
			return Outcome{}, false
		}
		c = sl.immediateSimplify(c)
		if c == nil {
			continue // tautology or otherwise deleted
		}
		if c.IsEmpty() {
			return Outcome{Kind: OutcomeRefutation, Refutation: c}, true
		}
		sl.passive.Add(c)
	}
}

// immediateSimplify runs the trivial-simplification fixpoint of
// spec.md §4.7 (tautology check, duplicate-literal removal,
// variable-to-variable equality resolution, distinct-equality
// simplification), returning nil if c was deleted outright.
func (sl *SaturationLoop) immediateSimplify(c *clause.Clause) *clause.Clause {
	for {
		outcome, repl := sl.trivial.Perform(c)
		switch outcome {
		case engine.ForwardDeleted:
			return nil
		case engine.ForwardReplaced:
			c = repl
		default:
			return c
		}
	}
}

// forwardSimplify runs the registered forward simplifiers in their
// declared order to fixpoint (spec.md §4.7). changed reports whether g
// was replaced (result is the replacement, which the caller must push
// back to Unprocessed and re-simplify from scratch); deleted reports
// outright removal.
func (sl *SaturationLoop) forwardSimplify(g *clause.Clause) (changed bool, result *clause.Clause, deleted bool) {
	cur := g
	for {
		progressed := false
		for _, fs := range sl.cfg.ForwardSimplifiers {
			outcome, repl := fs.Perform(cur)
			switch outcome {
			case engine.ForwardDeleted:
				return true, nil, true
			case engine.ForwardReplaced:
				if err := proverrors.Assert(repl != nil, "forward simplifier %s returned ForwardReplaced with a nil clause", fs.Name()); err != nil {
					sl.log.WithError(err).Error("forward simplifier contract violated")
					return true, nil, true
				}
				cur = repl
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	if cur == g {
		return false, g, false
	}
	return true, cur, false
}

// backwardSimplify runs the registered backward simplifiers, removing
// every clause they make redundant from Active and pushing any
// replacement back to Unprocessed (spec.md §4.7).
func (sl *SaturationLoop) backwardSimplify(g *clause.Clause) {
	for _, bs := range sl.cfg.BackwardSimplifiers {
		for _, sim := range bs.Perform(g) {
			sl.active.Remove(sim.Remove)
			if sim.Replacement != nil {
				sl.unproc.Add(sim.Replacement)
			}
		}
	}
}

// heapBytes samples the current heap size. No third-party resource
// monitor in the retrieved example pack is wired for in-process memory
// accounting: hashicorp-nomad pulls in shirou/gopsutil, but only its own
// test helpers (client/hoststats/host_test.go) exercise it, not any
// production call site reachable from this pack slice, so adopting it
// here would be speculative rather than grounded. runtime.MemStats is
// the stdlib fit for a self-limiting process.
func heapBytes() uint64 {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return stats.HeapAlloc
}
