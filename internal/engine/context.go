// Package engine implements the inference engines of spec.md §4.5
// (component C5): the generating rules (superposition, binary
// resolution, equality resolution, equality factoring, factoring) and
// the simplifying rules (forward/backward demodulation, subsumption,
// subsumption resolution, trivial simplifications).
package engine

import (
	"github.com/opentracing/opentracing-go"

	"github.com/easychair/vampire-sub000/internal/clause"
	"github.com/easychair/vampire-sub000/internal/container"
	"github.com/easychair/vampire-sub000/internal/index"
	"github.com/easychair/vampire-sub000/internal/ordering"
	"github.com/easychair/vampire-sub000/internal/term"
)

// Context bundles the shared resources an engine's attach() acquires:
// the term factory for rebuilding rewritten terms, the current
// Ordering, the index Manager and the Active set it observes.
type Context struct {
	Factory *term.Factory
	Ordering ordering.Ordering
	Indexes *index.Manager
	Active   *container.Active
	Tracer   opentracing.Tracer
}

func (c *Context) tracer() opentracing.Tracer {
	if c.Tracer == nil {
		return opentracing.NoopTracer{}
	}
	return c.Tracer
}

// Generator is a generating inference engine (spec.md §4.5): it
// publishes attach/detach to acquire/release indexes and
// generateClauses(given) to produce new clauses without discarding the
// given clause.
type Generator interface {
	Name() string
	Attach(ctx *Context)
	Detach()
	Generate(given *clause.Clause) []*clause.Clause
}

// ForwardOutcome reports what a ForwardSimplifier did with a candidate.
type ForwardOutcome int

const (
	// ForwardUnchanged means the simplifier did not apply.
	ForwardUnchanged ForwardOutcome = iota
	// ForwardReplaced means the candidate was rewritten; Perform's
	// returned clause should continue through forwardSimplify to
	// fixpoint.
	ForwardReplaced
	// ForwardDeleted means the candidate is redundant (tautological or
	// subsumed) and must be dropped.
	ForwardDeleted
)

// ForwardSimplifier is a forward simplifying engine: perform(candidate)
// either leaves candidate unchanged, replaces it, or deletes it
// outright (spec.md §4.5).
type ForwardSimplifier interface {
	Name() string
	Attach(ctx *Context)
	Detach()
	Perform(candidate *clause.Clause) (ForwardOutcome, *clause.Clause)
}

// Simplification is one effect of a BackwardSimplifier: clauseToRemove
// must leave Active; if Replacement is non-nil it re-enters Unprocessed.
type Simplification struct {
	Remove      *clause.Clause
	Replacement *clause.Clause
}

// BackwardSimplifier is a backward simplifying engine: perform(given)
// iterates Active via its own index and returns every clause the new
// given clause makes redundant (spec.md §4.5).
type BackwardSimplifier interface {
	Name() string
	Attach(ctx *Context)
	Detach()
	Perform(given *clause.Clause) []Simplification
}
