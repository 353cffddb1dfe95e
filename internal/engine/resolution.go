package engine

import (
	"sync"

	"github.com/easychair/vampire-sub000/internal/clause"
	"github.com/easychair/vampire-sub000/internal/container"
	"github.com/easychair/vampire-sub000/internal/index"
	"github.com/easychair/vampire-sub000/internal/term"
)

// BinaryResolution derives (C\{L} ∨ D\{¬K})σ from a selected literal L
// in C and a complementary selected literal ¬K in D, σ = mgu(L,K)
// (spec.md §4.5). Equality literals never participate here.
type BinaryResolution struct {
	mu       sync.Mutex
	ctx      *Context
	atomTree *index.SubstitutionTree
	handles  map[*clause.Clause][]index.Handle
}

func (r *BinaryResolution) Name() string { return "binary-resolution" }

func (r *BinaryResolution) Attach(ctx *Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctx = ctx
	r.atomTree = index.NewSubstitutionTree()
	r.handles = make(map[*clause.Clause][]index.Handle)
	ctx.Active.Subscribe(r)
}

func (r *BinaryResolution) Detach() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctx = nil
}

func (r *BinaryResolution) OnAdded(c *clause.Clause) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ctx == nil {
		return
	}
	var hs []index.Handle
	for _, lit := range selectedOrAll(c) {
		if lit.IsEquality() {
			continue
		}
		atom := r.ctx.Factory.App(lit.Predicate, lit.Args...)
		hs = append(hs, r.atomTree.Insert(atom, 0, index.Payload{Clause: c, Literal: lit, Side: -1}))
	}
	r.handles[c] = hs
}

func (r *BinaryResolution) OnRemoved(c *clause.Clause) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ctx == nil {
		return
	}
	for _, h := range r.handles[c] {
		r.atomTree.Remove(h)
	}
	delete(r.handles, c)
}

var _ container.ActiveObserver = (*BinaryResolution)(nil)

func (r *BinaryResolution) Generate(given *clause.Clause) []*clause.Clause {
	r.mu.Lock()
	ctx := r.ctx
	r.mu.Unlock()
	if ctx == nil {
		return nil
	}
	span := ctx.tracer().StartSpan("engine.binary-resolution")
	defer span.Finish()
	f := ctx.Factory
	lits := given.Literals()
	var out []*clause.Clause
	for _, lit := range selectedOrAll(given) {
		if lit.IsEquality() {
			continue
		}
		atom := f.App(lit.Predicate, lit.Args...)
		for _, hit := range r.atomTree.Unifications(f, atom, 1) {
			other := hit.Payload.Literal
			if other.Positive == lit.Positive {
				continue // need a complementary sign
			}
			dClause := hit.Payload.Clause
			if dClause == given && other == lit {
				continue
			}
			sigma := hit.Subst
			cLits := applySubstToLiterals(f, sigma, lits, 1, indexOfLiteral(given, lit))
			dLits := applySubstToLiterals(f, sigma, dClause.Literals(), 0, indexOfLiteral(dClause, other))
			all := append(cLits, dLits...)
			out = append(out, clause.New(all, clause.Inference{Rule: clause.RuleBinaryResolution, Premises: []*clause.Clause{given, dClause}}))
		}
	}
	return out
}

// EqualityResolution derives Cσ from C∨s≠t with σ=mgu(s,t) (spec.md
// §4.5). It needs no Active index: the inference is entirely local to
// the given clause.
type EqualityResolution struct {
	mu  sync.Mutex
	ctx *Context
}

func (e *EqualityResolution) Name() string { return "equality-resolution" }

func (e *EqualityResolution) Attach(ctx *Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ctx = ctx
}

func (e *EqualityResolution) Detach() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ctx = nil
}

func (e *EqualityResolution) Generate(given *clause.Clause) []*clause.Clause {
	e.mu.Lock()
	ctx := e.ctx
	e.mu.Unlock()
	if ctx == nil {
		return nil
	}
	f := ctx.Factory
	lits := given.Literals()
	var out []*clause.Clause
	for i, lit := range lits {
		if !lit.IsEquality() || lit.Positive {
			continue
		}
		s := term.NewSubstitution()
		if !s.Unify(lit.Args[0], 0, lit.Args[1], 0) {
			continue
		}
		rest := applySubstToLiterals(f, s, lits, 0, i)
		out = append(out, clause.New(rest, clause.Inference{Rule: clause.RuleEqualityResolution, Premises: []*clause.Clause{given}}))
	}
	return out
}
