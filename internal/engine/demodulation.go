package engine

import (
	"sync"

	"github.com/easychair/vampire-sub000/internal/clause"
	"github.com/easychair/vampire-sub000/internal/container"
	"github.com/easychair/vampire-sub000/internal/index"
	"github.com/easychair/vampire-sub000/internal/ordering"
	"github.com/easychair/vampire-sub000/internal/term"
)

// ForwardDemodulation rewrites a candidate clause C[s] using an
// oriented unit equation l=r from Active where s=lθ and lθ≻rθ,
// producing C[rθ] (spec.md §4.5). It shares the demodulator code tree
// managed by index.Manager's KindDemodulationLHS, which already indexes
// both orientations of every unit positive equality in Active.
type ForwardDemodulation struct {
	mu       sync.Mutex
	ctx      *Context
	codeTree *index.CodeTree
}

func (fd *ForwardDemodulation) Name() string { return "forward-demodulation" }

func (fd *ForwardDemodulation) Attach(ctx *Context) {
	fd.mu.Lock()
	defer fd.mu.Unlock()
	fd.ctx = ctx
	fd.codeTree = ctx.Indexes.RequestCodeIndex(index.KindDemodulationLHS)
}

func (fd *ForwardDemodulation) Detach() {
	fd.mu.Lock()
	defer fd.mu.Unlock()
	if fd.ctx != nil {
		fd.ctx.Indexes.Release(index.KindDemodulationLHS)
	}
	fd.ctx = nil
}

func (fd *ForwardDemodulation) Perform(candidate *clause.Clause) (ForwardOutcome, *clause.Clause) {
	fd.mu.Lock()
	ctx, tree := fd.ctx, fd.codeTree
	fd.mu.Unlock()
	if ctx == nil {
		return ForwardUnchanged, nil
	}
	f := ctx.Factory
	lits := candidate.Literals()
	for litIdx, lit := range lits {
		for _, ref := range collectSubterms(lit) {
			subterm := termAt(lit, ref)
			for _, hit := range tree.Rewrites(subterm, 1) {
				if hit.Payload.Clause == candidate {
					continue // a clause never demodulates itself
				}
				theta := hit.Subst
				lSig := theta.Apply(f, hit.LHS, hit.Bank)
				rSig := theta.Apply(f, hit.RHS, hit.Bank)
				if ctx.Ordering.Compare(lSig, rSig) != ordering.Greater {
					continue
				}
				if isOrderingMaximalLiteral(ctx, candidate, lit) && term.Variant(lSig, hit.Bank, rSig, hit.Bank) {
					continue // encompassment: a variant-only rewrite of the maximal literal would not shrink the clause
				}
				newLit := rebuildLiteral(f, lit, ref, rSig)
				newLits := make([]*term.Literal, len(lits))
				copy(newLits, lits)
				newLits[litIdx] = newLit
				replacement := clause.New(newLits, clause.Inference{Rule: clause.RuleForwardDemodulation, Premises: []*clause.Clause{candidate, hit.Payload.Clause}})
				return ForwardReplaced, replacement
			}
		}
	}
	return ForwardUnchanged, nil
}

// BackwardDemodulation rewrites every instance in Active's subterm
// index when a new oriented unit equation enters Active (spec.md
// §4.5): the affected clauses are removed and their rewrites enqueued.
// It maintains its own subterm index over every Active clause (not
// just unit equations) since it must find *instances* of the new
// equation's lhs anywhere in Active, a different retrieval shape from
// ForwardDemodulation's shared rule code tree.
type BackwardDemodulation struct {
	mu          sync.Mutex
	ctx         *Context
	subtermTree *index.SubstitutionTree
	handles     map[*clause.Clause][]index.Handle
}

func (bd *BackwardDemodulation) Name() string { return "backward-demodulation" }

func (bd *BackwardDemodulation) Attach(ctx *Context) {
	bd.mu.Lock()
	defer bd.mu.Unlock()
	bd.ctx = ctx
	bd.subtermTree = index.NewSubstitutionTree()
	bd.handles = make(map[*clause.Clause][]index.Handle)
	ctx.Active.Subscribe(bd)
}

func (bd *BackwardDemodulation) Detach() {
	bd.mu.Lock()
	defer bd.mu.Unlock()
	bd.ctx = nil
}

func (bd *BackwardDemodulation) OnAdded(c *clause.Clause) {
	bd.mu.Lock()
	defer bd.mu.Unlock()
	if bd.ctx == nil {
		return
	}
	var hs []index.Handle
	for _, lit := range c.Literals() {
		for _, ref := range collectSubterms(lit) {
			t := termAt(lit, ref)
			hs = append(hs, bd.subtermTree.Insert(t, 0, index.Payload{Clause: c, Literal: lit, Side: -1, Extra: ref}))
		}
	}
	bd.handles[c] = hs
}

func (bd *BackwardDemodulation) OnRemoved(c *clause.Clause) {
	bd.mu.Lock()
	defer bd.mu.Unlock()
	if bd.ctx == nil {
		return
	}
	for _, h := range bd.handles[c] {
		bd.subtermTree.Remove(h)
	}
	delete(bd.handles, c)
}

var _ container.ActiveObserver = (*BackwardDemodulation)(nil)

func (bd *BackwardDemodulation) Perform(given *clause.Clause) []Simplification {
	bd.mu.Lock()
	ctx, tree := bd.ctx, bd.subtermTree
	bd.mu.Unlock()
	if ctx == nil {
		return nil
	}
	f := ctx.Factory
	if given.Len() != 1 {
		return nil // only a unit equation can be a demodulator
	}
	lit := given.Literals()[0]
	if !lit.IsEquality() || !lit.Positive {
		return nil
	}
	var sims []Simplification
	for side := 0; side < 2; side++ {
		l, r := lit.Args[side], lit.Args[1-side]
		for _, hit := range tree.Instances(f, l, 1) {
			if hit.Payload.Clause == given {
				continue
			}
			theta := hit.Subst
			lSig := theta.Apply(f, l, 1)
			rSig := theta.Apply(f, r, 1)
			if ctx.Ordering.Compare(lSig, rSig) != ordering.Greater {
				continue
			}
			affected := hit.Payload.Clause
			affectedLit := hit.Payload.Literal
			if isOrderingMaximalLiteral(ctx, affected, affectedLit) && term.Variant(lSig, 1, rSig, 1) {
				continue // encompassment: a variant-only rewrite of the maximal literal would not shrink the clause
			}
			ref := hit.Payload.Extra.(subtermRef)
			newLit := rebuildLiteral(f, affectedLit, ref, rSig)
			lits := affected.Literals()
			newLits := make([]*term.Literal, len(lits))
			copy(newLits, lits)
			newLits[indexOfLiteral(affected, affectedLit)] = newLit
			replacement := clause.New(newLits, clause.Inference{Rule: clause.RuleBackwardDemodulation, Premises: []*clause.Clause{affected, given}})
			sims = append(sims, Simplification{Remove: affected, Replacement: replacement})
		}
	}
	return sims
}

// isOrderingMaximalLiteral reports whether lit is ordering-maximal
// among c's literals, regardless of any literal selection in effect.
// Demodulation's encompassment restriction cares about the clause's
// true maximal literal, not the selector's pruned subset.
func isOrderingMaximalLiteral(ctx *Context, c *clause.Clause, lit *term.Literal) bool {
	for _, other := range c.Literals() {
		if other == lit {
			continue
		}
		if ctx.Ordering.CompareLiterals(other, lit) == ordering.Greater {
			return false
		}
	}
	return true
}
