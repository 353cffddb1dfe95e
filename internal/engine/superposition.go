package engine

import (
	"sync"

	"github.com/easychair/vampire-sub000/internal/clause"
	"github.com/easychair/vampire-sub000/internal/container"
	"github.com/easychair/vampire-sub000/internal/index"
	"github.com/easychair/vampire-sub000/internal/ordering"
	"github.com/easychair/vampire-sub000/internal/term"
)

// Superposition is the central generating rule of spec.md §4.5: given a
// positive oriented equality l=r (the equation, clause D) and a clause
// C[s] where s unifies with l, derive C[r]σ ∨ (D\{l=r})σ.
//
// It maintains its own pair of indexes over Active rather than routing
// through index.Manager's generic per-literal-argument auto-population
// (internal/index.Manager), because superposition's retrieval shapes —
// every non-variable subterm position of C, and both orientations of
// D's equation sides — are specific to this rule and don't match the
// "index each literal's top-level arguments" scheme Manager provides
// for the simpler resolution-style rules.
type Superposition struct {
	mu          sync.Mutex
	ctx         *Context
	subtermTree *index.SubstitutionTree // C-role: every subterm of every Active clause
	eqTree      *index.SubstitutionTree // D-role: both sides of every positive equality literal

	subtermHandles map[*clause.Clause][]index.Handle
	eqHandles      map[*clause.Clause][]index.Handle
}

func (s *Superposition) Name() string { return "superposition" }

func (s *Superposition) Attach(ctx *Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx = ctx
	s.subtermTree = index.NewSubstitutionTree()
	s.eqTree = index.NewSubstitutionTree()
	s.subtermHandles = make(map[*clause.Clause][]index.Handle)
	s.eqHandles = make(map[*clause.Clause][]index.Handle)
	ctx.Active.Subscribe(s)
}

func (s *Superposition) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx = nil
}

// OnAdded implements container.ActiveObserver.
func (s *Superposition) OnAdded(c *clause.Clause) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx == nil {
		return
	}
	var subHandles, eqHandles []index.Handle
	for _, lit := range c.Literals() {
		for _, ref := range collectSubterms(lit) {
			t := termAt(lit, ref)
			subHandles = append(subHandles, s.subtermTree.Insert(t, 0, index.Payload{Clause: c, Literal: lit, Side: -1, Extra: ref}))
		}
		if lit.IsEquality() && lit.Positive {
			l, r := lit.Args[0], lit.Args[1]
			eqHandles = append(eqHandles, s.eqTree.Insert(l, 0, index.Payload{Clause: c, Literal: lit, Side: 0}))
			eqHandles = append(eqHandles, s.eqTree.Insert(r, 0, index.Payload{Clause: c, Literal: lit, Side: 1}))
		}
	}
	s.subtermHandles[c] = subHandles
	s.eqHandles[c] = eqHandles
}

// OnRemoved implements container.ActiveObserver.
func (s *Superposition) OnRemoved(c *clause.Clause) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx == nil {
		return
	}
	for _, h := range s.subtermHandles[c] {
		s.subtermTree.Remove(h)
	}
	delete(s.subtermHandles, c)
	for _, h := range s.eqHandles[c] {
		s.eqTree.Remove(h)
	}
	delete(s.eqHandles, c)
}

var _ container.ActiveObserver = (*Superposition)(nil)

func (s *Superposition) Generate(given *clause.Clause) []*clause.Clause {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	if ctx == nil {
		return nil
	}
	span := ctx.tracer().StartSpan("engine.superposition")
	defer span.Finish()
	out := s.generateAsC(ctx, given)
	out = append(out, s.generateAsD(ctx, given)...)
	return out
}

// generateAsC has given play the role of C[s]: it queries the equation
// index (built from Active, the candidates for D) for equations
// unifying with one of given's subterms.
func (s *Superposition) generateAsC(ctx *Context, given *clause.Clause) []*clause.Clause {
	f := ctx.Factory
	var out []*clause.Clause
	lits := given.Literals()
	for litIdx, lit := range lits {
		if !isSelectedOrMaximal(ctx, given, lit) {
			continue
		}
		for _, ref := range collectSubterms(lit) {
			subterm := termAt(lit, ref)
			for _, hit := range s.eqTree.Unifications(f, subterm, 1) {
				if hit.Payload.Clause == given && hit.Payload.Literal == lit {
					continue // a subterm never rewrites via its own occurrence
				}
				l, r := hit.Term, otherEqualitySide(hit)
				sigma := hit.Subst
				lSigma := sigma.Apply(f, l, 0)
				rSigma := sigma.Apply(f, r, 0)
				if ctx.Ordering.Compare(lSigma, rSigma) != ordering.Greater {
					continue
				}
				if lit.IsEquality() {
					otherSide := lit.Args[1-ref.path[0]]
					otherSigma := sigma.Apply(f, otherSide, 1)
					sSigma := sigma.Apply(f, subterm, 1)
					if ctx.Ordering.Compare(sSigma, otherSigma) == ordering.Less {
						continue
					}
				}
				litSigma := applySubstToLiteral(f, sigma, lit, 1)
				newLit := rebuildLiteral(f, litSigma, ref, rSigma)
				dClause := hit.Payload.Clause
				cLits := applySubstToLiterals(f, sigma, lits, 1, litIdx)
				cLits = append(cLits, newLit)
				dLits := applySubstToLiterals(f, sigma, dClause.Literals(), 0, indexOfLiteral(dClause, hit.Payload.Literal))
				all := append(cLits, dLits...)
				out = append(out, clause.New(all, clause.Inference{Rule: clause.RuleSuperposition, Premises: []*clause.Clause{given, dClause}}))
			}
		}
	}
	return out
}

// generateAsD has given play the role of D: it queries the subterm
// index (built from Active, the candidates for C) with each oriented
// side of given's positive equality literals.
func (s *Superposition) generateAsD(ctx *Context, given *clause.Clause) []*clause.Clause {
	f := ctx.Factory
	var out []*clause.Clause
	lits := given.Literals()
	for litIdx, eqLit := range lits {
		if !eqLit.IsEquality() || !eqLit.Positive {
			continue
		}
		if !isSelectedOrMaximal(ctx, given, eqLit) {
			continue
		}
		for side := 0; side < 2; side++ {
			l, r := eqLit.Args[side], eqLit.Args[1-side]
			if l.IsVar() {
				continue // a bare-variable lhs is never usefully indexed as a subterm
			}
			for _, hit := range s.subtermTree.Unifications(f, l, 1) {
				if hit.Payload.Clause == given {
					continue // the symmetric pairing is already covered by generateAsC
				}
				sigma := hit.Subst
				lSigma := sigma.Apply(f, l, 1)
				rSigma := sigma.Apply(f, r, 1)
				if ctx.Ordering.Compare(lSigma, rSigma) != ordering.Greater {
					continue
				}
				cClause := hit.Payload.Clause
				cLit := hit.Payload.Literal
				ref := hit.Payload.Extra.(subtermRef)
				if !isSelectedOrMaximal(ctx, cClause, cLit) {
					continue
				}
				if cLit.IsEquality() {
					otherSide := cLit.Args[1-ref.path[0]]
					otherSigma := sigma.Apply(f, otherSide, 0)
					sSigma := sigma.Apply(f, hit.Term, 0)
					if ctx.Ordering.Compare(sSigma, otherSigma) == ordering.Less {
						continue
					}
				}
				litSigma := applySubstToLiteral(f, sigma, cLit, 0)
				newLit := rebuildLiteral(f, litSigma, ref, rSigma)
				cLits := applySubstToLiterals(f, sigma, cClause.Literals(), 0, indexOfLiteral(cClause, cLit))
				cLits = append(cLits, newLit)
				dLits := applySubstToLiterals(f, sigma, lits, 1, litIdx)
				all := append(cLits, dLits...)
				out = append(out, clause.New(all, clause.Inference{Rule: clause.RuleSuperposition, Premises: []*clause.Clause{cClause, given}}))
			}
		}
	}
	return out
}

func otherEqualitySide(hit index.Result) *term.Term {
	if hit.Payload.Side == 0 {
		return hit.Payload.Literal.Args[1]
	}
	return hit.Payload.Literal.Args[0]
}

func indexOfLiteral(c *clause.Clause, lit *term.Literal) int {
	for i, l := range c.Literals() {
		if l == lit {
			return i
		}
	}
	return -1
}

// isSelectedOrMaximal reports whether lit satisfies spec.md §4.5's side
// condition for C's rewritten literal: "selected or maximal". If the
// literal selector already ran (the common case for Active clauses),
// membership in the selected prefix decides it; otherwise lit must be
// ordering-maximal among c's literals.
func isSelectedOrMaximal(ctx *Context, c *clause.Clause, lit *term.Literal) bool {
	sel := c.SelectedLiterals()
	if len(sel) > 0 {
		for _, l := range sel {
			if l == lit {
				return true
			}
		}
		return false
	}
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
