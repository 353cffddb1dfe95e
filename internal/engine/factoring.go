package engine

import (
	"sync"

	"github.com/easychair/vampire-sub000/internal/clause"
	"github.com/easychair/vampire-sub000/internal/ordering"
	"github.com/easychair/vampire-sub000/internal/term"
)

// Factoring derives (C∨L)σ from C∨L∨L' with σ=mgu(L,L') (spec.md
// §4.5), restricted to non-equality literals; two positive equalities
// are merged by EqualityFactoring instead.
type Factoring struct {
	mu  sync.Mutex
	ctx *Context
}

func (r *Factoring) Name() string { return "factoring" }

func (r *Factoring) Attach(ctx *Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctx = ctx
}

func (r *Factoring) Detach() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctx = nil
}

func (r *Factoring) Generate(given *clause.Clause) []*clause.Clause {
	r.mu.Lock()
	ctx := r.ctx
	r.mu.Unlock()
	if ctx == nil {
		return nil
	}
	f := ctx.Factory
	lits := given.Literals()
	var out []*clause.Clause
	for i := range lits {
		li := lits[i]
		if li.IsEquality() {
			continue
		}
		for j := i + 1; j < len(lits); j++ {
			lj := lits[j]
			if lj.IsEquality() || lj.Positive != li.Positive || lj.Predicate != li.Predicate {
				continue
			}
			s := term.NewSubstitution()
			ok := true
			for k := range li.Args {
				if !s.Unify(li.Args[k], 0, lj.Args[k], 0) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			rest := applySubstToLiterals(f, s, lits, 0, j)
			out = append(out, clause.New(rest, clause.Inference{Rule: clause.RuleFactoring, Premises: []*clause.Clause{given}}))
		}
	}
	return out
}

// EqualityFactoring derives (C∨t≠v∨u=v)σ from C∨s=t∨u=v with
// σ=mgu(s,u) when the ordering side-conditions hold (spec.md §4.5).
type EqualityFactoring struct {
	mu  sync.Mutex
	ctx *Context
}

func (r *EqualityFactoring) Name() string { return "equality-factoring" }

func (r *EqualityFactoring) Attach(ctx *Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctx = ctx
}

func (r *EqualityFactoring) Detach() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctx = nil
}

func (r *EqualityFactoring) Generate(given *clause.Clause) []*clause.Clause {
	r.mu.Lock()
	ctx := r.ctx
	r.mu.Unlock()
	if ctx == nil {
		return nil
	}
	f := ctx.Factory
	lits := given.Literals()
	var out []*clause.Clause
	for i, li := range lits {
		if !li.IsEquality() || !li.Positive || !isSelectedOrMaximal(ctx, given, li) {
			continue
		}
		for _, st := range orientations(li) {
			s, t := st[0], st[1]
			for j, lj := range lits {
				if j == i || !lj.IsEquality() || !lj.Positive {
					continue
				}
				for _, uv := range orientations(lj) {
					u, v := uv[0], uv[1]
					sub := term.NewSubstitution()
					if !sub.Unify(s, 0, u, 0) {
						continue
					}
					sSig, tSig := sub.Apply(f, s, 0), sub.Apply(f, t, 0)
					if ctx.Ordering.Compare(sSig, tSig) == ordering.Less {
						continue
					}
					uSig, vSig := sub.Apply(f, u, 0), sub.Apply(f, v, 0)
					if ctx.Ordering.Compare(uSig, vSig) == ordering.Less {
						continue
					}
					newTneV := term.NewLiteral(term.Equality, false, tSig, vSig)
					newUeqV := term.NewLiteral(term.Equality, true, uSig, vSig)
					rest := make([]*term.Literal, 0, len(lits))
					for k, l := range lits {
						if k == i || k == j {
							continue
						}
						rest = append(rest, applySubstToLiteral(f, sub, l, 0))
					}
					rest = append(rest, newTneV, newUeqV)
					out = append(out, clause.New(rest, clause.Inference{Rule: clause.RuleEqualityFactoring, Premises: []*clause.Clause{given}}))
				}
			}
		}
	}
	return out
}

// orientations returns both readings of an equality literal's sides.
func orientations(l *term.Literal) [2][2]*term.Term {
	return [2][2]*term.Term{{l.Args[0], l.Args[1]}, {l.Args[1], l.Args[0]}}
}
