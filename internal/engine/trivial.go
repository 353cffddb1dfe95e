package engine

import (
	"sync"

	"github.com/easychair/vampire-sub000/internal/clause"
	"github.com/easychair/vampire-sub000/internal/term"
)

// TrivialSimplifier performs the cheap, deterministic rewrites
// immediateSimplify runs to fixpoint (spec.md §4.7): tautology
// deletion, duplicate-literal removal, variable-to-variable equality
// resolution, and distinct-equality simplification (c1=c2 for distinct
// numeral/theory constants collapses to false; c1≠c2 collapses to
// true). The saturation loop owns a dedicated instance for this step;
// it is not one of the registered forward simplifiers.
type TrivialSimplifier struct {
	mu  sync.Mutex
	ctx *Context
}

func (t *TrivialSimplifier) Name() string { return "trivial-simplification" }

func (t *TrivialSimplifier) Attach(ctx *Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ctx = ctx
}

func (t *TrivialSimplifier) Detach() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ctx = nil
}

func (t *TrivialSimplifier) Perform(candidate *clause.Clause) (ForwardOutcome, *clause.Clause) {
	t.mu.Lock()
	ctx := t.ctx
	t.mu.Unlock()
	if ctx == nil {
		return ForwardUnchanged, nil
	}
	if candidate.IsTautology() {
		return ForwardDeleted, nil
	}
	lits := candidate.Literals()

	for _, l := range lits {
		if l.IsEquality() && !l.Positive && isDistinctConstants(l) {
			return ForwardDeleted, nil // an always-true disjunct makes the clause a tautology
		}
	}

	for i, l := range lits {
		if l.IsEquality() && !l.Positive && l.Args[0].IsVar() && l.Args[1].IsVar() {
			sigma := term.NewSubstitution()
			if l.Args[0] == l.Args[1] {
				continue // X≠X is left to the equality-resolution generator; IsTautology does not treat it
			}
			if sigma.Unify(l.Args[0], 0, l.Args[1], 0) {
				rest := applySubstToLiterals(ctx.Factory, sigma, lits, 0, i)
				replacement := clause.New(rest, clause.Inference{Rule: clause.RuleTrivialSimplification, Premises: []*clause.Clause{candidate}})
				return ForwardReplaced, replacement
			}
		}
	}

	var kept []*term.Literal
	changed := false
	for _, l := range lits {
		if l.IsEquality() && l.Positive && isDistinctConstants(l) {
			changed = true // an always-false disjunct contributes nothing
			continue
		}
		kept = append(kept, l)
	}
	deduped := make([]*term.Literal, 0, len(kept))
	for _, l := range kept {
		dup := false
		for _, k := range deduped {
			if l.Equal(k) {
				dup = true
				break
			}
		}
		if dup {
			changed = true
			continue
		}
		deduped = append(deduped, l)
	}
	if !changed {
		return ForwardUnchanged, nil
	}
	replacement := clause.New(deduped, clause.Inference{Rule: clause.RuleTrivialSimplification, Premises: []*clause.Clause{candidate}})
	return ForwardReplaced, replacement
}

// isDistinctConstants reports whether l's two equality sides are
// distinct ground numeral/theory constants, which are treated as
// pairwise apart under the unique-names convention TPTP arithmetic
// problems rely on.
func isDistinctConstants(l *term.Literal) bool {
	if !l.IsEquality() || len(l.Args) != 2 {
		return false
	}
	a, b := l.Args[0], l.Args[1]
	if !a.Ground() || !b.Ground() {
		return false
	}
	if !isConstantKind(a.Func.Kind) || !isConstantKind(b.Func.Kind) {
		return false
	}
	return a.Func != b.Func
}

func isConstantKind(k term.SymbolKind) bool {
	return k == term.KindNumeral || k == term.KindTheory
}
