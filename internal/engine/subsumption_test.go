package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/easychair/vampire-sub000/internal/clause"
	"github.com/easychair/vampire-sub000/internal/term"
)

func TestSubsumptionDeletesSubsumedCandidate(t *testing.T) {
	f := term.NewFactory()
	a := f.Intern("a", 0, term.KindFunction)
	p := f.Intern("p", 1, term.KindPredicate)
	q := f.Intern("q", 1, term.KindPredicate)
	ctx := newTestContext(f, []term.Symbol{a}, []term.Symbol{p, q})

	sub := &Subsumption{}
	sub.Attach(ctx)
	defer sub.Detach()

	// p(X0) is Active; it subsumes any clause containing a p literal.
	generalized := clause.New([]*term.Literal{
		term.NewLiteral(p, true, f.Var(0)),
	}, clause.Inference{Rule: clause.RuleInput})
	ctx.Active.Add(generalized)

	candidate := clause.New([]*term.Literal{
		term.NewLiteral(p, true, f.App(a)),
		term.NewLiteral(q, true, f.App(a)),
	}, clause.Inference{Rule: clause.RuleInput})

	outcome, replacement := sub.Perform(candidate)
	require.Equal(t, ForwardDeleted, outcome)
	require.Nil(t, replacement)
}

func TestSubsumptionResolutionStripsResolvedLiteral(t *testing.T) {
	f := term.NewFactory()
	a := f.Intern("a", 0, term.KindFunction)
	p := f.Intern("p", 1, term.KindPredicate)
	q := f.Intern("q", 1, term.KindPredicate)
	ctx := newTestContext(f, []term.Symbol{a}, []term.Symbol{p, q})

	sr := &SubsumptionResolution{}
	sr.Attach(ctx)
	defer sr.Detach()

	// p(X0) ∨ ¬q(X0) is Active.
	d := clause.New([]*term.Literal{
		term.NewLiteral(p, true, f.Var(0)),
		term.NewLiteral(q, false, f.Var(0)),
	}, clause.Inference{Rule: clause.RuleInput})
	ctx.Active.Add(d)

	// p(a) ∨ q(a): D subsumes it once q(a) is negated to ¬q(a).
	candidate := clause.New([]*term.Literal{
		term.NewLiteral(p, true, f.App(a)),
		term.NewLiteral(q, true, f.App(a)),
	}, clause.Inference{Rule: clause.RuleInput})

	outcome, replacement := sr.Perform(candidate)
	require.Equal(t, ForwardReplaced, outcome)
	lits := replacement.Literals()
	require.Len(t, lits, 1)
	require.Equal(t, p, lits[0].Predicate)
}
