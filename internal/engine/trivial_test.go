package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/easychair/vampire-sub000/internal/clause"
	"github.com/easychair/vampire-sub000/internal/term"
)

func TestTrivialSimplifierDeletesTautology(t *testing.T) {
	f := term.NewFactory()
	p := f.Intern("p", 0, term.KindPredicate)
	ctx := newTestContext(f, nil, []term.Symbol{p})

	ts := &TrivialSimplifier{}
	ts.Attach(ctx)
	defer ts.Detach()

	c := clause.New([]*term.Literal{
		term.NewLiteral(p, true),
		term.NewLiteral(p, false),
	}, clause.Inference{Rule: clause.RuleInput})

	outcome, replacement := ts.Perform(c)
	require.Equal(t, ForwardDeleted, outcome)
	require.Nil(t, replacement)
}

func TestTrivialSimplifierResolvesVariableEquality(t *testing.T) {
	f := term.NewFactory()
	p := f.Intern("p", 1, term.KindPredicate)
	ctx := newTestContext(f, nil, []term.Symbol{p})

	ts := &TrivialSimplifier{}
	ts.Attach(ctx)
	defer ts.Detach()

	x0, x1 := f.Var(0), f.Var(1)
	// X0 ≠ X1 ∨ p(X0)
	c := clause.New([]*term.Literal{
		term.NewLiteral(term.Equality, false, x0, x1),
		term.NewLiteral(p, true, x0),
	}, clause.Inference{Rule: clause.RuleInput})

	outcome, replacement := ts.Perform(c)
	require.Equal(t, ForwardReplaced, outcome)
	lits := replacement.Literals()
	require.Len(t, lits, 1)
	require.Equal(t, p, lits[0].Predicate)
}

func TestTrivialSimplifierCollapsesDistinctConstants(t *testing.T) {
	f := term.NewFactory()
	one := f.Intern("1", 0, term.KindNumeral)
	two := f.Intern("2", 0, term.KindNumeral)
	p := f.Intern("p", 0, term.KindPredicate)
	ctx := newTestContext(f, []term.Symbol{one, two}, []term.Symbol{p})

	ts := &TrivialSimplifier{}
	ts.Attach(ctx)
	defer ts.Detach()

	// p() ∨ 1=2
	c := clause.New([]*term.Literal{
		term.NewLiteral(p, true),
		term.NewLiteral(term.Equality, true, f.App(one), f.App(two)),
	}, clause.Inference{Rule: clause.RuleInput})

	outcome, replacement := ts.Perform(c)
	require.Equal(t, ForwardReplaced, outcome)
	lits := replacement.Literals()
	require.Len(t, lits, 1)
	require.Equal(t, p, lits[0].Predicate)
}
