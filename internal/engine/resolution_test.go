package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/easychair/vampire-sub000/internal/clause"
	"github.com/easychair/vampire-sub000/internal/term"
)

func TestBinaryResolutionDerivesComplementaryClash(t *testing.T) {
	f := term.NewFactory()
	a := f.Intern("a", 0, term.KindFunction)
	p := f.Intern("p", 1, term.KindPredicate)
	q := f.Intern("q", 1, term.KindPredicate)
	ctx := newTestContext(f, []term.Symbol{a}, []term.Symbol{p, q})

	r := &BinaryResolution{}
	r.Attach(ctx)
	defer r.Detach()

	// p(X0) ∨ q(X0)
	c1 := clause.New([]*term.Literal{
		term.NewLiteral(p, true, f.Var(0)),
		term.NewLiteral(q, true, f.Var(0)),
	}, clause.Inference{Rule: clause.RuleInput})
	// ¬p(a)
	c2 := clause.New([]*term.Literal{
		term.NewLiteral(p, false, f.App(a)),
	}, clause.Inference{Rule: clause.RuleInput})

	ctx.Active.Add(c1)
	out := r.Generate(c2)
	require.Len(t, out, 1)
	require.Len(t, out[0].Literals(), 1)
	require.Equal(t, q, out[0].Literals()[0].Predicate)
}

func TestEqualityResolutionUnifiesDisequality(t *testing.T) {
	f := term.NewFactory()
	a := f.Intern("a", 0, term.KindFunction)
	p := f.Intern("p", 1, term.KindPredicate)
	ctx := newTestContext(f, []term.Symbol{a}, []term.Symbol{p})

	er := &EqualityResolution{}
	er.Attach(ctx)
	defer er.Detach()

	// X0 ≠ X0 ∨ p(X0)   (trivial but exercises the generator's own unify path)
	x0 := f.Var(0)
	c := clause.New([]*term.Literal{
		term.NewLiteral(term.Equality, false, x0, x0),
		term.NewLiteral(p, true, x0),
	}, clause.Inference{Rule: clause.RuleInput})

	out := er.Generate(c)
	require.Len(t, out, 1)
	require.Len(t, out[0].Literals(), 1)
	require.Equal(t, p, out[0].Literals()[0].Predicate)
}
