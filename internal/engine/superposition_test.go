package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/easychair/vampire-sub000/internal/clause"
	"github.com/easychair/vampire-sub000/internal/term"
)

func TestSuperpositionRewritesSubtermIntoMaximalSide(t *testing.T) {
	f := term.NewFactory()
	a := f.Intern("a", 0, term.KindFunction)
	b := f.Intern("b", 0, term.KindFunction)
	fn := f.Intern("f", 1, term.KindFunction)
	p := f.Intern("p", 1, term.KindPredicate)
	ctx := newTestContext(f, []term.Symbol{a, b, fn}, []term.Symbol{p})

	sp := &Superposition{}
	sp.Attach(ctx)
	defer sp.Detach()

	// f(a) = b
	eq := clause.New([]*term.Literal{
		term.NewLiteral(term.Equality, true, f.App(fn, f.App(a)), f.App(b)),
	}, clause.Inference{Rule: clause.RuleInput})
	ctx.Active.Add(eq)

	// p(f(a))
	given := clause.New([]*term.Literal{
		term.NewLiteral(p, true, f.App(fn, f.App(a))),
	}, clause.Inference{Rule: clause.RuleInput})

	out := sp.Generate(given)
	require.Len(t, out, 1)
	lits := out[0].Literals()
	require.Len(t, lits, 1)
	require.Equal(t, p, lits[0].Predicate)
	require.Same(t, f.App(b), lits[0].Args[0])
}
