package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/easychair/vampire-sub000/internal/clause"
	"github.com/easychair/vampire-sub000/internal/term"
)

func TestForwardDemodulationRewritesWithUnitEquation(t *testing.T) {
	f := term.NewFactory()
	a := f.Intern("a", 0, term.KindFunction)
	b := f.Intern("b", 0, term.KindFunction)
	fn := f.Intern("fn", 1, term.KindFunction)
	p := f.Intern("p", 1, term.KindPredicate)
	ctx := newTestContext(f, []term.Symbol{a, b, fn}, []term.Symbol{p})

	fd := &ForwardDemodulation{}
	fd.Attach(ctx)
	defer fd.Detach()

	rule := clause.New([]*term.Literal{
		term.NewLiteral(term.Equality, true, f.App(fn, f.App(a)), f.App(b)),
	}, clause.Inference{Rule: clause.RuleInput})
	ctx.Active.Add(rule)

	candidate := clause.New([]*term.Literal{
		term.NewLiteral(p, true, f.App(fn, f.App(a))),
	}, clause.Inference{Rule: clause.RuleInput})

	outcome, replacement := fd.Perform(candidate)
	require.Equal(t, ForwardReplaced, outcome)
	require.Same(t, f.App(b), replacement.Literals()[0].Args[0])
}

func TestBackwardDemodulationRewritesActiveInstance(t *testing.T) {
	f := term.NewFactory()
	a := f.Intern("a", 0, term.KindFunction)
	b := f.Intern("b", 0, term.KindFunction)
	fn := f.Intern("fn", 1, term.KindFunction)
	p := f.Intern("p", 1, term.KindPredicate)
	ctx := newTestContext(f, []term.Symbol{a, b, fn}, []term.Symbol{p})

	bd := &BackwardDemodulation{}
	bd.Attach(ctx)
	defer bd.Detach()

	instance := clause.New([]*term.Literal{
		term.NewLiteral(p, true, f.App(fn, f.App(a))),
	}, clause.Inference{Rule: clause.RuleInput})
	ctx.Active.Add(instance)

	rule := clause.New([]*term.Literal{
		term.NewLiteral(term.Equality, true, f.App(fn, f.App(a)), f.App(b)),
	}, clause.Inference{Rule: clause.RuleInput})

	sims := bd.Perform(rule)
	require.Len(t, sims, 1)
	require.Same(t, instance, sims[0].Remove)
	require.Same(t, f.App(b), sims[0].Replacement.Literals()[0].Args[0])
}
