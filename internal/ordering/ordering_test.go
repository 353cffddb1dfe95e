package ordering

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/easychair/vampire-sub000/internal/term"
)

func buildKBO(tf *term.Factory, funcs, preds []term.Symbol) *KBO {
	prec := NewPrecedence(funcs, preds, PrecedenceOptions{}, 1)
	return NewKBO(prec)
}

func TestKBORejectsReflexivity(t *testing.T) {
	tf := term.NewFactory()
	a := tf.Intern("a", 0, term.KindFunction)
	k := buildKBO(tf, []term.Symbol{a}, nil)

	ta := tf.App(a)
	require.Equal(t, Equal, k.Compare(ta, ta))
}

func TestKBOWeightDominates(t *testing.T) {
	tf := term.NewFactory()
	a := tf.Intern("a", 0, term.KindFunction)
	g := tf.Intern("g", 1, term.KindFunction)
	k := buildKBO(tf, []term.Symbol{a, g}, nil)

	ta := tf.App(a)
	ga := tf.App(g, ta)
	require.Equal(t, Greater, k.Compare(ga, ta))
	require.Equal(t, Less, k.Compare(ta, ga))
}

func TestKBOVariableBalance(t *testing.T) {
	tf := term.NewFactory()
	g := tf.Intern("g", 2, term.KindFunction)
	h := tf.Intern("h", 2, term.KindFunction)
	k := buildKBO(tf, []term.Symbol{g, h}, nil)

	x0, x1 := tf.Var(0), tf.Var(1)
	// g(X,X) and h(X,Y) have equal weight (3) but h introduces a variable
	// (Y) not present in g(X,X): the balance check must reject g(X,X) > h(X,Y).
	gxx := tf.App(g, x0, x0)
	hxy := tf.App(h, x0, x1)
	require.Equal(t, Incomparable, k.Compare(gxx, hxy))
}

func TestKBOSubtermVariable(t *testing.T) {
	tf := term.NewFactory()
	g := tf.Intern("g", 1, term.KindFunction)
	k := buildKBO(tf, []term.Symbol{g}, nil)

	x0 := tf.Var(0)
	gx := tf.App(g, x0)
	require.Equal(t, Greater, k.Compare(gx, x0))
	require.Equal(t, Less, k.Compare(x0, gx))
}

func TestLPOPrecedenceDrivesEqualWeight(t *testing.T) {
	tf := term.NewFactory()
	f := tf.Intern("f", 1, term.KindFunction)
	g := tf.Intern("g", 1, term.KindFunction)
	a := tf.Intern("a", 0, term.KindFunction)
	prec := NewPrecedence([]term.Symbol{a, g, f}, nil, PrecedenceOptions{}, 1)
	o := NewLPO(prec)

	ta := tf.App(a)
	fa := tf.App(f, ta)
	ga := tf.App(g, ta)
	// f ranked after g in registration order => f > g at equal structure.
	require.Equal(t, Greater, o.Compare(fa, ga))
}

func TestEqualityArgumentOrderCache(t *testing.T) {
	tf := term.NewFactory()
	a := tf.Intern("a", 0, term.KindFunction)
	g := tf.Intern("g", 1, term.KindFunction)
	k := buildKBO(tf, []term.Symbol{a, g}, []term.Symbol{term.Equality})

	ta := tf.App(a)
	ga := tf.App(g, ta)
	lit := term.NewLiteral(term.Equality, true, ga, ta)

	ord := k.EqualityArgumentOrder(lit)
	require.Equal(t, term.OrderGreater, ord)
	require.Equal(t, ord, k.Compare(ga, ta).ToTermOrder())
}

func TestComparatorReplaysUnderSubstitution(t *testing.T) {
	tf := term.NewFactory()
	a := tf.Intern("a", 0, term.KindFunction)
	g := tf.Intern("g", 1, term.KindFunction)
	k := buildKBO(tf, []term.Symbol{a, g}, nil)
	cmp := NewComparator(k)

	x0 := tf.Var(0)
	gx := tf.App(g, x0)
	prog := cmp.Build(gx, x0)

	s := term.NewSubstitution()
	ta := tf.App(a)
	require.True(t, s.Unify(x0, 0, ta, 1))

	result := cmp.Run(prog, tf, s, 0, 0)
	require.Equal(t, Greater, result)
}
