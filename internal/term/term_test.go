package term

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFactoryShareIdentity(t *testing.T) {
	f := NewFactory()
	a := f.Intern("a", 0, KindFunction)
	g := f.Intern("g", 1, KindFunction)

	t1 := f.App(g, f.App(a))
	t2 := f.App(g, f.App(a))
	require.Same(t, t1, t2, "structurally equal terms must share a pointer")

	x0 := f.Var(0)
	x0b := f.Var(0)
	require.Same(t, x0, x0b)

	t3 := f.App(g, x0)
	require.NotSame(t, t1, t3)
}

func TestTermAttributes(t *testing.T) {
	f := NewFactory()
	a := f.Intern("a", 0, KindFunction)
	g := f.Intern("g", 2, KindFunction)

	ta := f.App(a)
	require.True(t, ta.Ground())
	require.Equal(t, 0, len(ta.FreeVars()))

	x0 := f.Var(0)
	gx := f.App(g, ta, x0)
	require.False(t, gx.Ground())
	require.Equal(t, []int{0}, gx.FreeVars())
	require.Equal(t, 1, gx.VarCount(0))

	gxx := f.App(g, x0, x0)
	require.Equal(t, 2, gxx.VarCount(0))
}

func TestLiteralEqualityCommutative(t *testing.T) {
	f := NewFactory()
	a := f.Intern("a", 0, KindFunction)
	b := f.Intern("b", 0, KindFunction)
	ta, tb := f.App(a), f.App(b)

	l1 := NewLiteral(Equality, true, ta, tb)
	l2 := NewLiteral(Equality, true, tb, ta)
	require.True(t, l1.Equal(l2))

	l3 := NewLiteral(Equality, false, ta, tb)
	require.False(t, l1.Equal(l3))
	require.True(t, l1.IsTautologyPair(l3))
}

func TestLiteralReflexivity(t *testing.T) {
	f := NewFactory()
	a := f.Intern("a", 0, KindFunction)
	ta := f.App(a)
	l := NewLiteral(Equality, true, ta, ta)
	require.True(t, l.IsReflexivity())
}
