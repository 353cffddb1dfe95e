package index

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/easychair/vampire-sub000/internal/term"
)

func TestGeneralizationsFindsVariablePattern(t *testing.T) {
	f := term.NewFactory()
	a := f.Intern("a", 0, term.KindFunction)
	g := f.Intern("g", 1, term.KindFunction)

	x := NewSubstitutionTree()
	pattern := f.App(g, f.Var(0)) // g(X0), stored at bank 0
	x.Insert(pattern, 0, Payload{Side: -1})

	inner := f.App(a)
	query := f.App(g, inner) // g(a), queried at bank 1
	res := x.Generalizations(f, query, 1)
	require.Len(t, res, 1)
	require.Same(t, pattern, res[0].Term)
	bound, ok := res[0].Subst.Lookup(term.VarRef{Index: 0, Bank: 0})
	require.True(t, ok)
	require.Same(t, inner, bound)
}

func TestInstancesIsInverseOfGeneralizations(t *testing.T) {
	f := term.NewFactory()
	a := f.Intern("a", 0, term.KindFunction)
	g := f.Intern("g", 1, term.KindFunction)

	x := NewSubstitutionTree()
	ground := f.App(g, f.App(a))
	x.Insert(ground, 0, Payload{Side: -1})

	query := f.App(g, f.Var(0)) // g(X0), an instance query
	res := x.Instances(f, query, 1)
	require.Len(t, res, 1)
	require.Same(t, ground, res[0].Term)
}

func TestUnificationsFindsCompatibleEntry(t *testing.T) {
	f := term.NewFactory()
	g := f.Intern("g", 2, term.KindFunction)
	a := f.Intern("a", 0, term.KindFunction)
	b := f.Intern("b", 0, term.KindFunction)

	x := NewSubstitutionTree()
	stored := f.App(g, f.Var(0), f.App(b))
	x.Insert(stored, 0, Payload{Side: -1})

	query := f.App(g, f.App(a), f.Var(1))
	res := x.Unifications(f, query, 1)
	require.Len(t, res, 1)
}

func TestVariantsRequireExactShape(t *testing.T) {
	f := term.NewFactory()
	g := f.Intern("g", 1, term.KindFunction)

	x := NewSubstitutionTree()
	stored := f.App(g, f.Var(0))
	x.Insert(stored, 0, Payload{Side: -1})

	variantQuery := f.App(g, f.Var(5))
	require.Len(t, x.Variants(variantQuery, 1), 1)

	a := f.Intern("a", 0, term.KindFunction)
	groundQuery := f.App(g, f.App(a))
	require.Len(t, x.Variants(groundQuery, 1), 0)
}

func TestRemoveDropsEntry(t *testing.T) {
	f := term.NewFactory()
	a := f.Intern("a", 0, term.KindFunction)

	x := NewSubstitutionTree()
	h := x.Insert(f.App(a), 0, Payload{Side: -1})
	require.Equal(t, 1, x.Size())
	require.True(t, x.Remove(h))
	require.Equal(t, 0, x.Size())
	require.False(t, x.Remove(h))
}

func TestCodeTreeRewritesGeneralizingLHS(t *testing.T) {
	f := term.NewFactory()
	a := f.Intern("a", 0, term.KindFunction)
	b := f.Intern("b", 0, term.KindFunction)
	g := f.Intern("g", 1, term.KindFunction)

	ct := NewCodeTree()
	lhs := f.App(g, f.Var(0))
	rhs := f.App(b)
	ct.InsertRewrite(lhs, rhs, 0, Payload{Side: 0})

	query := f.App(g, f.App(a))
	res := ct.Rewrites(query, 1)
	require.Len(t, res, 1)
	require.Same(t, rhs, res[0].RHS)
}

func TestCodeTreeRemove(t *testing.T) {
	f := term.NewFactory()
	a := f.Intern("a", 0, term.KindFunction)
	b := f.Intern("b", 0, term.KindFunction)

	ct := NewCodeTree()
	h := ct.InsertRewrite(f.App(a), f.App(b), 0, Payload{Side: 0})
	require.Equal(t, 1, ct.Size())
	require.True(t, ct.Remove(h))
	require.Equal(t, 0, ct.Size())
}
