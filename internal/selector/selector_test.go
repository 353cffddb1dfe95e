package selector

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/easychair/vampire-sub000/internal/ordering"
	"github.com/easychair/vampire-sub000/internal/term"
)

// fakeClause is a minimal Clause implementation for selector tests.
type fakeClause struct {
	lits     []*term.Literal
	selected int
}

func (f *fakeClause) Literals() []*term.Literal { return f.lits }
func (f *fakeClause) ReorderLiterals(order []int) {
	out := make([]*term.Literal, len(order))
	for i, idx := range order {
		out[i] = f.lits[idx]
	}
	f.lits = out
}
func (f *fakeClause) SetSelectedCount(k int) { f.selected = k }

func buildOrdering(tf *term.Factory, preds ...term.Symbol) ordering.Ordering {
	prec := ordering.NewPrecedence(nil, preds, ordering.PrecedenceOptions{}, 1)
	return ordering.NewKBO(prec)
}

func TestMaximalityOnlySelectsAllMaximal(t *testing.T) {
	tf := term.NewFactory()
	p := tf.Intern("p", 1, term.KindPredicate)
	q := tf.Intern("q", 1, term.KindPredicate)
	ord := buildOrdering(tf, p, q)

	a := tf.Intern("a", 0, term.KindFunction)
	ta := tf.App(a)
	c := &fakeClause{lits: []*term.Literal{
		term.NewLiteral(p, true, ta),
		term.NewLiteral(q, false, ta),
	}}
	MaximalityOnly{}.Select(ord, c)
	require.GreaterOrEqual(t, c.selected, 1)
}

func TestNegativePriorityPrefersNegative(t *testing.T) {
	tf := term.NewFactory()
	p := tf.Intern("p", 1, term.KindPredicate)
	ord := buildOrdering(tf, p)

	a := tf.Intern("a", 0, term.KindFunction)
	b := tf.Intern("b", 0, term.KindFunction)
	ta, tb := tf.App(a), tf.App(b)
	c := &fakeClause{lits: []*term.Literal{
		term.NewLiteral(p, true, ta),
		term.NewLiteral(p, false, tb),
	}}
	NegativePriority{}.Select(ord, c)
	require.Equal(t, 1, c.selected)
}

func TestSizeBasedPicksOneLiteral(t *testing.T) {
	tf := term.NewFactory()
	p := tf.Intern("p", 1, term.KindPredicate)
	ord := buildOrdering(tf, p)
	a := tf.Intern("a", 0, term.KindFunction)
	ta := tf.App(a)
	c := &fakeClause{lits: []*term.Literal{term.NewLiteral(p, true, ta)}}
	SizeBased{}.Select(ord, c)
	require.Equal(t, 1, c.selected)
}

func TestSelectionIdempotent(t *testing.T) {
	tf := term.NewFactory()
	p := tf.Intern("p", 1, term.KindPredicate)
	q := tf.Intern("q", 1, term.KindPredicate)
	ord := buildOrdering(tf, p, q)
	a := tf.Intern("a", 0, term.KindFunction)
	ta := tf.App(a)
	c := &fakeClause{lits: []*term.Literal{
		term.NewLiteral(p, true, ta),
		term.NewLiteral(q, false, ta),
	}}
	MaximalityOnly{}.Select(ord, c)
	first := append([]*term.Literal{}, c.lits...)
	firstK := c.selected
	MaximalityOnly{}.Select(ord, c)
	require.Equal(t, firstK, c.selected)
	require.Equal(t, first, c.lits)
}
