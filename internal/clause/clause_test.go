package clause

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/easychair/vampire-sub000/internal/term"
)

func TestNewComputesAgeAndWeight(t *testing.T) {
	tf := term.NewFactory()
	p := tf.Intern("p", 1, term.KindPredicate)
	a := tf.Intern("a", 0, term.KindFunction)
	ta := tf.App(a)

	input := New([]*term.Literal{term.NewLiteral(p, true, ta)}, Inference{Rule: RuleInput})
	require.Equal(t, 0, input.Age())

	derived := New([]*term.Literal{term.NewLiteral(p, false, ta)}, Inference{Rule: RuleFactoring, Premises: []*Clause{input}})
	require.Equal(t, 1, derived.Age())
	require.True(t, derived.Weight() > 0)
}

func TestDedupRemovesDuplicatesCommutatively(t *testing.T) {
	tf := term.NewFactory()
	a := tf.Intern("a", 0, term.KindFunction)
	b := tf.Intern("b", 0, term.KindFunction)
	ta, tb := tf.App(a), tf.App(b)

	l1 := term.NewLiteral(term.Equality, true, ta, tb)
	l2 := term.NewLiteral(term.Equality, true, tb, ta)
	c := New([]*term.Literal{l1, l2}, Inference{Rule: RuleInput})
	require.Equal(t, 2, c.Len())
	c.Dedup()
	require.Equal(t, 1, c.Len())
}

func TestIsTautology(t *testing.T) {
	tf := term.NewFactory()
	p := tf.Intern("p", 1, term.KindPredicate)
	a := tf.Intern("a", 0, term.KindFunction)
	ta := tf.App(a)

	c := New([]*term.Literal{
		term.NewLiteral(p, true, ta),
		term.NewLiteral(p, false, ta),
	}, Inference{Rule: RuleInput})
	require.True(t, c.IsTautology())

	c2 := New([]*term.Literal{term.NewLiteral(term.Equality, true, ta, ta)}, Inference{Rule: RuleInput})
	require.True(t, c2.IsTautology())
}

func TestStoreExclusivity(t *testing.T) {
	tf := term.NewFactory()
	p := tf.Intern("p", 1, term.KindPredicate)
	a := tf.Intern("a", 0, term.KindFunction)
	ta := tf.App(a)
	c := New([]*term.Literal{term.NewLiteral(p, true, ta)}, Inference{Rule: RuleInput})

	require.Equal(t, StoreNone, c.Store())
	c.SetStore(StoreUnprocessed)
	require.Equal(t, StoreUnprocessed, c.Store())
	c.SetStore(StorePassive)
	require.Equal(t, StorePassive, c.Store())
}

func TestRefcount(t *testing.T) {
	tf := term.NewFactory()
	p := tf.Intern("p", 1, term.KindPredicate)
	a := tf.Intern("a", 0, term.KindFunction)
	ta := tf.App(a)
	c := New([]*term.Literal{term.NewLiteral(p, true, ta)}, Inference{Rule: RuleInput})

	c.Retain()
	c.Retain()
	require.False(t, c.Release())
	require.True(t, c.Release())
}
