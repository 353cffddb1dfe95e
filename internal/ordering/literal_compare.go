package ordering

import "github.com/easychair/vampire-sub000/internal/term"

// termOrdering is the subset of Ordering that compareLiteralsGeneric and
// equalityArgumentOrderGeneric need; both KBO and LPO implement it.
type termOrdering interface {
	Compare(t1, t2 *term.Term) Result
	Generation() uint64
}

// compareLiteralsGeneric lifts a term Ordering to literals via predicate
// precedence and, for equalities, the argument ordering (spec.md §4.2).
func compareLiteralsGeneric(o termOrdering, prec *Precedence, l1, l2 *term.Literal) Result {
	if l1.IsEquality() && l2.IsEquality() {
		return compareEqualityLiterals(o, l1, l2)
	}
	if l1.IsEquality() != l2.IsEquality() {
		// Equality is the lowest predicate level (spec.md §4.2): a
		// non-equality literal always outranks an equality literal.
		if l1.IsEquality() {
			return Less
		}
		return Greater
	}
	pr := prec.ComparePredicates(l1.Predicate, l2.Predicate)
	if pr != Equal {
		return pr
	}
	// Same predicate: compare argument tuples lexicographically.
	for i := range l1.Args {
		if l1.Args[i] == l2.Args[i] {
			continue
		}
		return o.Compare(l1.Args[i], l2.Args[i])
	}
	return Equal
}

func compareEqualityLiterals(o termOrdering, l1, l2 *term.Literal) Result {
	ord1 := equalityArgumentOrderGeneric(o, l1)
	ord2 := equalityArgumentOrderGeneric(o, l2)
	big1 := maxSide(l1, ord1)
	big2 := maxSide(l2, ord2)
	return o.Compare(big1, big2)
}

func maxSide(l *term.Literal, ord term.Order) *term.Term {
	if ord == term.OrderLess {
		return l.Args[1]
	}
	return l.Args[0]
}

// equalityArgumentOrderGeneric computes (and caches on l) the order of
// l's equality sides, satisfying the testable property of spec.md §8:
// EqualityArgumentOrder(l) == Compare(l.Args[0], l.Args[1]).
func equalityArgumentOrderGeneric(o termOrdering, l *term.Literal) term.Order {
	gen := o.Generation()
	if cached := l.CachedOrder(gen); cached != term.OrderUnknown {
		return cached
	}
	ord := o.Compare(l.Args[0], l.Args[1]).ToTermOrder()
	l.SetOrder(gen, ord)
	return ord
}
