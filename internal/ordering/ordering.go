// Package ordering implements the simplification orderings of spec.md
// §4.2 (component C2): KBO and LPO, both precedence orderings sharing a
// total order on function/predicate symbols, plus an incremental
// OrderingComparator for the rule-guard hot path.
package ordering

import "github.com/easychair/vampire-sub000/internal/term"

// Result mirrors term.Order's four-valued comparison but lives in this
// package's public API so callers of Ordering never need to import
// term's literal-cache-specific Order type directly.
type Result int

const (
	Incomparable Result = iota
	Greater
	Less
	Equal
)

func (r Result) String() string {
	switch r {
	case Greater:
		return "GREATER"
	case Less:
		return "LESS"
	case Equal:
		return "EQUAL"
	default:
		return "INCOMPARABLE"
	}
}

// Reverse flips Greater/Less and leaves Equal/Incomparable unchanged.
func (r Result) Reverse() Result {
	switch r {
	case Greater:
		return Less
	case Less:
		return Greater
	default:
		return r
	}
}

func (r Result) ToTermOrder() term.Order {
	switch r {
	case Greater:
		return term.OrderGreater
	case Less:
		return term.OrderLess
	case Equal:
		return term.OrderEqual
	default:
		return term.OrderIncomparable
	}
}

// Ordering is a reduction ordering: irreflexive on all terms, stable
// under substitution, and containing the subterm relation (spec.md
// §4.2). Generation changes every time the Ordering's configuration is
// rebuilt, invalidating any Literal equality-order cache stamped with
// an older generation (spec.md §3's invariant).
type Ordering interface {
	// Compare returns how t1 and t2 relate under this ordering.
	Compare(t1, t2 *term.Term) Result
	// CompareLiterals lifts Compare to literals via predicate precedence
	// and, for equalities, the argument ordering.
	CompareLiterals(l1, l2 *term.Literal) Result
	// EqualityArgumentOrder returns (and caches on l) the ordering of
	// l's two equality sides; it must equal Compare(l.Args[0], l.Args[1]).
	EqualityArgumentOrder(l *term.Literal) term.Order
	// Generation is this ordering instance's cache-invalidation stamp.
	Generation() uint64
}
