package ordering

import "github.com/easychair/vampire-sub000/internal/term"

// LPO is the lexicographic path ordering, sharing the same symbol
// Precedence family as KBO (spec.md §4.2).
type LPO struct {
	prec *Precedence
}

// NewLPO builds an LPO ordering over prec.
func NewLPO(prec *Precedence) *LPO { return &LPO{prec: prec} }

func (o *LPO) Generation() uint64 { return o.prec.gen }

func (o *LPO) Compare(t1, t2 *term.Term) Result {
	if t1 == t2 {
		return Equal
	}
	if o.gt(t1, t2) {
		return Greater
	}
	if o.gt(t2, t1) {
		return Less
	}
	return Incomparable
}

// gt is the classical recursive-path greater-than test: s > t iff some
// subterm of s is >= t, or s and t share a head symbol and s's argument
// tuple lexicographically dominates t's (with s > every argument of t),
// or s's head symbol outranks t's head symbol (again with s > every
// argument of t).
func (o *LPO) gt(s, t *term.Term) bool {
	if s.IsVar() {
		return false
	}
	for _, si := range s.Args {
		if si == t || o.gt(si, t) {
			return true
		}
	}
	if t.IsVar() {
		return false // containment already checked via the subterm loop above
	}
	if s.Func == t.Func {
		return o.lexGT(s.Args, t.Args) && o.gtAll(s, t.Args)
	}
	if o.prec.ComparePredicatesAsFuncs(s.Func, t.Func) == Greater {
		return o.gtAll(s, t.Args)
	}
	return false
}

func (o *LPO) gtAll(s *term.Term, args []*term.Term) bool {
	for _, a := range args {
		if a != s && !o.gt(s, a) {
			return false
		}
	}
	return true
}

func (o *LPO) lexGT(a, b []*term.Term) bool {
	for i := range a {
		if a[i] == b[i] {
			continue
		}
		return o.gt(a[i], b[i])
	}
	return false
}

func (o *LPO) CompareLiterals(l1, l2 *term.Literal) Result {
	return compareLiteralsGeneric(o, o.prec, l1, l2)
}

func (o *LPO) EqualityArgumentOrder(l *term.Literal) term.Order {
	return equalityArgumentOrderGeneric(o, l)
}

// ComparePredicatesAsFuncs lets LPO's term-level gt reuse the function
// precedence ranking for head-symbol comparisons.
func (p *Precedence) ComparePredicatesAsFuncs(a, b term.Symbol) Result {
	ra, rb := p.FuncRank(a), p.FuncRank(b)
	switch {
	case ra == rb:
		return Equal
	case ra > rb:
		return Greater
	default:
		return Less
	}
}
