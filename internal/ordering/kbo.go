package ordering

import "github.com/easychair/vampire-sub000/internal/term"

// KBO is the Knuth-Bendix ordering parametrized by a symbol Precedence
// and the flat weight scheme cached on every term.Term (spec.md §4.2).
// KBO rejects t > t, is stable under substitution (it only consults
// cached weights and free-variable counts, both of which are preserved
// by Substitution.Apply building fresh shared terms), and contains the
// subterm relation (enforced directly in the variable cases below).
type KBO struct {
	prec *Precedence
}

// NewKBO builds a KBO ordering over prec.
func NewKBO(prec *Precedence) *KBO { return &KBO{prec: prec} }

func (k *KBO) Generation() uint64 { return k.prec.gen }

func (k *KBO) Compare(t1, t2 *term.Term) Result {
	if t1 == t2 {
		return Equal
	}
	if t1.IsVar() {
		if t2.IsVar() {
			return Incomparable
		}
		if containsVar(t2, t1.Var) {
			return Less
		}
		return Incomparable
	}
	if t2.IsVar() {
		if containsVar(t1, t2.Var) {
			return Greater
		}
		return Incomparable
	}

	w1, w2 := t1.Weight(), t2.Weight()
	switch {
	case w1 > w2:
		if varBalanceOK(t1, t2) {
			return Greater
		}
		return Incomparable
	case w1 < w2:
		if varBalanceOK(t2, t1) {
			return Less
		}
		return Incomparable
	default:
		if t1.Func == t2.Func {
			return k.compareArgsLex(t1, t2)
		}
		r1, r2 := k.prec.FuncRank(t1.Func), k.prec.FuncRank(t2.Func)
		switch {
		case r1 > r2:
			if varBalanceOK(t1, t2) {
				return Greater
			}
		case r1 < r2:
			if varBalanceOK(t2, t1) {
				return Less
			}
		}
		return Incomparable
	}
}

func (k *KBO) compareArgsLex(t1, t2 *term.Term) Result {
	for i := range t1.Args {
		if t1.Args[i] == t2.Args[i] {
			continue
		}
		return k.Compare(t1.Args[i], t2.Args[i])
	}
	return Equal
}

func (k *KBO) CompareLiterals(l1, l2 *term.Literal) Result {
	return compareLiteralsGeneric(k, k.prec, l1, l2)
}

func (k *KBO) EqualityArgumentOrder(l *term.Literal) term.Order {
	return equalityArgumentOrderGeneric(k, l)
}

func containsVar(t *term.Term, v int) bool {
	if t.IsVar() {
		return t.Var == v
	}
	for _, a := range t.Args {
		if containsVar(a, v) {
			return true
		}
	}
	return false
}

// varBalanceOK implements KBO's variable-balance tie-break (spec.md
// §4.2): big ≻ small requires every variable occurring in small to
// occur at least as often in big.
func varBalanceOK(big, small *term.Term) bool {
	for _, v := range small.FreeVars() {
		if big.VarCount(v) < small.VarCount(v) {
			return false
		}
	}
	return true
}
