package term

// Order is the cached argument order of an equality literal, set by
// whichever internal/ordering.Ordering is current (spec.md §4.1, §4.2).
type Order int

const (
	OrderUnknown Order = iota
	OrderGreater
	OrderLess
	OrderEqual
	OrderIncomparable
)

// Literal is a term-shaped object headed by a predicate symbol with a
// sign. Equality literals are commutative in storage: Equal treats
// [s, t] and [t, s] as the same literal, and their cached Order is only
// meaningful relative to the Ordering that produced it.
type Literal struct {
	Predicate Symbol
	Positive  bool
	Args      []*Term

	order      Order
	orderOwner uint64 // opaque ordering generation stamp, see SetOrder
}

// NewLiteral builds a literal over already-shared term arguments.
func NewLiteral(pred Symbol, positive bool, args ...*Term) *Literal {
	return &Literal{Predicate: pred, Positive: positive, Args: args}
}

// IsEquality reports whether l's predicate is the distinguished
// equality symbol.
func (l *Literal) IsEquality() bool { return l.Predicate.Kind == KindEquality }

// Negate returns a literal identical to l but with the opposite sign.
func (l *Literal) Negate() *Literal {
	return &Literal{Predicate: l.Predicate, Positive: !l.Positive, Args: l.Args, order: l.order, orderOwner: l.orderOwner}
}

// Equal reports structural equality up to equality-literal commutativity.
// Arguments are assumed already canonical (pointer-comparable).
func (l *Literal) Equal(o *Literal) bool {
	if l.Predicate != o.Predicate || l.Positive != o.Positive || len(l.Args) != len(o.Args) {
		return false
	}
	if l.IsEquality() && len(l.Args) == 2 {
		if l.Args[0] == o.Args[0] && l.Args[1] == o.Args[1] {
			return true
		}
		return l.Args[0] == o.Args[1] && l.Args[1] == o.Args[0]
	}
	for i := range l.Args {
		if l.Args[i] != o.Args[i] {
			return false
		}
	}
	return true
}

// IsTautologyPair reports whether l and o form a trivial tautology pair
// L ∨ ¬L inside the same clause (spec.md §4.5 "Trivial simplifications").
func (l *Literal) IsTautologyPair(o *Literal) bool {
	if l.Predicate != o.Predicate || l.Positive == o.Positive || len(l.Args) != len(o.Args) {
		return false
	}
	if l.IsEquality() && len(l.Args) == 2 {
		return (l.Args[0] == o.Args[0] && l.Args[1] == o.Args[1]) ||
			(l.Args[0] == o.Args[1] && l.Args[1] == o.Args[0])
	}
	for i := range l.Args {
		if l.Args[i] != o.Args[i] {
			return false
		}
	}
	return true
}

// IsReflexivity reports whether l is a positive equality t = t, a
// tautology deleted by immediateSimplify (spec.md §4.7).
func (l *Literal) IsReflexivity() bool {
	return l.IsEquality() && l.Positive && len(l.Args) == 2 && l.Args[0] == l.Args[1]
}

// Weight is the sum of term weights of l's arguments plus one for the
// predicate itself, contributing to Clause.Weight.
func (l *Literal) Weight() int {
	w := 1
	for _, a := range l.Args {
		w += a.Weight()
	}
	return w
}

// CachedOrder returns the equality argument order cached for generation
// gen (an ordering-identity stamp), or OrderUnknown if the cache is
// stale or was never set. Callers must recompute and SetOrder when
// stale, keeping the invariant of spec.md §3: "if the Ordering is
// replaced the cache must be invalidated."
func (l *Literal) CachedOrder(gen uint64) Order {
	if l.orderOwner != gen {
		return OrderUnknown
	}
	return l.order
}

// SetOrder stores the equality argument order computed under ordering
// generation gen.
func (l *Literal) SetOrder(gen uint64, ord Order) {
	l.orderOwner = gen
	l.order = ord
}
