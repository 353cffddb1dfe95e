package term

// VarRef identifies a variable occurrence by (index, bank). Banks
// disambiguate variables from different clauses without renaming
// (spec.md §3). The indexes in this module store their entries at bank 0
// and issue queries at bank 1, so bank 0 is not the query side.
type VarRef struct {
	Index int
	Bank  int
}

// Substitution maps banked variable occurrences to shared terms and
// supports backtracking via a trail, as required by spec.md §4.1.
type Substitution struct {
	bindings map[VarRef]*Term
	trail    []VarRef
}

// NewSubstitution returns an empty substitution.
func NewSubstitution() *Substitution {
	return &Substitution{bindings: make(map[VarRef]*Term)}
}

// Lookup returns the term bound to ref, if any.
func (s *Substitution) Lookup(ref VarRef) (*Term, bool) {
	t, ok := s.bindings[ref]
	return t, ok
}

// Mark returns a trail position that Backtrack can later return to.
func (s *Substitution) Mark() int { return len(s.trail) }

// TrailRefs returns the variable refs bound since the substitution was
// created, in binding order. internal/engine's SAT-encoded subsumption
// fallback uses this to detect which bindings two independently
// computed matches would conflict over.
func (s *Substitution) TrailRefs() []VarRef {
	return append([]VarRef{}, s.trail...)
}

// Bind records ref := t and pushes ref onto the trail.
func (s *Substitution) Bind(ref VarRef, t *Term) {
	s.bindings[ref] = t
	s.trail = append(s.trail, ref)
}

// Backtrack undoes every binding made since mark.
func (s *Substitution) Backtrack(mark int) {
	for i := len(s.trail) - 1; i >= mark; i-- {
		delete(s.bindings, s.trail[i])
	}
	s.trail = s.trail[:mark]
}

// Deref follows variable bindings for t@bank until reaching a
// non-variable or an unbound variable.
func (s *Substitution) Deref(t *Term, bank int) (*Term, int) {
	for t.IsVar() {
		bound, ok := s.Lookup(VarRef{Index: t.Var, Bank: bank})
		if !ok {
			return t, bank
		}
		t, bank = bound, queryBankOf(bound, bank)
	}
	return t, bank
}

// queryBankOf decides which bank a just-dereferenced term's own
// variables live in. Bound terms are always stored together with the
// bank they were bound *from* is irrelevant once substituted: once a
// variable is bound, its binding's variables belong to the bank that
// was active when the binding was created. Substitution.Bind always
// binds to terms already expressed in a single fixed bank (see Apply),
// so a bound term's variables are resolved in that same bank.
func queryBankOf(_ *Term, bank int) int { return bank }

// Apply builds the shared term obtained by substituting every bound
// variable of t (interpreted under bank) with its binding, recursively.
// Identity substitutions are detected and return t unchanged.
func (s *Substitution) Apply(f *Factory, t *Term, bank int) *Term {
	if t.IsVar() {
		bound, ok := s.Lookup(VarRef{Index: t.Var, Bank: bank})
		if !ok {
			return t
		}
		return s.Apply(f, bound, bank)
	}
	if len(t.Args) == 0 {
		return t
	}
	changed := false
	newArgs := make([]*Term, len(t.Args))
	for i, a := range t.Args {
		na := s.Apply(f, a, bank)
		newArgs[i] = na
		if na != a {
			changed = true
		}
	}
	if !changed {
		return t
	}
	return f.App(t.Func, newArgs...)
}

// occurs reports whether variable ref occurs (transitively, through
// the current bindings) in t@bank.
func (s *Substitution) occurs(ref VarRef, t *Term, bank int) bool {
	t, bank = s.Deref(t, bank)
	if t.IsVar() {
		return VarRef{Index: t.Var, Bank: bank} == ref
	}
	for _, a := range t.Args {
		if s.occurs(ref, a, bank) {
			return true
		}
	}
	return false
}

// Unify attempts Robinson unification of t1@bank1 and t2@bank2 with an
// occurs check. On success it commits bindings to s and returns true;
// on failure it leaves no net bindings (any partial bindings made
// during the attempt are rolled back).
func (s *Substitution) Unify(t1 *Term, bank1 int, t2 *Term, bank2 int) bool {
	mark := s.Mark()
	if s.unify(t1, bank1, t2, bank2) {
		return true
	}
	s.Backtrack(mark)
	return false
}

func (s *Substitution) unify(t1 *Term, bank1 int, t2 *Term, bank2 int) bool {
	t1, bank1 = s.Deref(t1, bank1)
	t2, bank2 = s.Deref(t2, bank2)

	if t1.IsVar() {
		ref := VarRef{Index: t1.Var, Bank: bank1}
		if t2.IsVar() && t2.Var == t1.Var && bank1 == bank2 {
			return true
		}
		if s.occurs(ref, t2, bank2) {
			return false
		}
		s.Bind(ref, t2)
		s.reboundAs(ref, bank2)
		return true
	}
	if t2.IsVar() {
		return s.unify(t2, bank2, t1, bank1)
	}
	if t1.Func != t2.Func {
		return false
	}
	for i := range t1.Args {
		if !s.unify(t1.Args[i], bank1, t2.Args[i], bank2) {
			return false
		}
	}
	return true
}

// reboundAs is a no-op hook kept for symmetry with Match's bank
// bookkeeping; Unify's bindings are always interpreted in the bank of
// the term they were dereferenced from, so no extra state is required.
func (s *Substitution) reboundAs(_ VarRef, _ int) {}

// Match attempts one-sided matching: variables of pattern@patBank may be
// bound, variables of instance@insBank are treated as opaque constants.
// On success bindings are committed to s and Match returns true; on
// failure no net bindings remain.
func (s *Substitution) Match(pattern *Term, patBank int, instance *Term, insBank int) bool {
	mark := s.Mark()
	if s.match(pattern, patBank, instance, insBank) {
		return true
	}
	s.Backtrack(mark)
	return false
}

func (s *Substitution) match(pattern *Term, patBank int, instance *Term, insBank int) bool {
	pattern, patBank = s.Deref(pattern, patBank)
	if pattern.IsVar() {
		ref := VarRef{Index: pattern.Var, Bank: patBank}
		if bound, ok := s.Lookup(ref); ok {
			return sameInstance(bound, instance)
		}
		s.Bind(ref, instance)
		return true
	}
	if instance.IsVar() {
		return false // instance variables are opaque constants to match
	}
	if pattern.Func != instance.Func {
		return false
	}
	for i := range pattern.Args {
		if !s.match(pattern.Args[i], patBank, instance.Args[i], insBank) {
			return false
		}
	}
	return true
}

func sameInstance(a, b *Term) bool { return a == b }

// Variant reports whether t1@bank1 and t2@bank2 are equal up to
// variable renaming, by attempting a bijective, simultaneous two-way
// match with a throwaway substitution.
func Variant(t1 *Term, bank1 int, t2 *Term, bank2 int) bool {
	fwd := NewSubstitution()
	bwd := NewSubstitution()
	return variant(fwd, bwd, t1, bank1, t2, bank2)
}

func variant(fwd, bwd *Substitution, t1 *Term, bank1 int, t2 *Term, bank2 int) bool {
	if t1.IsVar() != t2.IsVar() {
		return false
	}
	if t1.IsVar() {
		r1 := VarRef{Index: t1.Var, Bank: bank1}
		r2 := VarRef{Index: t2.Var, Bank: bank2}
		if b, ok := fwd.Lookup(r1); ok {
			if b.Var != t2.Var {
				return false
			}
		} else {
			fwd.Bind(r1, t2)
		}
		if b, ok := bwd.Lookup(r2); ok {
			if b.Var != t1.Var {
				return false
			}
		} else {
			bwd.Bind(r2, t1)
		}
		return true
	}
	if t1.Func != t2.Func {
		return false
	}
	for i := range t1.Args {
		if !variant(fwd, bwd, t1.Args[i], bank1, t2.Args[i], bank2) {
			return false
		}
	}
	return true
}
