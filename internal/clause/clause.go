// Package clause implements the clause model of spec.md §3: a literal
// multiset with an Inference record, Age/Weight, a Store tag and an
// optional selected-literal prefix, reference-counted so that proofs
// can keep ancestor clauses alive past their container membership.
package clause

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/easychair/vampire-sub000/internal/term"
)

// Store denotes which container currently owns a clause (spec.md §3).
type Store int

const (
	StoreNone Store = iota
	StoreUnprocessed
	StorePassive
	StoreActive
)

func (s Store) String() string {
	switch s {
	case StoreUnprocessed:
		return "Unprocessed"
	case StorePassive:
		return "Passive"
	case StoreActive:
		return "Active"
	default:
		return "None"
	}
}

// Clause is a multiset of literals together with proof-reconstruction
// and redundancy-reasoning metadata.
type Clause struct {
	ID uuid.UUID

	mu            sync.Mutex
	lits          []*term.Literal
	inf           Inference
	age           int
	weight        int
	store         Store
	selectedCount int
	refcount      int32
}

// New creates a clause from lits (duplicates allowed; see Dedup) and an
// Inference record. Age is one more than the greatest premise age (0
// for input clauses with no premises); Weight is the sum of literal
// weights.
func New(lits []*term.Literal, inf Inference) *Clause {
	age := 0
	for _, p := range inf.Premises {
		if a := p.Age() + 1; a > age {
			age = a
		}
	}
	return &Clause{
		ID:     uuid.New(),
		lits:   append([]*term.Literal{}, lits...),
		inf:    inf,
		age:    age,
		weight: sumWeight(lits),
		store:  StoreNone,
	}
}

func sumWeight(lits []*term.Literal) int {
	w := 0
	for _, l := range lits {
		w += l.Weight()
	}
	return w
}

// Literals returns the clause's current literal slice (selected
// literals, if any, are its prefix).
func (c *Clause) Literals() []*term.Literal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*term.Literal{}, c.lits...)
}

// Len returns the number of literals.
func (c *Clause) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lits)
}

// IsEmpty reports whether the clause is the empty clause ⊥.
func (c *Clause) IsEmpty() bool { return c.Len() == 0 }

// ReorderLiterals applies a permutation of literal indices, used by
// internal/selector to move the selected prefix to the front.
func (c *Clause) ReorderLiterals(order []int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*term.Literal, len(order))
	for i, idx := range order {
		out[i] = c.lits[idx]
	}
	c.lits = out
}

// SetSelectedCount records how many of the (now front-ordered) literals
// are selected.
func (c *Clause) SetSelectedCount(k int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedCount = k
}

// SelectedLiterals returns the clause's selected-literal prefix.
func (c *Clause) SelectedLiterals() []*term.Literal {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selectedCount == 0 {
		return nil
	}
	return append([]*term.Literal{}, c.lits[:c.selectedCount]...)
}

// Age is the clause's inference depth from the input problem.
func (c *Clause) Age() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.age
}

// Weight is the sum of term weights over the clause's literals.
func (c *Clause) Weight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.weight
}

// Inference returns the rule and premises that produced this clause.
func (c *Clause) Inference() Inference {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inf
}

// Store returns the clause's current container tag.
func (c *Clause) Store() Store {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store
}

// SetStore updates the clause's container tag. Callers (the
// ClauseContainers of internal/container) are responsible for ensuring
// a clause is tagged into at most one container at a time (spec.md §3's
// exclusivity invariant).
func (c *Clause) SetStore(s Store) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = s
}

// Retain increments the clause's reference count (a live descendant now
// lists this clause as a premise, or a container now holds it).
func (c *Clause) Retain() { atomic.AddInt32(&c.refcount, 1) }

// Release decrements the reference count and reports whether it has
// reached zero. A clause is only actually destroyed (dropped for GC)
// once Release returns true *and* its Store is StoreNone — ancestors
// referenced by live proofs are kept alive by the descendant's
// Inference.Premises slice holding a Go reference regardless of
// refcount, so refcount here exists purely as the observable signal
// spec.md §3 requires, not as a manual free().
func (c *Clause) Release() bool {
	return atomic.AddInt32(&c.refcount, -1) <= 0
}

// Dedup performs the "canonical dedup step" of spec.md §3: duplicate
// literals (structurally equal, with equality literals compared
// commutatively) are removed, keeping the first occurrence.
func (c *Clause) Dedup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.lits[:0:0]
	for _, l := range c.lits {
		dup := false
		for _, kept := range out {
			if l.Equal(kept) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, l)
		}
	}
	c.lits = out
	c.weight = sumWeight(c.lits)
	if c.selectedCount > len(c.lits) {
		c.selectedCount = len(c.lits)
	}
}

// IsTautology reports whether the clause contains a literal/negation
// pair or a reflexive equality (spec.md §4.5 "Trivial simplifications").
func (c *Clause) IsTautology() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, l := range c.lits {
		if l.IsReflexivity() {
			return true
		}
	}
	for i := range c.lits {
		for j := i + 1; j < len(c.lits); j++ {
			if c.lits[i].IsTautologyPair(c.lits[j]) {
				return true
			}
		}
	}
	return false
}

// WithLiterals returns a *new* clause with the given replacement
// literal set but the same Inference premises, used by simplifying
// rules that rewrite rather than delete a clause (e.g. forward
// demodulation producing C[rθ] from C[s]).
func (c *Clause) WithLiterals(lits []*term.Literal, inf Inference) *Clause {
	return New(lits, inf)
}

// UnitList is the flat clause set a Parser produces from an input
// problem file (spec.md §1), before a Preprocessor's clausification
// step has run.
type UnitList []*Clause
