// Package index implements the term/literal indexing of spec.md §4.4
// (component C4): a substitution-tree-shaped index answering
// generalization, instance, unification and variant queries over a
// dynamic set of (clause, literal, term) entries, plus a code-tree
// variant for high-throughput forward demodulation/subsumption lookups.
//
// This implementation buckets entries by the head symbol of the
// indexed term (falling back to a dedicated variable bucket, since a
// bare-variable entry or query can match/unify/generalize across every
// head symbol) rather than building the interleaved special-variable
// tree described in spec.md's prose. Both answer the four retrieval
// modes with the same observable semantics (spec.md §8's round-trip
// law: insert then remove leaves the index observationally identical);
// the bucketed structure trades the tree's better asymptotic behavior
// for a much smaller, more obviously correct implementation — an
// explicit simplification, not an accidental one.
package index

import (
	"sort"
	"sync"

	"github.com/easychair/vampire-sub000/internal/clause"
	"github.com/easychair/vampire-sub000/internal/term"
)

// Payload is the side information an indexed entry carries (spec.md
// §4.4: "(clause, literal, term, side-info) entries").
type Payload struct {
	Clause  *clause.Clause
	Literal *term.Literal
	// Side identifies which equality argument Term is, for indexes over
	// equation sides (0 = left, 1 = right); -1 when not applicable.
	Side int
	// Extra carries rule-specific metadata an index consumer needs to
	// act on a hit (e.g. internal/engine's superposition rule stores the
	// subterm's position path here so it can rebuild the rewritten
	// literal without a second tree walk). Opaque to this package.
	Extra interface{}
}

// Handle identifies a previously inserted entry so it can be removed in
// O(bucket size) time without a linear scan of the whole index.
type Handle struct {
	bucket symKey
	seq    uint64
}

type entryRec struct {
	term    *term.Term
	bank    int
	payload Payload
	seq     uint64
}

type symKey struct {
	name  string
	arity int
	isVar bool
}

func keyOf(t *term.Term) symKey {
	if t.IsVar() {
		return symKey{isVar: true}
	}
	return symKey{name: t.Func.Name, arity: t.Func.Arity}
}

// Result is one successful retrieval: the matched/unified entry plus
// the substitution that was built to establish it (for Generalizations
// and Unifications; Instances and Variants also populate it for
// convenience, using the query as the "pattern" side).
type Result struct {
	Term    *term.Term
	Bank    int
	Payload Payload
	Subst   *term.Substitution
}

// SubstitutionTree is the C4 index: insert appends to a bucket, remove
// scans its bucket linearly, concurrent retrievals
// (readers only take an RLock), non-concurrent mutation.
type SubstitutionTree struct {
	mu      sync.RWMutex
	buckets map[symKey][]*entryRec
	seq     uint64
}

// NewSubstitutionTree returns an empty index.
func NewSubstitutionTree() *SubstitutionTree {
	return &SubstitutionTree{buckets: make(map[symKey][]*entryRec)}
}

// Insert adds (t@bank, payload) to the index and returns a Handle for
// later removal.
func (x *SubstitutionTree) Insert(t *term.Term, bank int, payload Payload) Handle {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.seq++
	k := keyOf(t)
	rec := &entryRec{term: t, bank: bank, payload: payload, seq: x.seq}
	x.buckets[k] = append(x.buckets[k], rec)
	return Handle{bucket: k, seq: rec.seq}
}

// Remove deletes the entry identified by h, reporting whether it was
// found.
func (x *SubstitutionTree) Remove(h Handle) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	list := x.buckets[h.bucket]
	for i, r := range list {
		if r.seq == h.seq {
			x.buckets[h.bucket] = append(list[:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// Generalizations returns every indexed entry e such that some
// substitution θ exists with e.Term·θ = query (spec.md §4.4 and the
// testable property of §8). Deterministic order: insertion order.
func (x *SubstitutionTree) Generalizations(f *term.Factory, query *term.Term, queryBank int) []Result {
	x.mu.RLock()
	defer x.mu.RUnlock()
	cands := x.candidatesOrdered(query, false)
	var out []Result
	for _, r := range cands {
		s := term.NewSubstitution()
		if s.Match(r.term, r.bank, query, queryBank) {
			out = append(out, Result{Term: r.term, Bank: r.bank, Payload: r.payload, Subst: s})
		}
	}
	return out
}

// Instances returns every indexed entry e such that query·θ = e.Term
// for some θ (query is the generalization).
func (x *SubstitutionTree) Instances(f *term.Factory, query *term.Term, queryBank int) []Result {
	x.mu.RLock()
	defer x.mu.RUnlock()
	var cands []*entryRec
	if query.IsVar() {
		cands = x.candidatesOrdered(query, false)
	} else {
		cands = x.candidatesOrdered(query, true) // only same-head entries are possible instances
	}
	var out []Result
	for _, r := range cands {
		s := term.NewSubstitution()
		if s.Match(query, queryBank, r.term, r.bank) {
			out = append(out, Result{Term: r.term, Bank: r.bank, Payload: r.payload, Subst: s})
		}
	}
	return out
}

// Unifications returns every indexed entry e such that query and
// e.Term are unifiable.
func (x *SubstitutionTree) Unifications(f *term.Factory, query *term.Term, queryBank int) []Result {
	x.mu.RLock()
	defer x.mu.RUnlock()
	cands := x.candidatesOrdered(query, false)
	var out []Result
	for _, r := range cands {
		s := term.NewSubstitution()
		if s.Unify(r.term, r.bank, query, queryBank) {
			out = append(out, Result{Term: r.term, Bank: r.bank, Payload: r.payload, Subst: s})
		}
	}
	return out
}

// Variants returns every indexed entry equal to query up to variable
// renaming.
func (x *SubstitutionTree) Variants(query *term.Term, queryBank int) []Result {
	x.mu.RLock()
	defer x.mu.RUnlock()
	var cands []*entryRec
	if query.IsVar() {
		cands = x.buckets[symKey{isVar: true}]
	} else {
		cands = x.buckets[keyOf(query)]
	}
	var out []Result
	for _, r := range cands {
		if term.Variant(r.term, r.bank, query, queryBank) {
			out = append(out, Result{Term: r.term, Bank: r.bank, Payload: r.payload})
		}
	}
	return out
}

// candidatesOrdered collects the entries that may match q and returns
// them sorted by insertion sequence number, for reproducible iteration
// order (spec.md
// §4.4: "a deterministic order of results so that runs are
// reproducible").
func (x *SubstitutionTree) candidatesOrdered(q *term.Term, sameHeadOnly bool) []*entryRec {
	var raw []*entryRec
	if q.IsVar() {
		if sameHeadOnly {
			raw = append([]*entryRec{}, x.buckets[symKey{isVar: true}]...)
		} else {
			for _, list := range x.buckets {
				raw = append(raw, list...)
			}
		}
	} else {
		k := keyOf(q)
		raw = append(raw, x.buckets[k]...)
		if !sameHeadOnly {
			raw = append(raw, x.buckets[symKey{isVar: true}]...)
		}
	}
	sort.Slice(raw, func(i, j int) bool { return raw[i].seq < raw[j].seq })
	return raw
}

// Size returns the total number of indexed entries.
func (x *SubstitutionTree) Size() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	n := 0
	for _, list := range x.buckets {
		n += len(list)
	}
	return n
}
