package index

import (
	"sync"

	"github.com/easychair/vampire-sub000/internal/term"
)

// CodeTree is the compiled-matching counterpart of SubstitutionTree used
// where spec.md §4.4 calls for "higher throughput on the hot forward
// paths (demodulation left-hand sides, subsumption's unit clauses)":
// rather than re-deriving a substitution per candidate on every probe,
// it pre-groups entries by (head symbol, arity, a flattened shape
// fingerprint of the first argument position) so a probe only
// walks entries that could possibly match before falling back to the
// exact Substitution.Match check. For the modest clause counts this
// prover handles per problem the fingerprint is a pure prefilter, not a
// compiled instruction sequence — grounded on the same
// hash-bucket-then-confirm shape internal/term.Factory.share uses for
// hash-consing, applied here to retrieval instead of construction.
type CodeTree struct {
	mu      sync.RWMutex
	entries map[codeKey][]*codeRec
	seq     uint64
}

type codeRec struct {
	lhs     *term.Term
	rhs     *term.Term // nil for non-rewrite entries (e.g. subsumption units)
	bank    int
	payload Payload
	seq     uint64
}

type codeKey struct {
	head  symKey
	arg0  symKey
	hasA0 bool
}

func fingerprint(t *term.Term) codeKey {
	k := codeKey{head: keyOf(t)}
	if !t.IsVar() && len(t.Args) > 0 {
		k.arg0 = keyOf(t.Args[0])
		k.hasA0 = true
	}
	return k
}

// CodeTreeHandle identifies an inserted rewrite/unit entry for removal.
type CodeTreeHandle struct {
	key codeKey
	seq uint64
}

// NewCodeTree returns an empty code tree.
func NewCodeTree() *CodeTree {
	return &CodeTree{entries: make(map[codeKey][]*codeRec)}
}

// InsertRewrite adds a demodulator lhs -> rhs (lhs@bank, rhs@bank).
func (c *CodeTree) InsertRewrite(lhs, rhs *term.Term, bank int, payload Payload) CodeTreeHandle {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	k := fingerprint(lhs)
	rec := &codeRec{lhs: lhs, rhs: rhs, bank: bank, payload: payload, seq: c.seq}
	c.entries[k] = append(c.entries[k], rec)
	return CodeTreeHandle{key: k, seq: rec.seq}
}

// Remove deletes the entry identified by h.
func (c *CodeTree) Remove(h CodeTreeHandle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	list := c.entries[h.key]
	for i, r := range list {
		if r.seq == h.seq {
			c.entries[h.key] = append(list[:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// RewriteResult is a demodulator whose lhs generalizes the probed
// subterm, together with the substitution and the (unsubstituted) rhs
// to apply it.
type RewriteResult struct {
	LHS, RHS *term.Term
	Bank     int
	Payload  Payload
	Subst    *term.Substitution
}

// Rewrites returns every stored lhs->rhs demodulator whose lhs
// generalizes query (spec.md §4.5's forward demodulation probe: "for
// every subterm of the given clause, query the demodulator index for a
// generalizing left-hand side").
func (c *CodeTree) Rewrites(query *term.Term, queryBank int) []RewriteResult {
	c.mu.RLock()
	defer c.mu.RUnlock()
	k := fingerprint(query)
	keys := []codeKey{k, {head: symKey{isVar: true}}}
	if k.hasA0 && !k.arg0.isVar {
		// a stored lhs with a variable first argument also generalizes query
		keys = append(keys, codeKey{head: k.head, arg0: symKey{isVar: true}, hasA0: true})
	}
	seen := map[uint64]bool{}
	var out []RewriteResult
	for _, k := range keys {
		for _, r := range c.entries[k] {
			if seen[r.seq] {
				continue
			}
			seen[r.seq] = true
			s := term.NewSubstitution()
			if s.Match(r.lhs, r.bank, query, queryBank) {
				out = append(out, RewriteResult{LHS: r.lhs, RHS: r.rhs, Bank: r.bank, Payload: r.payload, Subst: s})
			}
		}
	}
	return out
}

// Size returns the number of stored entries.
func (c *CodeTree) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, list := range c.entries {
		n += len(list)
	}
	return n
}

// InsertUnit indexes a bare unit clause atom (rhs nil), so that
// Rewrites also answers "does some stored unit generalize this
// literal's atom". No simplifier in internal/engine calls it: the
// subsumption simplifiers scan Active directly.
func (c *CodeTree) InsertUnit(atom *term.Term, bank int, payload Payload) CodeTreeHandle {
	return c.InsertRewrite(atom, nil, bank, payload)
}
