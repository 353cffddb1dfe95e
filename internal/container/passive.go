package container

import (
	"container/heap"
	"sync"

	"github.com/easychair/vampire-sub000/internal/clause"
)

// Passive is the priority queue of spec.md §4.6: Select alternates
// between the oldest clause and the lightest clause, taking ageWeight
// age-ordered picks for every one weight-ordered pick (the classical
// "age-weight ratio" scheduling), so that a pathologically bad weight
// function can't starve old clauses forever. Age and weight are never
// combined into one score.
type Passive struct {
	mu        sync.Mutex
	ageWeight int // weighting ratio numerator: how many age-picks per weight-pick
	ageStride int
	picks     int
	byWeight  *weightHeap
	byAge     *ageHeap
	members   map[*clause.Clause]bool
}

// NewPassive builds a Passive container with weighting ratio
// ageWeight:1 (ageWeight selections favor lowest age for every 1
// selection favoring lowest weight). Only ratios of that form are
// expressible: a ratio with several weight picks per age pick, such as
// 1:10, is not.
func NewPassive(ageWeight int) *Passive {
	if ageWeight <= 0 {
		ageWeight = 1
	}
	return &Passive{
		ageWeight: ageWeight,
		byWeight:  &weightHeap{},
		byAge:     &ageHeap{},
		members:   make(map[*clause.Clause]bool),
	}
}

// Add inserts c, tagging its Store.
func (p *Passive) Add(c *clause.Clause) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c.SetStore(clause.StorePassive)
	heap.Push(p.byWeight, c)
	heap.Push(p.byAge, c)
	p.members[c] = true
}

// Remove drops c from Passive if present (e.g. it was subsumed while
// still pending), reporting whether it was found.
func (p *Passive) Remove(c *clause.Clause) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.members[c] {
		return false
	}
	delete(p.members, c)
	removeFromWeightHeap(p.byWeight, c)
	removeFromAgeHeap(p.byAge, c)
	return true
}

// Select pops the best clause under the configured age/weight ratio,
// skipping any entry that was Removed (lazy deletion) or invalidated.
func (p *Passive) Select() (*clause.Clause, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for {
		var c *clause.Clause
		if p.ageStride < p.ageWeight {
			c = p.popAge()
			p.ageStride++
		} else {
			c = p.popWeight()
			p.ageStride = 0
		}
		if c == nil {
			return nil, false
		}
		if !p.members[c] {
			continue // stale entry from the other heap; already removed
		}
		delete(p.members, c)
		c.SetStore(clause.StoreNone)
		p.prune(c)
		return c, true
	}
}

func (p *Passive) popAge() *clause.Clause {
	for p.byAge.Len() > 0 {
		c := heap.Pop(p.byAge).(*clause.Clause)
		if p.members[c] {
			return c
		}
	}
	return nil
}

func (p *Passive) popWeight() *clause.Clause {
	for p.byWeight.Len() > 0 {
		c := heap.Pop(p.byWeight).(*clause.Clause)
		if p.members[c] {
			return c
		}
	}
	return nil
}

// prune removes c's stale entry from whichever heap did not already
// pop it, so the two heaps stay roughly in sync in size.
func (p *Passive) prune(c *clause.Clause) {
	removeFromWeightHeap(p.byWeight, c)
	removeFromAgeHeap(p.byAge, c)
}

// Size returns the number of clauses currently pending in Passive.
func (p *Passive) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.members)
}

// Iter returns a snapshot of pending clauses.
func (p *Passive) Iter() []*clause.Clause {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*clause.Clause, 0, len(p.members))
	for c := range p.members {
		out = append(out, c)
	}
	return out
}

// Invalidate must be called after the Ordering is replaced (spec.md
// §4.6: "the Passive container decides when a clause's cached
// evaluations must be recomputed"). Since this Passive orders purely by
// Age/Weight (neither depends on the Ordering), there is nothing to
// recompute; the hook exists so callers have one place to call
// regardless of which scoring scheme a strategy configures.
func (p *Passive) Invalidate() {}

type weightHeap []*clause.Clause

func (h weightHeap) Len() int { return len(h) }
func (h weightHeap) Less(i, j int) bool {
	return h[i].Weight() < h[j].Weight()
}
func (h weightHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *weightHeap) Push(x any)        { *h = append(*h, x.(*clause.Clause)) }
func (h *weightHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

type ageHeap []*clause.Clause

func (h ageHeap) Len() int { return len(h) }
func (h ageHeap) Less(i, j int) bool {
	return h[i].Age() < h[j].Age()
}
func (h ageHeap) Swap(i, j int)  { h[i], h[j] = h[j], h[i] }
func (h *ageHeap) Push(x any)    { *h = append(*h, x.(*clause.Clause)) }
func (h *ageHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func removeFromWeightHeap(h *weightHeap, c *clause.Clause) {
	for i, e := range *h {
		if e == c {
			heap.Remove(h, i)
			return
		}
	}
}

func removeFromAgeHeap(h *ageHeap, c *clause.Clause) {
	for i, e := range *h {
		if e == c {
			heap.Remove(h, i)
			return
		}
	}
}
