// Package container implements the three ClauseContainers of spec.md
// §4.6: Unprocessed (FIFO), Passive (weighted age/weight priority
// queue) and Active (unordered set firing add/remove events to
// registered index observers).
package container

import (
	"sync"

	"github.com/easychair/vampire-sub000/internal/clause"
)

// Unprocessed is the FIFO stack of newly created clauses awaiting
// immediate simplification. Popping is destructive.
type Unprocessed struct {
	mu    sync.Mutex
	items []*clause.Clause
}

// NewUnprocessed returns an empty Unprocessed container.
func NewUnprocessed() *Unprocessed { return &Unprocessed{} }

// Add appends c, tagging its Store.
func (u *Unprocessed) Add(c *clause.Clause) {
	u.mu.Lock()
	defer u.mu.Unlock()
	c.SetStore(clause.StoreUnprocessed)
	u.items = append(u.items, c)
}

// Pop removes and returns the next clause in FIFO order, or (nil,
// false) if empty.
func (u *Unprocessed) Pop() (*clause.Clause, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.items) == 0 {
		return nil, false
	}
	c := u.items[0]
	u.items = u.items[1:]
	c.SetStore(clause.StoreNone)
	return c, true
}

// Size returns the number of pending clauses.
func (u *Unprocessed) Size() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.items)
}

// Iter returns a snapshot slice of pending clauses, in FIFO order.
func (u *Unprocessed) Iter() []*clause.Clause {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]*clause.Clause{}, u.items...)
}
