package container

import (
	"sync"

	"github.com/easychair/vampire-sub000/internal/clause"
)

// ActiveObserver is notified synchronously when a clause is added to or
// removed from Active (spec.md §9's design note: "Prefer an explicit
// interface and a static vector of observers registered at setup").
// internal/index's indexes implement this to stay in sync with Active.
type ActiveObserver interface {
	OnAdded(c *clause.Clause)
	OnRemoved(c *clause.Clause)
}

// Active is the unordered set of already-processed, indexed clauses
// (spec.md §4.6). Insertion and deletion fire observer events
// synchronously and in registration order, so by the time Add/Remove
// returns every registered index reflects the change — the loop in
// internal/saturation relies on this to never query an index mid-mutation.
type Active struct {
	mu        sync.RWMutex
	members   map[*clause.Clause]bool
	observers []ActiveObserver
}

// NewActive returns an empty Active set.
func NewActive() *Active {
	return &Active{members: make(map[*clause.Clause]bool)}
}

// Subscribe registers obs to receive OnAdded/OnRemoved events. Must be
// called before any Add, per spec.md §9's "static vector ... registered
// at setup".
func (a *Active) Subscribe(obs ActiveObserver) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.observers = append(a.observers, obs)
}

// Add inserts c into Active, tags its Store, and fans out OnAdded to
// every subscribed observer.
func (a *Active) Add(c *clause.Clause) {
	a.mu.Lock()
	c.SetStore(clause.StoreActive)
	a.members[c] = true
	obs := append([]ActiveObserver{}, a.observers...)
	a.mu.Unlock()
	for _, o := range obs {
		o.OnAdded(c)
	}
}

// Remove drops c from Active and fans out OnRemoved, reporting whether
// c was a member.
func (a *Active) Remove(c *clause.Clause) bool {
	a.mu.Lock()
	if !a.members[c] {
		a.mu.Unlock()
		return false
	}
	delete(a.members, c)
	c.SetStore(clause.StoreNone)
	obs := append([]ActiveObserver{}, a.observers...)
	a.mu.Unlock()
	for _, o := range obs {
		o.OnRemoved(c)
	}
	return true
}

// Contains reports whether c is currently in Active.
func (a *Active) Contains(c *clause.Clause) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.members[c]
}

// Size returns the number of clauses in Active.
func (a *Active) Size() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.members)
}

// Iter returns a snapshot of Active's members.
func (a *Active) Iter() []*clause.Clause {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]*clause.Clause, 0, len(a.members))
	for c := range a.members {
		out = append(out, c)
	}
	return out
}
