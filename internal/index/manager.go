package index

import (
	"sync"

	"github.com/opentracing/opentracing-go"

	"github.com/easychair/vampire-sub000/internal/clause"
	"github.com/easychair/vampire-sub000/internal/container"
	"github.com/easychair/vampire-sub000/internal/term"
)

// Kind names one of the narrow published indexes a rule in
// internal/engine can request (spec.md §4.4: "generators and
// simplifiers request the specific indexes they need; the manager
// attaches an index to Active only on the first request and detaches it
// once the last requester releases it").
type Kind string

// A Kind only names an index; what it holds depends on how it is
// requested. RequestSubstitutionIndex fills a SubstitutionTree with the
// top-level argument terms of every Active clause's selected literals;
// RequestCodeIndex fills a CodeTree with both orientations of every
// unit positive equality.
const (
	// KindUnification names an index for unification queries (binary
	// resolution, superposition's rewritten-into side).
	KindUnification Kind = "unification"
	// KindGeneralization names an index for generalization queries
	// (superposition's rewriting side).
	KindGeneralization Kind = "generalization"
	// KindDemodulationLHS names the rewrite-rule index for forward
	// demodulation.
	KindDemodulationLHS Kind = "demodulation-lhs"
	// KindSubsumptionUnit names an index of unit clauses; no simplifier
	// in internal/engine requests it.
	KindSubsumptionUnit Kind = "subsumption-unit"
)

// Manager owns one SubstitutionTree or CodeTree per Kind, attaching to
// Active as an container.ActiveObserver on first request and detaching
// on last release, per spec.md §4.4's request/release lifecycle.
type Manager struct {
	mu      sync.Mutex
	active  *container.Active
	tracer  opentracing.Tracer
	subs    map[Kind]*subIndex
	code    map[Kind]*codeIndex
	attached map[Kind]bool
}

type subIndex struct {
	tree     *SubstitutionTree
	refcount int
	handles  map[*clause.Clause][]Handle
}

type codeIndex struct {
	tree     *CodeTree
	refcount int
	handles  map[*clause.Clause][]CodeTreeHandle
}

// NewManager returns a Manager that will observe active for add/remove
// events once indexes are requested.
func NewManager(active *container.Active, tracer opentracing.Tracer) *Manager {
	if tracer == nil {
		tracer = opentracing.NoopTracer{}
	}
	return &Manager{
		active:   active,
		tracer:   tracer,
		subs:     make(map[Kind]*subIndex),
		code:     make(map[Kind]*codeIndex),
		attached: make(map[Kind]bool),
	}
}

// RequestSubstitutionIndex returns the shared SubstitutionTree for kind,
// creating and attaching it on the first request. Callers must call
// Release when done with the index (e.g. when the owning rule is
// disabled or the engine shuts down).
func (m *Manager) RequestSubstitutionIndex(kind Kind) *SubstitutionTree {
	m.mu.Lock()
	defer m.mu.Unlock()
	si, ok := m.subs[kind]
	if !ok {
		si = &subIndex{tree: NewSubstitutionTree(), handles: make(map[*clause.Clause][]Handle)}
		m.subs[kind] = si
	}
	si.refcount++
	if !m.attached[kind] {
		m.attached[kind] = true
		m.active.Subscribe(substIndexObserver{m: m, kind: kind})
	}
	return si.tree
}

// RequestCodeIndex returns the shared CodeTree for kind.
func (m *Manager) RequestCodeIndex(kind Kind) *CodeTree {
	m.mu.Lock()
	defer m.mu.Unlock()
	ci, ok := m.code[kind]
	if !ok {
		ci = &codeIndex{tree: NewCodeTree(), handles: make(map[*clause.Clause][]CodeTreeHandle)}
		m.code[kind] = ci
	}
	ci.refcount++
	if !m.attached[kind] {
		m.attached[kind] = true
		m.active.Subscribe(codeIndexObserver{m: m, kind: kind})
	}
	return ci.tree
}

// Release decrements kind's refcount. The underlying index is not
// physically torn down on reaching zero (spec.md leaves re-attachment
// unspecified and Active's observer list has no Unsubscribe); further
// retrievals against a released index simply return nothing useful
// because no rule queries it anymore.
func (m *Manager) Release(kind Kind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if si, ok := m.subs[kind]; ok && si.refcount > 0 {
		si.refcount--
	}
	if ci, ok := m.code[kind]; ok && ci.refcount > 0 {
		ci.refcount--
	}
}

type substIndexObserver struct {
	m    *Manager
	kind Kind
}

func (o substIndexObserver) OnAdded(c *clause.Clause) {
	o.m.mu.Lock()
	si := o.m.subs[o.kind]
	o.m.mu.Unlock()
	if si == nil {
		return
	}
	span := o.m.tracer.StartSpan("index.insert")
	defer span.Finish()
	var handles []Handle
	for _, lit := range c.SelectedLiterals() {
		for _, a := range lit.Args {
			handles = append(handles, si.tree.Insert(a, 0, Payload{Clause: c, Literal: lit, Side: -1}))
		}
	}
	o.m.mu.Lock()
	si.handles[c] = handles
	o.m.mu.Unlock()
}

func (o substIndexObserver) OnRemoved(c *clause.Clause) {
	o.m.mu.Lock()
	si := o.m.subs[o.kind]
	var handles []Handle
	if si != nil {
		handles = si.handles[c]
		delete(si.handles, c)
	}
	o.m.mu.Unlock()
	if si == nil {
		return
	}
	for _, h := range handles {
		si.tree.Remove(h)
	}
}

type codeIndexObserver struct {
	m    *Manager
	kind Kind
}

func (o codeIndexObserver) OnAdded(c *clause.Clause) {
	o.m.mu.Lock()
	ci := o.m.code[o.kind]
	o.m.mu.Unlock()
	if ci == nil {
		return
	}
	var handles []CodeTreeHandle
	for _, lit := range c.Literals() {
		if !lit.IsEquality() || !lit.Positive || c.Len() != 1 {
			continue // only unit equalities are usable demodulators/subsumption units
		}
		handles = append(handles, insertOriented(ci.tree, lit, c)...)
	}
	o.m.mu.Lock()
	ci.handles[c] = handles
	o.m.mu.Unlock()
}

func (o codeIndexObserver) OnRemoved(c *clause.Clause) {
	o.m.mu.Lock()
	ci := o.m.code[o.kind]
	var handles []CodeTreeHandle
	if ci != nil {
		handles = ci.handles[c]
		delete(ci.handles, c)
	}
	o.m.mu.Unlock()
	if ci == nil {
		return
	}
	for _, h := range handles {
		ci.tree.Remove(h)
	}
}

// insertOriented registers both (lhs->rhs) and (rhs->lhs) whatever the
// literal's order — an unoriented unit equation can
// demodulate in either direction depending on the instantiating
// substitution, so both orientations must be retrievable (spec.md
// §4.5's demodulation precondition: "the instantiated rule must be
// reducing under the ordering", checked by the simplifier after
// retrieval, not by the index).
func insertOriented(tree *CodeTree, lit *term.Literal, c *clause.Clause) []CodeTreeHandle {
	l, r := lit.Args[0], lit.Args[1]
	return []CodeTreeHandle{
		tree.InsertRewrite(l, r, 0, Payload{Clause: c, Literal: lit, Side: 0}),
		tree.InsertRewrite(r, l, 0, Payload{Clause: c, Literal: lit, Side: 1}),
	}
}
