package engine

import (
	"sync"

	"github.com/easychair/vampire-sub000/internal/clause"
	"github.com/easychair/vampire-sub000/internal/term"
)

// candidatePairThreshold is the number of compatible (D-literal,
// C-literal) pairings above which Subsumption switches from the
// backtracking matcher to the SAT-encoded search (spec.md §4.5: "the
// SAT encoding is employed when the number of candidate literal
// pairings exceeds a threshold").
const candidatePairThreshold = 48

// Subsumption checks D subsumes C: exists σ with Dσ ⊆ C, as multisets
// of literals (spec.md §4.5). It implements both the forward direction
// (some Active clause subsumes the candidate) and the backward
// direction (the new given clause subsumes some Active clauses).
//
// Active is scanned linearly for candidate subsumers/subsumees rather
// than routed through a dedicated multi-literal index: a sound index
// for "clause whose literal multiset might embed into another" needs a
// join across every literal simultaneously, which none of this
// package's per-literal indexes models; spec.md leaves the data
// structure unspecified beyond "reduces to multi-literal matching", so
// a linear Active scan is a deliberate, documented simplification (the
// clause volumes this exercise handles make it a non-issue).
type Subsumption struct {
	mu  sync.Mutex
	ctx *Context
}

func (s *Subsumption) Name() string { return "subsumption" }

func (s *Subsumption) Attach(ctx *Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx = ctx
}

func (s *Subsumption) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx = nil
}

func (s *Subsumption) Perform(candidate *clause.Clause) (ForwardOutcome, *clause.Clause) {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	if ctx == nil {
		return ForwardUnchanged, nil
	}
	for _, active := range ctx.Active.Iter() {
		if active == candidate || active.Len() > candidate.Len() {
			continue
		}
		if subsumes(active, candidate) {
			return ForwardDeleted, nil
		}
	}
	return ForwardUnchanged, nil
}

// BackwardSubsumption is the backward direction of Subsumption: a
// newly inserted given clause may subsume already-Active clauses,
// which must then be removed (spec.md §4.5: "Subsumption (forward and
// backward)"). It shares Subsumption's matcher but is registered
// separately since BackwardSimplifier and ForwardSimplifier are
// distinct engine roles in the saturation loop.
type BackwardSubsumption struct {
	mu  sync.Mutex
	ctx *Context
}

func (s *BackwardSubsumption) Name() string { return "backward-subsumption" }

func (s *BackwardSubsumption) Attach(ctx *Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx = ctx
}

func (s *BackwardSubsumption) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx = nil
}

func (s *BackwardSubsumption) Perform(given *clause.Clause) []Simplification {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	if ctx == nil {
		return nil
	}
	var sims []Simplification
	for _, active := range ctx.Active.Iter() {
		if active == given || given.Len() > active.Len() {
			continue
		}
		if subsumes(given, active) {
			sims = append(sims, Simplification{Remove: active})
		}
	}
	return sims
}

// subsumes reports whether d subsumes c: exists σ with dσ ⊆ c.
func subsumes(d, c *clause.Clause) bool {
	dLits, cLits := d.Literals(), c.Literals()
	pairs := candidatePairs(dLits, cLits)
	for _, row := range pairs {
		if len(row) == 0 {
			return false // some D literal has no compatible C literal at all
		}
	}
	total := 0
	for _, row := range pairs {
		total += len(row)
	}
	if total > candidatePairThreshold {
		return subsumesSAT(dLits, cLits, pairs)
	}
	used := make([]bool, len(cLits))
	sigma := term.NewSubstitution()
	return backtrackSubsume(dLits, cLits, pairs, 0, used, sigma)
}

// candidatePairs[i] lists the indices of C literals sign/predicate
// compatible with D literal i (a cheap prefilter before attempting the
// full argument match).
func candidatePairs(dLits, cLits []*term.Literal) [][]int {
	pairs := make([][]int, len(dLits))
	for i, dl := range dLits {
		for j, cl := range cLits {
			if dl.Positive == cl.Positive && dl.Predicate == cl.Predicate {
				pairs[i] = append(pairs[i], j)
			}
		}
	}
	return pairs
}

func backtrackSubsume(dLits, cLits []*term.Literal, pairs [][]int, idx int, used []bool, sigma *term.Substitution) bool {
	if idx == len(dLits) {
		return true
	}
	dl := dLits[idx]
	for _, j := range pairs[idx] {
		if used[j] {
			continue
		}
		mark := sigma.Mark()
		if matchLiteralArgs(sigma, dl, cLits[j]) {
			used[j] = true
			if backtrackSubsume(dLits, cLits, pairs, idx+1, used, sigma) {
				return true
			}
			used[j] = false
		}
		sigma.Backtrack(mark)
	}
	return false
}

// matchLiteralArgs matches pattern@bank0 against instance@bank1,
// trying both argument orders for equality literals (commutativity).
func matchLiteralArgs(sigma *term.Substitution, pattern, instance *term.Literal) bool {
	if pattern.IsEquality() && len(pattern.Args) == 2 {
		mark := sigma.Mark()
		if sigma.Match(pattern.Args[0], 0, instance.Args[0], 1) && sigma.Match(pattern.Args[1], 0, instance.Args[1], 1) {
			return true
		}
		sigma.Backtrack(mark)
		if sigma.Match(pattern.Args[0], 0, instance.Args[1], 1) && sigma.Match(pattern.Args[1], 0, instance.Args[0], 1) {
			return true
		}
		sigma.Backtrack(mark)
		return false
	}
	mark := sigma.Mark()
	for i := range pattern.Args {
		if !sigma.Match(pattern.Args[i], 0, instance.Args[i], 1) {
			sigma.Backtrack(mark)
			return false
		}
	}
	return true
}

// SubsumptionResolution derives C\{L} from D resolving-and-subsuming C:
// exists L∈C and σ with Dσ ⊆ C∪{¬L} (spec.md §4.5).
type SubsumptionResolution struct {
	mu  sync.Mutex
	ctx *Context
}

func (r *SubsumptionResolution) Name() string { return "subsumption-resolution" }

func (r *SubsumptionResolution) Attach(ctx *Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctx = ctx
}

func (r *SubsumptionResolution) Detach() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctx = nil
}

func (r *SubsumptionResolution) Perform(candidate *clause.Clause) (ForwardOutcome, *clause.Clause) {
	r.mu.Lock()
	ctx := r.ctx
	r.mu.Unlock()
	if ctx == nil {
		return ForwardUnchanged, nil
	}
	cLits := candidate.Literals()
	for _, d := range ctx.Active.Iter() {
		if d == candidate {
			continue
		}
		dLits := d.Literals()
		for li := range cLits {
			augmented := make([]*term.Literal, 0, len(cLits))
			augmented = append(augmented, cLits...)
			augmented = append(augmented, cLits[li].Negate())
			pairs := candidatePairs(dLits, augmented)
			ok := true
			for _, row := range pairs {
				if len(row) == 0 {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			used := make([]bool, len(augmented))
			sigma := term.NewSubstitution()
			if backtrackSubsume(dLits, augmented, pairs, 0, used, sigma) {
				rest := make([]*term.Literal, 0, len(cLits)-1)
				for k, l := range cLits {
					if k != li {
						rest = append(rest, l)
					}
				}
				replacement := clause.New(rest, clause.Inference{Rule: clause.RuleSubsumptionResolution, Premises: []*clause.Clause{candidate, d}})
				return ForwardReplaced, replacement
			}
		}
	}
	return ForwardUnchanged, nil
}
