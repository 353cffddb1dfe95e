package selector

import (
	"github.com/easychair/vampire-sub000/internal/ordering"
	"github.com/easychair/vampire-sub000/internal/term"
)

// MaximalityOnly selects every maximal literal of the clause. It is
// complete on its own (spec.md §4.3: "all maximal literals selected").
type MaximalityOnly struct{}

func (MaximalityOnly) Name() string { return "maximality_only" }

func (MaximalityOnly) Select(ord ordering.Ordering, c Clause) {
	lits := c.Literals()
	mask := maximalMask(ord, lits)
	selectByMask(c, lits, mask)
}

// NegativePriority selects a single maximal negative literal when one
// exists, otherwise falls back to every maximal literal — the other
// completeness-preserving option spec.md §4.3 names.
type NegativePriority struct{}

func (NegativePriority) Name() string { return "negative_priority" }

func (NegativePriority) Select(ord ordering.Ordering, c Clause) {
	lits := c.Literals()
	mask := maximalMask(ord, lits)
	for i, l := range lits {
		if mask[i] && !l.Positive {
			selectByMask(c, lits, onlyIndex(len(lits), i))
			return
		}
	}
	selectByMask(c, lits, mask)
}

// ReverseMaximal behaves like MaximalityOnly but places the selected
// literals in reverse index order ahead of the rest, so generating
// rules that consult SelectedLiterals front-to-back see the clause's
// own tail literals first — useful for strategies whose preprocessing
// puts the most goal-relevant literals last.
type ReverseMaximal struct{}

func (ReverseMaximal) Name() string { return "reverse_maximal" }

func (ReverseMaximal) Select(ord ordering.Ordering, c Clause) {
	lits := c.Literals()
	mask := maximalMask(ord, lits)
	var selected, rest []int
	for i := len(lits) - 1; i >= 0; i-- {
		if mask[i] {
			selected = append(selected, i)
		}
	}
	for i := range lits {
		if !mask[i] {
			rest = append(rest, i)
		}
	}
	idxs := append(selected, rest...)
	applySelection(c, idxs, len(selected))
}

// SizeBased selects the single smallest-weight maximal literal
// (preferring a negative one among ties), keeping the selected prefix
// as small as possible to minimize the branching factor of generating
// rules.
type SizeBased struct{}

func (SizeBased) Name() string { return "size_based" }

func (SizeBased) Select(ord ordering.Ordering, c Clause) {
	lits := c.Literals()
	mask := maximalMask(ord, lits)
	best := -1
	for i, l := range lits {
		if !mask[i] {
			continue
		}
		if best == -1 {
			best = i
			continue
		}
		if smaller(l, lits[best]) {
			best = i
		}
	}
	if best == -1 {
		return
	}
	selectByMask(c, lits, onlyIndex(len(lits), best))
}

func smaller(a, b *term.Literal) bool {
	if a.Weight() != b.Weight() {
		return a.Weight() < b.Weight()
	}
	return !a.Positive && b.Positive
}

func onlyIndex(n, idx int) []bool {
	mask := make([]bool, n)
	mask[idx] = true
	return mask
}

// selectByMask reorders lits so indices with mask[i]==true come first
// (in their original relative order), then applies the selection.
func selectByMask(c Clause, lits []*term.Literal, mask []bool) {
	if !anyTrue(mask) {
		// Completeness requires a non-empty selection; this should be
		// unreachable since maximalMask always marks at least one
		// literal, but guard defensively by selecting everything.
		for i := range mask {
			mask[i] = true
		}
	}
	var selected, rest []int
	for i := range lits {
		if mask[i] {
			selected = append(selected, i)
		} else {
			rest = append(rest, i)
		}
	}
	idxs := append(selected, rest...)
	applySelection(c, idxs, len(selected))
}
