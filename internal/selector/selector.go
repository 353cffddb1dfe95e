// Package selector implements the literal selection functions of
// spec.md §4.3 (component C3): picking a non-empty subset of a
// clause's literals to participate in generating inferences.
package selector

import (
	"github.com/easychair/vampire-sub000/internal/ordering"
	"github.com/easychair/vampire-sub000/internal/term"
)

// Clause is the minimal view a Selector needs; internal/clause.Clause
// satisfies it. Kept narrow so this package has no import-cycle on
// internal/clause.
type Clause interface {
	Literals() []*term.Literal
	ReorderLiterals(order []int)
	SetSelectedCount(k int)
}

// Selector reorders a clause's literals so the first k >= 1 are the
// selected ones, and records k on the clause. Select is idempotent:
// calling it twice in a row leaves the same prefix selected.
type Selector interface {
	Name() string
	Select(ord ordering.Ordering, c Clause)
}

// maximalMask returns, for each literal index, whether that literal is
// maximal in c under ord (no other literal of c strictly dominates it).
func maximalMask(ord ordering.Ordering, lits []*term.Literal) []bool {
	mask := make([]bool, len(lits))
	for i := range lits {
		mask[i] = true
		for j := range lits {
			if i == j {
				continue
			}
			if ord.CompareLiterals(lits[j], lits[i]) == ordering.Greater {
				mask[i] = false
				break
			}
		}
	}
	return mask
}

func anyTrue(mask []bool) bool {
	for _, b := range mask {
		if b {
			return true
		}
	}
	return false
}

// applySelection reorders c's literals by idxs (a permutation of
// 0..len(lits)-1) and records the first k as selected.
func applySelection(c Clause, idxs []int, k int) {
	c.ReorderLiterals(idxs)
	c.SetSelectedCount(k)
}
