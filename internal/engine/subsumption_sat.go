package engine

import "github.com/easychair/vampire-sub000/internal/term"

// subsumesSAT decides d-subsumes-c by encoding the literal-pairing
// problem as a boolean satisfiability instance and solving it with a
// small internal DPLL search, used when candidatePairs grows past
// candidatePairThreshold (spec.md §4.5's "SAT encoding ... for hard
// cases"). This is a from-scratch encoder and solver, not a wrapped
// external SAT library: spec.md names no concrete solver, and the
// problem size here (one boolean var per compatible literal pairing)
// is small enough that a direct DPLL outperforms the overhead of
// shelling out to an external process per candidate pair.
//
// Variables: one per (i, k) where k indexes pairs[i] — pairVar[i][k]
// means "D literal i is matched to C literal pairs[i][k]". Clauses:
//   - at-least-one and at-most-one per row i (each D literal matches
//     exactly one C literal),
//   - at-most-one per column j across rows (injectivity),
//   - a forbidding binary clause for any two pairs whose required
//     bindings conflict (incompatible substitutions),
//   - a unit clause forcing false any pair whose arguments do not match.
func subsumesSAT(dLits, cLits []*term.Literal, pairs [][]int) bool {
	type varID struct{ row, k int }
	var vars []varID
	varIndex := make(map[varID]int)
	for i, row := range pairs {
		for k := range row {
			id := varID{i, k}
			varIndex[id] = len(vars)
			vars = append(vars, id)
		}
	}
	bindings := make([][]term.VarRef, len(vars))
	boundTo := make([][]*term.Term, len(vars))
	var unmatched []int
	for i, row := range pairs {
		for k, j := range row {
			sigma := term.NewSubstitution()
			if !matchLiteralArgs(sigma, dLits[i], cLits[j]) {
				// row only lists sign/pred-compatible pairs; the argument
				// match can still fail, and such a pair is forced false below
				unmatched = append(unmatched, varIndex[varID{i, k}])
				continue
			}
			v := varIndex[varID{i, k}]
			for _, ref := range sigma.TrailRefs() {
				bound, _ := sigma.Lookup(ref)
				bindings[v] = append(bindings[v], ref)
				boundTo[v] = append(boundTo[v], bound)
			}
		}
	}

	var clauses [][]int // literal = var+1 (positive) or -(var+1) (negative)
	for _, v := range unmatched {
		clauses = append(clauses, []int{-(v + 1)})
	}
	for i, row := range pairs {
		lits := make([]int, len(row))
		for k := range row {
			lits[k] = varIndex[varID{i, k}] + 1
		}
		clauses = append(clauses, lits) // at-least-one
		for a := 0; a < len(lits); a++ {
			for b := a + 1; b < len(lits); b++ {
				clauses = append(clauses, []int{-lits[a], -lits[b]}) // at-most-one
			}
		}
	}
	colVars := map[int][]int{}
	for i, row := range pairs {
		for k, j := range row {
			colVars[j] = append(colVars[j], varIndex[varID{i, k}]+1)
		}
	}
	for _, vs := range colVars {
		for a := 0; a < len(vs); a++ {
			for b := a + 1; b < len(vs); b++ {
				clauses = append(clauses, []int{-vs[a], -vs[b]})
			}
		}
	}
	for a := 0; a < len(vars); a++ {
		for b := a + 1; b < len(vars); b++ {
			if vars[a].row == vars[b].row {
				continue // already forbidden by the row's at-most-one clause
			}
			if bindingsConflict(bindings[a], boundTo[a], bindings[b], boundTo[b]) {
				clauses = append(clauses, []int{-(a + 1), -(b + 1)})
			}
		}
	}

	assign := make([]int, len(vars)) // 0 unknown, 1 true, -1 false
	return dpll(clauses, assign)
}

func bindingsConflict(refsA []term.VarRef, boundA []*term.Term, refsB []term.VarRef, boundB []*term.Term) bool {
	for i, ra := range refsA {
		for j, rb := range refsB {
			if ra == rb && boundA[i] != boundB[j] {
				return true
			}
		}
	}
	return false
}

// dpll is a minimal recursive DPLL solver with unit propagation over
// clauses expressed as slices of signed 1-based variable indices.
func dpll(clauses [][]int, assign []int) bool {
	clauses, ok := unitPropagate(clauses, assign)
	if !ok {
		return false
	}
	idx := -1
	for i, v := range assign {
		if v == 0 {
			idx = i
			break
		}
	}
	if idx == -1 {
		return true // every variable assigned, no clause violated
	}
	for _, val := range [2]int{1, -1} {
		trial := append([]int{}, assign...)
		trial[idx] = val
		if dpll(clauses, trial) {
			copy(assign, trial)
			return true
		}
	}
	return false
}

// unitPropagate simplifies clauses under assign, repeatedly resolving
// unit clauses, and reports false on a derived empty (unsatisfiable)
// clause.
func unitPropagate(clauses [][]int, assign []int) ([][]int, bool) {
	changed := true
	for changed {
		changed = false
		var remaining [][]int
		for _, cl := range clauses {
			var live []int
			satisfied := false
			for _, lit := range cl {
				v := lit
				neg := v < 0
				if v < 0 {
					v = -v
				}
				switch assign[v-1] {
				case 0:
					live = append(live, lit)
				case 1:
					if !neg {
						satisfied = true
					}
				case -1:
					if neg {
						satisfied = true
					}
				}
			}
			if satisfied {
				continue
			}
			if len(live) == 0 {
				return nil, false
			}
			if len(live) == 1 {
				lit := live[0]
				v, neg := lit, false
				if v < 0 {
					v, neg = -v, true
				}
				if neg {
					assign[v-1] = -1
				} else {
					assign[v-1] = 1
				}
				changed = true
				continue
			}
			remaining = append(remaining, live)
		}
		clauses = remaining
	}
	return clauses, true
}
