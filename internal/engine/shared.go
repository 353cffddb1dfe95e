package engine

import "github.com/easychair/vampire-sub000/internal/clause"
import "github.com/easychair/vampire-sub000/internal/term"

// selectedOrAll returns c's selected-literal prefix, or every literal
// if selection hasn't run yet (the common situation only in unit tests
// that build clauses without going through internal/saturation).
func selectedOrAll(c *clause.Clause) []*term.Literal {
	if sel := c.SelectedLiterals(); len(sel) > 0 {
		return sel
	}
	return c.Literals()
}
