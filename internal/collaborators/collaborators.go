// Package collaborators declares the narrow interfaces spec.md §1 marks
// as external collaborators: parsing, clausification, proof emission
// and the AVATAR SAT backend. None of them is implemented in this
// module — cmd/prover wires concrete implementations in from outside
// internal/, the same way the teacher's engine.go accepts a
// sql.DatabaseProvider rather than owning storage.
package collaborators

import (
	"io"

	"github.com/easychair/vampire-sub000/internal/clause"
	"github.com/easychair/vampire-sub000/internal/term"
)

// Problem is the parsed-and-preprocessed input a SaturationLoop run is
// built from: the clause set plus whatever per-problem metadata the
// portfolio driver needs to pick a schedule (spec.md §4.8's category/
// property selection).
type Problem struct {
	// Factory is the term table every clause in Units was interned
	// against. A SaturationLoop's engine.Context must reuse this same
	// Factory so derived clauses hash-cons against the input problem's
	// terms rather than a disjoint table.
	Factory    *term.Factory
	Units      clause.UnitList
	Conjecture bool
	// AnswerLiteralMode mirrors the batch configuration's
	// "output.required Answer" flag (spec.md §6); when set, a
	// Preprocessor is expected to have already added the answer
	// predicate to the negated conjecture.
	AnswerLiteralMode bool
}

// Parser produces a UnitList from a TPTP (FOF/CNF/TFF) input file.
type Parser interface {
	Parse(path string) (clause.UnitList, error)
}

// Preprocessor turns a raw UnitList into clausal normal form: Skolemization,
// CNF transformation, and whatever flattening a given strategy's options
// request. It never changes a clause set already in CNF beyond the
// trivial simplifications internal/engine.TrivialSimplifier also runs.
type Preprocessor interface {
	Preprocess(units clause.UnitList) (*Problem, error)
}

// ProofWriter renders the derivation ending in refutation as a TPTP
// proof object onto w (spec.md §6's "proof body").
type ProofWriter interface {
	Write(w io.Writer, refutation *clause.Clause) error
}

// SatSolver is the ground boolean backend an AVATAR-style splitting
// generator would delegate to. spec.md §1 excludes AVATAR as a
// Non-goal, so nothing in internal/engine calls this today; the
// interface is kept narrow and named so a future splitting generator
// can depend on it without internal/engine importing a concrete SAT
// package.
type SatSolver interface {
	// AddClause asserts a clause of signed propositional literals
	// (positive int = boolean variable, negative = its negation).
	AddClause(lits []int) error
	// Solve returns satisfiability and, if satisfiable, an assignment
	// indexed by variable (1-based, following the AddClause convention).
	Solve() (sat bool, assignment map[int]bool, err error)
}
