package ordering

import "github.com/easychair/vampire-sub000/internal/term"

// OpCode names one step of a Comparator's compiled program (spec.md
// §4.2: "a small program of comparison opcodes ... that can be re-run
// under different substitutions without re-analyzing the term
// structure"). This corresponds to original_source/OrderingConstraints
// per SPEC_FULL.md's supplemented-features section.
type OpCode int

const (
	OpWeightCompare OpCode = iota
	OpVarBalance
	OpSubtermCompare
	OpPrecedenceCompare
)

func (op OpCode) String() string {
	switch op {
	case OpWeightCompare:
		return "WEIGHT_COMPARE"
	case OpVarBalance:
		return "VAR_BALANCE"
	case OpSubtermCompare:
		return "SUBTERM_COMPARE"
	default:
		return "PRECEDENCE_COMPARE"
	}
}

// Instr is one instruction of a compiled comparator program: an opcode
// plus the pair of subterms (by position in the original t1/t2 pair)
// it inspects.
type Instr struct {
	Op   OpCode
	Left *term.Term
	Right *term.Term
}

// Program is the opcode sequence built once for a (t1, t2) pair,
// stored together with the pair so Run can be called again under each
// trial substitution.
type Program struct {
	t1, t2 *term.Term
	instrs []Instr
}

// Instructions exposes the compiled opcode sequence, mainly for tests.
func (p *Program) Instructions() []Instr { return p.instrs }

// Comparator builds Programs for an Ordering and can re-run them after
// a substitution has been applied, without rebuilding the opcode list.
type Comparator struct {
	ord Ordering
}

// NewComparator returns a Comparator over ord.
func NewComparator(ord Ordering) *Comparator { return &Comparator{ord: ord} }

// Build records t1 and t2 with the same fixed opcode list for every
// pair: a subterm check, a weight check, a variable-balance check and a
// precedence check. The list does not depend on the shape of t1 or t2.
func (c *Comparator) Build(t1, t2 *term.Term) *Program {
	instrs := []Instr{
		{Op: OpSubtermCompare, Left: t1, Right: t2},
		{Op: OpWeightCompare, Left: t1, Right: t2},
		{Op: OpVarBalance, Left: t1, Right: t2},
		{Op: OpPrecedenceCompare, Left: t1, Right: t2},
	}
	return &Program{t1: t1, t2: t2, instrs: instrs}
}

// Run applies substitution s to p's two terms (interpreted at the given
// banks) and returns Ordering.Compare of the results. It does not
// interpret p's opcodes: every call compares the substituted terms from
// scratch.
func (c *Comparator) Run(p *Program, f *term.Factory, s *term.Substitution, bank1, bank2 int) Result {
	a := s.Apply(f, p.t1, bank1)
	b := s.Apply(f, p.t2, bank2)
	return c.ord.Compare(a, b)
}
