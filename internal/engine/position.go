package engine

import "github.com/easychair/vampire-sub000/internal/term"

// subtermRef locates a non-variable subterm of a literal by a path of
// argument indices: path[0] selects lit.Args[path[0]], and each
// subsequent index descends into that term's own Args.
type subtermRef struct {
	path []int
}

// collectSubterms returns a subtermRef for every non-variable node in
// lit's argument trees, including lit.Args themselves (spec.md §4.5:
// superposition rewrites at "s is not a variable" subterms of C).
func collectSubterms(lit *term.Literal) []subtermRef {
	var out []subtermRef
	var walk func(t *term.Term, path []int)
	walk = func(t *term.Term, path []int) {
		if !t.IsVar() {
			cp := make([]int, len(path))
			copy(cp, path)
			out = append(out, subtermRef{path: cp})
		}
		for i, a := range t.Args {
			childPath := make([]int, len(path)+1)
			copy(childPath, path)
			childPath[len(path)] = i
			walk(a, childPath)
		}
	}
	for i, a := range lit.Args {
		walk(a, []int{i})
	}
	return out
}

// termAt returns the subterm of lit identified by ref.
func termAt(lit *term.Literal, ref subtermRef) *term.Term {
	cur := lit.Args[ref.path[0]]
	for _, idx := range ref.path[1:] {
		cur = cur.Args[idx]
	}
	return cur
}

// rebuildLiteral returns a new literal identical to lit except that the
// subterm at ref has been replaced by repl, rebuilt bottom-up through f
// so every intermediate node stays hash-consed.
func rebuildLiteral(f *term.Factory, lit *term.Literal, ref subtermRef, repl *term.Term) *term.Literal {
	newArgs := make([]*term.Term, len(lit.Args))
	copy(newArgs, lit.Args)
	newArgs[ref.path[0]] = rebuildTerm(f, lit.Args[ref.path[0]], ref.path[1:], repl)
	return term.NewLiteral(lit.Predicate, lit.Positive, newArgs...)
}

func rebuildTerm(f *term.Factory, t *term.Term, path []int, repl *term.Term) *term.Term {
	if len(path) == 0 {
		return repl
	}
	newArgs := make([]*term.Term, len(t.Args))
	copy(newArgs, t.Args)
	newArgs[path[0]] = rebuildTerm(f, t.Args[path[0]], path[1:], repl)
	return f.App(t.Func, newArgs...)
}

// applySubstToLiteral returns the literal obtained by applying s (over
// bank) to every argument of lit.
func applySubstToLiteral(f *term.Factory, s *term.Substitution, lit *term.Literal, bank int) *term.Literal {
	args := make([]*term.Term, len(lit.Args))
	for i, a := range lit.Args {
		args[i] = s.Apply(f, a, bank)
	}
	return term.NewLiteral(lit.Predicate, lit.Positive, args...)
}

// applySubstToLiterals maps applySubstToLiteral over lits, skipping the
// literal at skipIndex if skipIndex >= 0 (used when the skipped literal
// is being replaced by something else rather than merely substituted).
func applySubstToLiterals(f *term.Factory, s *term.Substitution, lits []*term.Literal, bank, skipIndex int) []*term.Literal {
	out := make([]*term.Literal, 0, len(lits))
	for i, l := range lits {
		if i == skipIndex {
			continue
		}
		out = append(out, applySubstToLiteral(f, s, l, bank))
	}
	return out
}
