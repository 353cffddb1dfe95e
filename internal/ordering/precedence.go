package ordering

import "github.com/easychair/vampire-sub000/internal/term"

// PrecedenceOptions configures how Precedence derives its total symbol
// order from startup options (spec.md §4.2: "signature order, arity,
// frequency, goal-affinity, introduction flag, user-supplied
// permutation").
type PrecedenceOptions struct {
	// GoalAffinity marks symbols occurring in the conjecture/goal; they
	// are ranked earlier (closer to the front of the precedence) so
	// goal-directed strategies prefer rewriting toward them.
	GoalAffinity map[int]bool
	// Introduced marks symbols introduced by preprocessing (e.g.
	// definition unfolding, Skolem functions). Introduced symbols are
	// boosted above interpreted ones.
	Introduced map[int]bool
	// NegateIntroducedForAllHeuristics resolves spec.md §9's open
	// question: the negated-functor-id trick used by BOTTOM/TOP symbol
	// selection is applied uniformly to every symbol-selection
	// heuristic, not only the default one (see DESIGN.md).
	NegateIntroducedForAllHeuristics bool
	// Permutation overrides the computed rank for specific symbol IDs,
	// as a user-supplied explicit precedence.
	Permutation map[int]int
}

const introducedBoost = 1 << 20

// Precedence is a total order over function and predicate symbols, plus
// the derived predicate *levels* used by literal selection (spec.md
// §4.2: "Predicate levels ... and precedences ... are distinct derived
// values").
type Precedence struct {
	funcRank  map[int]int
	predRank  map[int]int
	predLevel map[int]int
	gen       uint64
}

// NewPrecedence computes a Precedence from the given function and
// predicate symbols and options. funcSyms/predSyms should list every
// symbol of the signature exactly once, in the order fixed at startup.
func NewPrecedence(funcSyms, predSyms []term.Symbol, opts PrecedenceOptions, gen uint64) *Precedence {
	p := &Precedence{
		funcRank:  make(map[int]int, len(funcSyms)),
		predRank:  make(map[int]int, len(predSyms)),
		predLevel: make(map[int]int, len(predSyms)),
		gen:       gen,
	}
	for i, s := range funcSyms {
		p.funcRank[s.ID] = rankFor(s, i, opts)
	}
	for i, s := range predSyms {
		p.predRank[s.ID] = rankFor(s, i, opts)
	}
	// Predicate levels: equality is lowest (level 0); consequence-
	// finding labels (symbols marked Introduced and of KindPredicate with
	// arity 0, the convention used for answer/label predicates) sit
	// below equality; everything else is ranked by predRank, shifted up.
	p.predLevel[term.Equality.ID] = 0
	for _, s := range predSyms {
		if s.Kind == term.KindEquality {
			continue
		}
		if opts.Introduced[s.ID] && s.Arity == 0 {
			p.predLevel[s.ID] = -1
			continue
		}
		p.predLevel[s.ID] = p.predRank[s.ID] + 1
	}
	return p
}

func rankFor(s term.Symbol, registrationIndex int, opts PrecedenceOptions) int {
	if r, ok := opts.Permutation[s.ID]; ok {
		return r
	}
	rank := registrationIndex
	introduced := opts.Introduced[s.ID]
	if introduced {
		if opts.NegateIntroducedForAllHeuristics {
			rank = -s.ID
		}
		rank += introducedBoost
	}
	if opts.GoalAffinity[s.ID] {
		rank -= introducedBoost / 2
	}
	return rank
}

// FuncRank returns the precedence rank of a function symbol.
func (p *Precedence) FuncRank(s term.Symbol) int { return p.funcRank[s.ID] }

// PredRank returns the precedence rank of a predicate symbol.
func (p *Precedence) PredRank(s term.Symbol) int { return p.predRank[s.ID] }

// PredLevel returns the literal-selection level of a predicate symbol.
func (p *Precedence) PredLevel(s term.Symbol) int { return p.predLevel[s.ID] }

// ComparePredicates totally orders two predicate symbols by PredRank.
func (p *Precedence) ComparePredicates(a, b term.Symbol) Result {
	ra, rb := p.PredRank(a), p.PredRank(b)
	switch {
	case ra == rb:
		return Equal
	case ra > rb:
		return Greater
	default:
		return Less
	}
}
