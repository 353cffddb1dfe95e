package portfolio

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/easychair/vampire-sub000/internal/collaborators"
	"github.com/easychair/vampire-sub000/internal/term"
)

// Category is the coarse problem classification spec.md §4.8 selects a
// schedule by (equality/Horn/etc.).
type Category string

const (
	CategoryHorn            Category = "HNE" // Horn, no equality
	CategoryHornEquality    Category = "HEQ" // Horn, with equality
	CategoryNonHorn         Category = "NNE" // non-Horn, no equality
	CategoryNonHornEquality Category = "NEQ" // non-Horn, with equality
)

// Property is the coarse numeric fingerprint spec.md §4.8 calls an
// "atom count threshold, symbol-kind bitmask" pair. SymbolKinds is a
// bitmask over 1<<term.SymbolKind for every kind occurring in the
// problem; Atoms is the literal count summed over the input UnitList.
type Property struct {
	Atoms       int
	SymbolKinds uint32
}

// PropertyOf computes a Problem's Property by scanning every clause's
// literals once. This is the "coarse" classification spec.md asks
// for — it does not distinguish arities or nesting depth, only which
// symbol kinds occur at all and how many literals exist in total.
func PropertyOf(p *collaborators.Problem) Property {
	var prop Property
	for _, c := range p.Units {
		lits := c.Literals()
		prop.Atoms += len(lits)
		for _, l := range lits {
			prop.SymbolKinds |= 1 << uint(l.Predicate.Kind)
			for _, arg := range l.Args {
				markKinds(arg, &prop.SymbolKinds)
			}
		}
	}
	return prop
}

func markKinds(t *term.Term, mask *uint32) {
	if t.IsVar() {
		return
	}
	*mask |= 1 << uint(t.Func.Kind)
	for _, arg := range t.Args {
		markKinds(arg, mask)
	}
}

// HasKind reports whether the property's bitmask includes k.
func (p Property) HasKind(k term.SymbolKind) bool {
	return p.SymbolKinds&(1<<uint(k)) != 0
}

// ClassifyCategory derives spec.md §4.8's coarse Horn/equality category
// directly from the clause set: Horn iff every clause has at most one
// positive literal, equality iff some literal is an equality literal
// (only the predicate position is examined).
func ClassifyCategory(p *collaborators.Problem) Category {
	horn := true
	equality := false
	for _, c := range p.Units {
		positives := 0
		for _, l := range c.Literals() {
			if l.Positive {
				positives++
			}
			if l.IsEquality() {
				equality = true
			}
		}
		if positives > 1 {
			horn = false
		}
	}
	switch {
	case horn && equality:
		return CategoryHornEquality
	case horn:
		return CategoryHorn
	case equality:
		return CategoryNonHornEquality
	default:
		return CategoryNonHorn
	}
}

// Schedule is an ordered quick pass tried before a fallback pass
// (spec.md §4.8).
type Schedule struct {
	Quick    []Slice
	Fallback []Slice
}

// catalogEntry is one YAML-level schedule rule: it applies to a
// Category when the problem's atom count falls in [MinAtoms, MaxAtoms]
// (MaxAtoms == 0 means unbounded).
type catalogEntry struct {
	Category Category `yaml:"category"`
	MinAtoms int      `yaml:"min_atoms"`
	MaxAtoms int      `yaml:"max_atoms"`
	Quick    []string `yaml:"quick"`
	Fallback []string `yaml:"fallback"`
}

type catalogFile struct {
	Schedules []catalogEntry `yaml:"schedules"`
}

// Catalog is a loaded strategy catalog: an ordered list of entries,
// matched top to bottom, the on-disk counterpart of the teacher's
// YAML-configured server defaults (SPEC_FULL.md DOMAIN STACK).
type Catalog struct {
	entries []catalogEntry
}

// LoadCatalog parses a YAML strategy-catalog file. Each entry's slice
// codes are validated eagerly so a malformed catalog fails at load
// time rather than mid-run.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("portfolio: reading catalog %q: %w", path, err)
	}
	var cf catalogFile
	if err := yaml.Unmarshal(raw, &cf); err != nil {
		return nil, fmt.Errorf("portfolio: parsing catalog %q: %w", path, err)
	}
	for _, e := range cf.Schedules {
		for _, code := range append(append([]string{}, e.Quick...), e.Fallback...) {
			if _, err := ParseSlice(code); err != nil {
				return nil, fmt.Errorf("portfolio: catalog %q: %w", path, err)
			}
		}
	}
	return &Catalog{entries: cf.Schedules}, nil
}

// Select returns the first entry matching category and property,
// decoding its slice codes into a Schedule. ok is false if no entry
// matches, in which case the caller falls back to a built-in default.
func (c *Catalog) Select(category Category, prop Property) (Schedule, bool) {
	for _, e := range c.entries {
		if e.Category != category {
			continue
		}
		if prop.Atoms < e.MinAtoms {
			continue
		}
		if e.MaxAtoms > 0 && prop.Atoms > e.MaxAtoms {
			continue
		}
		return Schedule{Quick: mustParseAll(e.Quick), Fallback: mustParseAll(e.Fallback)}, true
	}
	return Schedule{}, false
}

func mustParseAll(codes []string) []Slice {
	out := make([]Slice, 0, len(codes))
	for _, code := range codes {
		// already validated at LoadCatalog time
		s, _ := ParseSlice(code)
		out = append(out, s)
	}
	return out
}
