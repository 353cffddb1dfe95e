package portfolio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/easychair/vampire-sub000/internal/clause"
	"github.com/easychair/vampire-sub000/internal/collaborators"
	"github.com/easychair/vampire-sub000/internal/container"
	"github.com/easychair/vampire-sub000/internal/engine"
	"github.com/easychair/vampire-sub000/internal/index"
	"github.com/easychair/vampire-sub000/internal/ordering"
	"github.com/easychair/vampire-sub000/internal/saturation"
	"github.com/easychair/vampire-sub000/internal/selector"
	"github.com/easychair/vampire-sub000/internal/term"
)

// buildRefutingStrategy gives every slice its own fresh Context over a
// shared factory/problem and resolves p(a) against ¬p(a) regardless of
// slice options, enough to exercise the driver's scheduling contract
// without depending on cmd/prover's real option-to-StrategyConfig
// translation.
func buildRefutingStrategy(problem *collaborators.Problem, slice Slice) (*saturation.SaturationLoop, error) {
	f := term.NewFactory()
	a := f.Intern("a", 0, term.KindFunction)
	p := f.Intern("p", 1, term.KindPredicate)
	prec := ordering.NewPrecedence([]term.Symbol{a}, []term.Symbol{p}, ordering.PrecedenceOptions{}, 1)
	kbo := ordering.NewKBO(prec)
	active := container.NewActive()
	ctx := &engine.Context{Factory: f, Ordering: kbo, Indexes: index.NewManager(active, nil), Active: active}

	res := &engine.BinaryResolution{}
	res.Attach(ctx)

	cfg := saturation.StrategyConfig{
		Ordering:       kbo,
		Selector:       selector.MaximalityOnly{},
		AgeWeightRatio: 1,
		Generators:     []engine.Generator{res},
		Complete:       true,
	}
	inputs := []*clause.Clause{
		clause.New([]*term.Literal{term.NewLiteral(p, true, f.App(a))}, clause.Inference{Rule: clause.RuleInput}),
		clause.New([]*term.Literal{term.NewLiteral(p, false, f.App(a))}, clause.Inference{Rule: clause.RuleInput}),
	}
	return saturation.New(cfg, ctx, inputs, nil), nil
}

func TestDriverRunProblemFindsRefutationInQuickPass(t *testing.T) {
	d := NewDriver(buildRefutingStrategy)
	schedule := Schedule{
		Quick: []Slice{mustSlice(t, "dis+11_50")},
	}
	result := d.RunProblem(&collaborators.Problem{}, schedule, 5*time.Second)
	require.Equal(t, saturation.OutcomeRefutation, result.Outcome.Kind)
}

func TestDriverRunProblemDeduplicatesFallbackAgainstQuick(t *testing.T) {
	d := NewDriver(buildRefutingStrategy)
	quick := mustSlice(t, "dis+11_50")
	fallbackSame := mustSlice(t, "dis+11_300") // same chopped name, different budget
	schedule := Schedule{Quick: []Slice{quick}, Fallback: []Slice{fallbackSame}}

	result := d.RunProblem(&collaborators.Problem{}, schedule, 5*time.Second)
	require.Equal(t, saturation.OutcomeRefutation, result.Outcome.Kind)
	require.Equal(t, quick.String(), result.Slice.String())
}

func mustSlice(t *testing.T, code string) Slice {
	t.Helper()
	s, err := ParseSlice(code)
	require.NoError(t, err)
	return s
}
