package main

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/easychair/vampire-sub000/internal/clause"
	"github.com/easychair/vampire-sub000/internal/collaborators"
	"github.com/easychair/vampire-sub000/internal/term"
)

type fakeParser struct{ units clause.UnitList }

func (f fakeParser) Parse(path string) (clause.UnitList, error) { return f.units, nil }

type fakePreprocessor struct{ factory *term.Factory }

func (f fakePreprocessor) Preprocess(units clause.UnitList) (*collaborators.Problem, error) {
	return &collaborators.Problem{Factory: f.factory, Units: units}, nil
}

type fakeProofWriter struct{ called bool }

func (f *fakeProofWriter) Write(w io.Writer, refutation *clause.Clause) error {
	f.called = true
	_, err := io.WriteString(w, "% fake proof\n")
	return err
}

func contradictoryProblem() (clause.UnitList, *term.Factory) {
	f := term.NewFactory()
	a := f.Intern("a", 0, term.KindFunction)
	p := f.Intern("p", 1, term.KindPredicate)
	units := clause.UnitList{
		clause.New([]*term.Literal{term.NewLiteral(p, true, f.App(a))}, clause.Inference{Rule: clause.RuleInput}),
		clause.New([]*term.Literal{term.NewLiteral(p, false, f.App(a))}, clause.Inference{Rule: clause.RuleInput}),
	}
	return units, f
}

func TestRunSingleStrategyFindsRefutation(t *testing.T) {
	units, f := contradictoryProblem()
	writer := &fakeProofWriter{}
	RegisterCollaborators(fakeParser{units: units}, fakePreprocessor{factory: f}, writer)
	defer RegisterCollaborators(nil, nil, nil)

	code := runSingleStrategy("dummy.p", strategyOptions{awr: 1}, 5*time.Second, 0, nil)
	require.Equal(t, 0, code)
	require.True(t, writer.called)
}

func TestMainReportsUserErrorWithoutCollaborators(t *testing.T) {
	RegisterCollaborators(nil, nil, nil)
	code := Main([]string{"dummy.p"})
	require.Equal(t, 1, code)
}

func TestMainRejectsUnknownMode(t *testing.T) {
	code := Main([]string{"--mode", "bogus", "dummy.p"})
	require.Equal(t, 2, code)
}
