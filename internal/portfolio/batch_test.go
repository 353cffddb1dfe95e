package portfolio

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const sampleBatch = `
% SZS start BatchConfiguration
division.category LTB
output.required Answer
execution.order ordered
limit.time.problem.wc 10
limit.time.overall.wc 600
% SZS end BatchConfiguration
% SZS start BatchIncludes
include('Axioms/SET001-0.ax').
include('Axioms/SET001-1.ax').
% SZS end BatchIncludes
% SZS start BatchProblems
SET001-1.p SET001-1.out
SET002-1.p SET002-1.out
% SZS end BatchProblems
`

func TestParseBatchParsesAllThreeSections(t *testing.T) {
	spec, err := ParseBatch(strings.NewReader(sampleBatch))
	require.NoError(t, err)

	require.Equal(t, "LTB", spec.Config.DivisionCategory)
	require.True(t, spec.Config.AnswerRequired)
	require.Equal(t, 10*time.Second, spec.Config.PerProblemWC)
	require.Equal(t, 600*time.Second, spec.Config.OverallWC)
	require.Equal(t, 10*time.Second, spec.Config.EffectiveProblemBudget())

	require.Equal(t, []string{"Axioms/SET001-0.ax", "Axioms/SET001-1.ax"}, spec.Includes)

	require.Len(t, spec.Problems, 2)
	require.Equal(t, ProblemPair{Input: "SET001-1.p", Output: "SET001-1.out"}, spec.Problems[0])
}

func TestBatchConfigEffectiveBudgetFallsBackToOverall(t *testing.T) {
	cfg := BatchConfig{OverallWC: 300 * time.Second}
	require.Equal(t, 300*time.Second, cfg.EffectiveProblemBudget())
}

func TestParseBatchRejectsMalformedProblemLine(t *testing.T) {
	_, err := ParseBatch(strings.NewReader("% SZS start BatchProblems\nonly-one-field\n% SZS end BatchProblems\n"))
	require.Error(t, err)
}
