package portfolio

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunBatchReportsSolvedAndGaveUp(t *testing.T) {
	spec, err := ParseBatch(strings.NewReader(sampleBatch))
	require.NoError(t, err)

	var out bytes.Buffer
	calls := 0
	solved, total, err := RunBatch(spec, func(pair ProblemPair, budget time.Duration) (int, error) {
		calls++
		require.Equal(t, 10*time.Second, budget)
		if pair.Input == "SET001-1.p" {
			return 0, nil
		}
		return 1, nil
	}, &out, nil)

	require.NoError(t, err)
	require.Equal(t, 2, calls)
	require.Equal(t, 1, solved)
	require.Equal(t, 2, total)

	output := out.String()
	require.Contains(t, output, "% SZS status Theorem for SET001-1.p")
	require.Contains(t, output, "% SZS status GaveUp for SET002-1.p")
	require.Contains(t, output, "Solved 1 out of 2")
}
