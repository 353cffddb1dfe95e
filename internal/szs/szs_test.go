package szs

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteStatusFormatsSZSLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStatus(&buf, Theorem, "SET001-1"))
	require.Equal(t, "% SZS status Theorem for SET001-1\n", buf.String())
}

func TestBatchSummaryFormatsSolvedLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, BatchSummary(&buf, 7, 10))
	require.Equal(t, "Solved 7 out of 10\n", buf.String())
}
