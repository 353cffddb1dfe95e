package portfolio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterDrainStopsAtSentinel(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out)
	r := strings.NewReader("line one\nline two\n" + sentinelPrefix + "\nline three\n")

	require.NoError(t, w.Drain(r))
	require.Equal(t, "line one\nline two\n", out.String())
}

func TestWriterDrainForwardsEverythingWithoutSentinel(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out)
	r := strings.NewReader("a\nb\nc\n")

	require.NoError(t, w.Drain(r))
	require.Equal(t, "a\nb\nc\n", out.String())
}
