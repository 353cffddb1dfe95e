package portfolio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseSliceRoundTrips(t *testing.T) {
	code := "dis+11_4_nwc=3:sos=on_42"
	s, err := ParseSlice(code)
	require.NoError(t, err)
	require.Equal(t, "dis+11_4", s.Strategy)
	require.Equal(t, 4200*time.Millisecond, s.Budget)
	require.Equal(t, code, s.String())

	nwc, ok, err := s.OptionInt("nwc")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 3, nwc)

	sos, ok, err := s.OptionBool("sos")
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, sos)
}

func TestParseSliceChoppedNameDropsBudget(t *testing.T) {
	a, err := ParseSlice("lrs+1_10")
	require.NoError(t, err)
	b, err := ParseSlice("lrs+1_300")
	require.NoError(t, err)
	require.Equal(t, a.ChoppedName(), b.ChoppedName())
	require.NotEqual(t, a.String(), b.String())
}

func TestParseSliceRejectsMissingBudget(t *testing.T) {
	_, err := ParseSlice("dis+11")
	require.Error(t, err)
}
