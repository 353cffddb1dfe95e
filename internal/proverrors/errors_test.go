package proverrors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsRecoverable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"time limit", TimeLimitErr.New(), true},
		{"memory limit", MemoryLimitErr.New(), true},
		{"incomplete", IncompleteErr.New(), true},
		{"user error", UserErr.New("bad flag"), true},
		{"assertion failure", AssertionFailureErr.New("oops"), false},
		{"system fail", SystemFailErr.New("fork failed"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsRecoverable(tt.err))
		})
	}
}

func TestWrapPreservesKind(t *testing.T) {
	base := TimeLimitErr.New()
	wrapped := Wrap(base, "running slice")
	require.True(t, TimeLimitErr.Is(wrapped))
	require.Nil(t, Wrap(nil, "noop"))
}

func TestAssert(t *testing.T) {
	require.NoError(t, Assert(true, "unreachable"))
	err := Assert(false, "clause %d missing", 7)
	require.Error(t, err)
	require.True(t, AssertionFailureErr.Is(err))
}
