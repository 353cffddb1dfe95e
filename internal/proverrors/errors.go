// Package proverrors defines the error taxonomy of the saturation core
// (see spec.md §7): a small set of named kinds distinguishing user
// mistakes, recoverable resource limits, and unrecoverable bugs.
package proverrors

import (
	"github.com/pkg/errors"
	kinds "gopkg.in/src-d/go-errors.v1"
)

var (
	// UserErr wraps malformed input, missing files, unknown options and
	// malformed batch specifications. Always surfaced to stderr with a
	// diagnostic prefix; the process exits non-zero.
	UserErr = kinds.NewKind("user error: %s")

	// SystemFailErr wraps a syscall failure (fork, waitpid, pipe,
	// signal). Recovered locally when benign (e.g. ECHILD from reaping
	// an already-exited child); otherwise propagated and terminates the
	// current worker.
	SystemFailErr = kinds.NewKind("system failure: %s")

	// TimeLimitErr is recovered at the saturation loop boundary (returns
	// the TimeLimit outcome) or at the portfolio level (the slice is
	// abandoned and the next slice in the schedule is tried).
	TimeLimitErr = kinds.NewKind("time limit exceeded")

	// MemoryLimitErr has the same propagation discipline as TimeLimitErr.
	MemoryLimitErr = kinds.NewKind("memory limit exceeded")

	// IncompleteErr is returned when the loop has no more clauses but the
	// enabled rule set is known to be incomplete for the current
	// fragment; it must never be surfaced as a refutation.
	IncompleteErr = kinds.NewKind("search incomplete for enabled rule set")

	// AssertionFailureErr indicates a bug. On a debug build Assert
	// panics; on a release build it is converted to this kind and
	// logged for the current slice.
	AssertionFailureErr = kinds.NewKind("assertion failed: %s")
)

// IsRecoverable reports whether err is one of the kinds that the
// saturation loop / portfolio driver must recover from locally rather
// than letting abort the process (UserErr, TimeLimitErr, MemoryLimitErr,
// IncompleteErr). SystemFailErr is never reported recoverable here; a
// benign syscall failure is handled where it occurs, as ForkExecutor
// does when reaping a killed child.
func IsRecoverable(err error) bool {
	switch {
	case TimeLimitErr.Is(err), MemoryLimitErr.Is(err), IncompleteErr.Is(err), UserErr.Is(err):
		return true
	default:
		return false
	}
}

// Wrap adds a stack trace to err at a propagation boundary without
// changing its kind, mirroring the teacher's use of pkg/errors around
// go-errors.v1 kinds.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, msg)
}
