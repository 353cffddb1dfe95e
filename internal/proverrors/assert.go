package proverrors

import "fmt"

// debugAssertions is toggled by the "debug" build tag (see assert_debug.go
// / assert_release.go). On a debug build Assert panics immediately; on a
// release build it returns an AssertionFailureErr. Its one caller, the
// saturation loop, logs that error and drops the offending clause; no
// Error outcome exists, so the slice's outcome does not reflect it.
func Assert(cond bool, format string, args ...interface{}) error {
	if cond {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	if debugAssertions {
		panic("assertion failed: " + msg)
	}
	return AssertionFailureErr.New(msg)
}
