// Package szs formats the SZS status lines and batch summary spec.md §6
// mandates as the prover's user-visible output protocol. It owns no
// state; every function writes to an io.Writer so callers (the single-
// strategy CLI path and the portfolio driver) can share the same
// formatting against stdout or a batch writer pipe alike.
package szs

import (
	"fmt"
	"io"
)

// Status is one of the SZS ontology values this driver ever reports.
// spec.md never asks for the full SZS ontology, only the subset that
// can actually be distinguished by a superposition loop's Outcome.
type Status string

const (
	Started    Status = "Started"
	Theorem    Status = "Theorem"
	CounterSat Status = "CounterSatisfiable"
	GaveUp     Status = "GaveUp"
	Timeout    Status = "Timeout"
	Ended      Status = "Ended"
)

// WriteStatus emits "% SZS status <status> for <problem>".
func WriteStatus(w io.Writer, status Status, problem string) error {
	_, err := fmt.Fprintf(w, "%% SZS status %s for %s\n", status, problem)
	return err
}

// WriteStarted/WriteEnded bracket a problem's proof body (spec.md §6's
// per-problem output format).
func WriteStarted(w io.Writer, problem string) error { return WriteStatus(w, Started, problem) }
func WriteEnded(w io.Writer, problem string) error   { return WriteStatus(w, Ended, problem) }

// BatchSummary emits the final "Solved N out of M" line spec.md §7
// requires in batch mode.
func BatchSummary(w io.Writer, solved, total int) error {
	_, err := fmt.Fprintf(w, "Solved %d out of %d\n", solved, total)
	return err
}
