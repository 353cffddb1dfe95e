package portfolio

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/easychair/vampire-sub000/internal/szs"
)

// MasterChildRunner forks and waits for one problem's master child
// (spec.md §4.8: "For each problem the driver forks a master child; if
// the child exits with code 0 the result is Theorem, otherwise
// GaveUp"). A child crash is the caller's responsibility to map to a
// non-zero exit code; RunBatch never aborts the batch on a single
// problem's failure.
type MasterChildRunner func(pair ProblemPair, budget time.Duration) (exitCode int, err error)

// RunBatch drives spec's batch mode end to end: for every problem pair
// it writes the Started/status/Ended SZS bracket to w, invokes run,
// and finally emits the "Solved N out of M" summary line. It returns
// the solved count and total so cmd/prover can derive the batch's exit
// code.
func RunBatch(spec *BatchSpec, run MasterChildRunner, w io.Writer, log *logrus.Entry) (solved, total int, err error) {
	if log == nil {
		log = logrus.NewEntry(logrus.New())
	}
	budget := spec.Config.EffectiveProblemBudget()
	total = len(spec.Problems)

	for _, pair := range spec.Problems {
		if err := szs.WriteStarted(w, pair.Input); err != nil {
			return solved, total, err
		}

		code, runErr := run(pair, budget)
		if runErr != nil {
			log.WithError(runErr).WithField("problem", pair.Input).Warn("master child failed; treating as GaveUp")
		}

		status := szs.GaveUp
		if runErr == nil && code == 0 {
			status = szs.Theorem
			solved++
		}
		if err := szs.WriteStatus(w, status, pair.Input); err != nil {
			return solved, total, err
		}
		if err := szs.WriteEnded(w, pair.Input); err != nil {
			return solved, total, err
		}
	}

	if err := szs.BatchSummary(w, solved, total); err != nil {
		return solved, total, err
	}
	return solved, total, nil
}
