// Command prover is the CLI surface of spec.md §6: a single-strategy
// solver, a portfolio-schedule solver, and a CASC-LTB-style batch
// runner, all built from the same internal/saturation.SaturationLoop.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/easychair/vampire-sub000/internal/collaborators"
	"github.com/easychair/vampire-sub000/internal/container"
	"github.com/easychair/vampire-sub000/internal/engine"
	"github.com/easychair/vampire-sub000/internal/index"
	"github.com/easychair/vampire-sub000/internal/ordering"
	"github.com/easychair/vampire-sub000/internal/portfolio"
	"github.com/easychair/vampire-sub000/internal/proverrors"
	"github.com/easychair/vampire-sub000/internal/saturation"
	"github.com/easychair/vampire-sub000/internal/selector"
	"github.com/easychair/vampire-sub000/internal/szs"
	"github.com/easychair/vampire-sub000/internal/term"
)

// childFlag is the hidden re-exec marker a batch master child is
// started with (spec.md §4.8's "forks a master child" per problem).
// Main accepts the flag but never reads its value.
const childFlag = "-portfolio-child"

// Parser, Preprocessor and ProofWriter are external collaborators
// (spec.md §1): this module declares their interfaces in
// internal/collaborators but ships no implementation. A deployment
// embeds this package and calls RegisterCollaborators before Main runs;
// without that, any command needing to read an input file fails fast
// with a UserErr rather than silently doing nothing.
var (
	theParser       collaborators.Parser
	thePreprocessor collaborators.Preprocessor
	theProofWriter  collaborators.ProofWriter
)

// RegisterCollaborators wires in the concrete external implementations.
// Call it from an embedding main before invoking Main.
func RegisterCollaborators(p collaborators.Parser, pp collaborators.Preprocessor, pw collaborators.ProofWriter) {
	theParser, thePreprocessor, theProofWriter = p, pp, pw
}

func main() {
	os.Exit(Main(os.Args[1:]))
}

// Main is the testable entry point; it never calls os.Exit itself.
func Main(args []string) int {
	fs := flag.NewFlagSet("solver", flag.ContinueOnError)
	mode := fs.String("mode", "", "solver | portfolio | casc_ltb")
	timeLimit := fs.Int("time_limit", 10, "per-run wall-clock budget in seconds")
	memLimit := fs.Uint64("memory_limit", 0, "heap byte ceiling (0 disables the check)")
	sel := fs.Int("sel", 0, "literal selection policy index (0-3)")
	awr := fs.Int("awr", 1, "age/weight ratio for Passive selection")
	catalogPath := fs.String("catalog", "", "YAML strategy catalog for --mode portfolio")
	fs.Bool(strings.TrimPrefix(childFlag, "-"), false, "internal: re-exec as a single portfolio child")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "user error: missing input file")
		return 2
	}
	inputFile := fs.Arg(0)
	log := logrus.NewEntry(logrus.New())

	switch *mode {
	case "", "solver":
		return runSingleStrategy(inputFile, strategyOptions{sel: *sel, awr: *awr}, time.Duration(*timeLimit)*time.Second, *memLimit, log)
	case "portfolio":
		return runPortfolio(inputFile, *catalogPath, time.Duration(*timeLimit)*time.Second, log)
	case "casc_ltb":
		return runBatchMode(inputFile, log)
	default:
		fmt.Fprintf(os.Stderr, "user error: unknown mode %q\n", *mode)
		return 2
	}
}

// strategyOptions is the decoded form of a slice's options, shared by
// single-strategy and portfolio-slice runs.
type strategyOptions struct {
	sel int
	awr int
}

func loadProblem(path string) (*collaborators.Problem, error) {
	if theParser == nil || thePreprocessor == nil {
		return nil, proverrors.UserErr.New("no Parser/Preprocessor registered; call RegisterCollaborators before Main")
	}
	units, err := theParser.Parse(path)
	if err != nil {
		return nil, proverrors.UserErr.New(err.Error())
	}
	problem, err := thePreprocessor.Preprocess(units)
	if err != nil {
		return nil, proverrors.UserErr.New(err.Error())
	}
	return problem, nil
}

// newContext builds a fresh engine.Context (its own Active set and
// indexes) over problem's Factory and signature, with every C5 engine
// attached — the shape every strategy run needs regardless of which
// generators/simplifiers end up enabled.
func newContext(problem *collaborators.Problem) *engine.Context {
	funcs, preds := collectSignature(problem)
	prec := ordering.NewPrecedence(funcs, preds, ordering.PrecedenceOptions{}, 1)
	kbo := ordering.NewKBO(prec)
	active := container.NewActive()
	return &engine.Context{
		Factory:  problem.Factory,
		Ordering: kbo,
		Indexes:  index.NewManager(active, nil),
		Active:   active,
	}
}

func collectSignature(problem *collaborators.Problem) (funcs, preds []term.Symbol) {
	seenFunc := map[int]bool{}
	seenPred := map[int]bool{}
	var walk func(t *term.Term)
	walk = func(t *term.Term) {
		if t.IsVar() {
			return
		}
		if !seenFunc[t.Func.ID] {
			seenFunc[t.Func.ID] = true
			funcs = append(funcs, t.Func)
		}
		for _, a := range t.Args {
			walk(a)
		}
	}
	for _, c := range problem.Units {
		for _, l := range c.Literals() {
			if !l.IsEquality() && !seenPred[l.Predicate.ID] {
				seenPred[l.Predicate.ID] = true
				preds = append(preds, l.Predicate)
			}
			for _, a := range l.Args {
				walk(a)
			}
		}
	}
	return funcs, preds
}

// buildStrategy assembles a full-rule-set StrategyConfig: every C5
// generator and simplifier attached to ctx, the selector/age-weight
// ratio chosen by opts. This is the single place that turns decoded
// options into a StrategyConfig, shared by single-strategy mode and
// every portfolio slice (via strategyBuilder below).
func buildStrategy(ctx *engine.Context, opts strategyOptions, memLimit uint64) saturation.StrategyConfig {
	gens := []engine.Generator{
		&engine.Superposition{}, &engine.BinaryResolution{},
		&engine.EqualityResolution{}, &engine.EqualityFactoring{}, &engine.Factoring{},
	}
	fwd := []engine.ForwardSimplifier{
		&engine.ForwardDemodulation{}, &engine.Subsumption{}, &engine.SubsumptionResolution{},
	}
	bwd := []engine.BackwardSimplifier{
		&engine.BackwardDemodulation{}, &engine.BackwardSubsumption{},
	}
	for _, g := range gens {
		g.Attach(ctx)
	}
	for _, f := range fwd {
		f.Attach(ctx)
	}
	for _, b := range bwd {
		b.Attach(ctx)
	}

	policies := []selector.Selector{selector.MaximalityOnly{}, selector.NegativePriority{}, selector.ReverseMaximal{}, selector.SizeBased{}}
	pick := opts.sel
	if pick < 0 || pick >= len(policies) {
		pick = 0
	}
	awr := opts.awr
	if awr <= 0 {
		awr = 1
	}

	return saturation.StrategyConfig{
		Ordering:            ctx.Ordering,
		Selector:            policies[pick],
		AgeWeightRatio:      awr,
		Generators:          gens,
		ForwardSimplifiers:  fwd,
		BackwardSimplifiers: bwd,
		MemoryLimitBytes:    memLimit,
		Complete:            true,
	}
}

func runSingleStrategy(inputFile string, opts strategyOptions, budget time.Duration, memLimit uint64, log *logrus.Entry) int {
	problem, err := loadProblem(inputFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	ctx := newContext(problem)
	cfg := buildStrategy(ctx, opts, memLimit)
	loop := saturation.New(cfg, ctx, problem.Units, log)

	szs.WriteStarted(os.Stdout, inputFile)
	outcome := loop.Run(budget)
	return reportOutcome(inputFile, outcome)
}

func reportOutcome(problemName string, outcome saturation.Outcome) int {
	switch outcome.Kind {
	case saturation.OutcomeRefutation:
		status := szs.Theorem
		if theProofWriter != nil {
			_ = theProofWriter.Write(os.Stdout, outcome.Refutation)
		}
		szs.WriteStatus(os.Stdout, status, problemName)
		szs.WriteEnded(os.Stdout, problemName)
		return 0
	case saturation.OutcomeSatisfiable:
		szs.WriteStatus(os.Stdout, szs.CounterSat, problemName)
		szs.WriteEnded(os.Stdout, problemName)
		return 0
	case saturation.OutcomeTimeLimit:
		szs.WriteStatus(os.Stdout, szs.Timeout, problemName)
		szs.WriteEnded(os.Stdout, problemName)
		return 1
	default:
		szs.WriteStatus(os.Stdout, szs.GaveUp, problemName)
		szs.WriteEnded(os.Stdout, problemName)
		return 1
	}
}

func runPortfolio(inputFile, catalogPath string, budget time.Duration, log *logrus.Entry) int {
	problem, err := loadProblem(inputFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	schedule := defaultSchedule()
	if catalogPath != "" {
		cat, err := portfolio.LoadCatalog(catalogPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		category := portfolio.ClassifyCategory(problem)
		prop := portfolio.PropertyOf(problem)
		if s, ok := cat.Select(category, prop); ok {
			schedule = s
		}
	}

	driver := portfolio.NewDriver(strategyBuilder())
	driver.Log = log
	result := driver.RunProblem(problem, schedule, budget)
	return reportOutcome(inputFile, result.Outcome)
}

// defaultSchedule is used when --mode portfolio is given without
// --catalog: a single slice running every rule for the whole budget.
func defaultSchedule() portfolio.Schedule {
	s, _ := portfolio.ParseSlice("default_100")
	return portfolio.Schedule{Quick: []portfolio.Slice{s}}
}

// strategyBuilder adapts buildStrategy into a portfolio.StrategyBuilder:
// every slice gets its own fresh Context (own Active/indexes), so
// concurrent ThreadExecutor goroutines never share mutable state.
func strategyBuilder() portfolio.StrategyBuilder {
	return func(problem *collaborators.Problem, slice portfolio.Slice) (*saturation.SaturationLoop, error) {
		ctx := newContext(problem)
		selIdx, _, _ := slice.OptionInt("sel")
		awrVal, _, _ := slice.OptionInt("awr")
		if awrVal == 0 {
			awrVal = 1
		}
		cfg := buildStrategy(ctx, strategyOptions{sel: selIdx, awr: awrVal}, 0)
		return saturation.New(cfg, ctx, problem.Units, nil), nil
	}
}

func runBatchMode(batchFile string, log *logrus.Entry) int {
	f, err := os.Open(batchFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, proverrors.UserErr.New(err.Error()))
		return 1
	}
	defer f.Close()

	spec, err := portfolio.ParseBatch(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	selfPath, err := os.Executable()
	if err != nil {
		selfPath = os.Args[0]
	}
	run := func(pair portfolio.ProblemPair, budget time.Duration) (int, error) {
		cmd := exec.Command(selfPath, "--mode", "portfolio",
			fmt.Sprintf("--time_limit=%d", int(budget.Seconds())), childFlag, pair.Input)
		out, createErr := os.Create(pair.Output)
		if createErr != nil {
			return 1, createErr
		}
		defer out.Close()
		cmd.Stdout = out
		cmd.Stderr = out
		if runErr := cmd.Run(); runErr != nil {
			return 1, nil // non-zero exit is GaveUp, not a driver-level error
		}
		return 0, nil
	}

	solved, total, err := portfolio.RunBatch(spec, run, os.Stdout, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if solved == 0 && total > 0 {
		return 1
	}
	return 0
}
