package portfolio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// BatchConfig is the parsed "% SZS start/end BatchConfiguration"
// section of spec.md §6.
type BatchConfig struct {
	DivisionCategory string
	AnswerRequired   bool
	PerProblemWC     time.Duration
	OverallWC        time.Duration
}

// EffectiveProblemBudget resolves spec.md §9's open question on how
// limit.time.problem.wc and limit.time.overall.wc interact: the
// per-problem limit wins whenever it is set; the overall limit is only
// consulted as a fallback when no per-problem limit was given at all
// (the stricter, safer reading, chosen over silently ignoring it).
func (c BatchConfig) EffectiveProblemBudget() time.Duration {
	if c.PerProblemWC > 0 {
		return c.PerProblemWC
	}
	return c.OverallWC
}

// ProblemPair is one "<inputPath> <outputPath>" line of a
// "% SZS start/end BatchProblems" section.
type ProblemPair struct {
	Input  string
	Output string
}

// BatchSpec is a fully parsed batch file.
type BatchSpec struct {
	Config   BatchConfig
	Includes []string
	Problems []ProblemPair
}

// ParseBatch reads spec.md §6's line-oriented, SZS-marker-delimited
// batch grammar. Unknown configuration keys and blank lines within a
// section are ignored rather than rejected, matching the grammar's own
// "(ignored ...)" annotations for the keys it names explicitly.
func ParseBatch(r io.Reader) (*BatchSpec, error) {
	spec := &BatchSpec{}
	scanner := bufio.NewScanner(r)
	section := ""
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "% SZS start ") {
			section = strings.TrimPrefix(line, "% SZS start ")
			continue
		}
		if strings.HasPrefix(line, "% SZS end ") {
			section = ""
			continue
		}
		switch section {
		case "BatchConfiguration":
			if err := parseConfigLine(&spec.Config, line); err != nil {
				return nil, fmt.Errorf("portfolio: batch file line %d: %w", lineNo, err)
			}
		case "BatchIncludes":
			path, err := parseIncludeLine(line)
			if err != nil {
				return nil, fmt.Errorf("portfolio: batch file line %d: %w", lineNo, err)
			}
			spec.Includes = append(spec.Includes, path)
		case "BatchProblems":
			pair, err := parseProblemLine(line)
			if err != nil {
				return nil, fmt.Errorf("portfolio: batch file line %d: %w", lineNo, err)
			}
			spec.Problems = append(spec.Problems, pair)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("portfolio: reading batch file: %w", err)
	}
	return spec, nil
}

func parseConfigLine(cfg *BatchConfig, line string) error {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return fmt.Errorf("malformed configuration line %q", line)
	}
	key, value := fields[0], strings.Join(fields[1:], " ")
	switch key {
	case "division.category":
		cfg.DivisionCategory = value
	case "output.required":
		cfg.AnswerRequired = value == "Answer"
	case "execution.order":
		// always ordered; nothing to record
	case "limit.time.problem.wc":
		secs, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("limit.time.problem.wc: %w", err)
		}
		cfg.PerProblemWC = time.Duration(secs) * time.Second
	case "limit.time.overall.wc":
		secs, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("limit.time.overall.wc: %w", err)
		}
		cfg.OverallWC = time.Duration(secs) * time.Second
	}
	return nil
}

func parseIncludeLine(line string) (string, error) {
	const prefix, suffix = "include('", "')."
	if !strings.HasPrefix(line, prefix) || !strings.HasSuffix(line, suffix) {
		return "", fmt.Errorf("malformed include line %q", line)
	}
	return line[len(prefix) : len(line)-len(suffix)], nil
}

func parseProblemLine(line string) (ProblemPair, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return ProblemPair{}, fmt.Errorf("malformed problem line %q, want \"<input> <output>\"", line)
	}
	return ProblemPair{Input: fields[0], Output: fields[1]}, nil
}
