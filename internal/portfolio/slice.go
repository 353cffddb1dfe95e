// Package portfolio implements the competition driver of spec.md §4.8:
// slice encoding, schedule selection, parallel executors, a writer
// actor that serializes slice stdout, and the batch-mode entry point.
package portfolio

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Slice is one scheduled attempt: an option configuration plus a
// deciseconds time budget, encoded as spec.md §6 mandates
// (`<strategy>_<deciseconds>`, e.g. "dis+11_4_nwc=3:sos=on_42").
type Slice struct {
	// Strategy is the base strategy name (e.g. "dis+11").
	Strategy string
	// Options are the colon-separated key=value fragments that follow
	// the strategy name, in encounter order (order is preserved so
	// String round-trips byte-for-byte).
	Options []SliceOption
	// Budget is the per-slice wall-clock time limit.
	Budget time.Duration
}

// SliceOption is one `key=value` fragment of a slice code.
type SliceOption struct {
	Key   string
	Value string
}

// ParseSlice decodes a slice code into a Slice. The grammar is
// `<strategy>[:<key>=<value>]*_<deciseconds>`; strategy and option keys
// never contain '_' or ':', so the final '_' unambiguously separates
// the time budget.
func ParseSlice(code string) (Slice, error) {
	idx := strings.LastIndexByte(code, '_')
	if idx < 0 {
		return Slice{}, fmt.Errorf("portfolio: slice %q missing _<deciseconds> suffix", code)
	}
	head, tail := code[:idx], code[idx+1:]
	deciseconds, err := strconv.Atoi(tail)
	if err != nil {
		return Slice{}, fmt.Errorf("portfolio: slice %q has non-numeric time budget %q: %w", code, tail, err)
	}
	parts := strings.Split(head, ":")
	if len(parts) == 0 || parts[0] == "" {
		return Slice{}, fmt.Errorf("portfolio: slice %q missing a strategy name", code)
	}
	s := Slice{
		Strategy: parts[0],
		Budget:   time.Duration(deciseconds) * 100 * time.Millisecond,
	}
	for _, opt := range parts[1:] {
		kv := strings.SplitN(opt, "=", 2)
		if len(kv) != 2 {
			return Slice{}, fmt.Errorf("portfolio: slice %q has malformed option %q", code, opt)
		}
		s.Options = append(s.Options, SliceOption{Key: kv[0], Value: kv[1]})
	}
	return s, nil
}

// ChoppedName is the slice code without its time suffix, used by the
// fallback pass to de-duplicate against the quick pass (spec.md §4.8
// "De-duplication").
func (s Slice) ChoppedName() string {
	var b strings.Builder
	b.WriteString(s.Strategy)
	for _, o := range s.Options {
		b.WriteByte(':')
		b.WriteString(o.Key)
		b.WriteByte('=')
		b.WriteString(o.Value)
	}
	return b.String()
}

// String re-encodes the slice back into its wire form.
func (s Slice) String() string {
	deciseconds := int(s.Budget / (100 * time.Millisecond))
	return fmt.Sprintf("%s_%d", s.ChoppedName(), deciseconds)
}

// OptionInt coerces a named option's value with github.com/spf13/cast,
// the way the teacher coerces session-variable strings; ok is false if
// the option is absent.
func (s Slice) OptionInt(key string) (value int, ok bool, err error) {
	for _, o := range s.Options {
		if o.Key == key {
			v, err := cast.ToIntE(o.Value)
			return v, true, err
		}
	}
	return 0, false, nil
}

// OptionBool coerces a named "on"/"off"-style option; ok is false if
// the option is absent. Vampire-style slice codes spell booleans
// "on"/"off" rather than true/false, so those two are special-cased
// before falling back to cast.ToBoolE for anything else a strategy
// author might write.
func (s Slice) OptionBool(key string) (value bool, ok bool, err error) {
	for _, o := range s.Options {
		if o.Key != key {
			continue
		}
		switch o.Value {
		case "on":
			return true, true, nil
		case "off":
			return false, true, nil
		}
		v, err := cast.ToBoolE(o.Value)
		return v, true, err
	}
	return false, false, nil
}
