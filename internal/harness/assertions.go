package harness

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/0dillon/HNG1/internal/ir"
	"github.com/0dillon/HNG1/internal/queryir"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s %v -> %s\n", event.Seq, event.Op, event.Input, event.Outcome)
		}
	}

	return buf.String()
}

// EvaluateAssertions runs every assertion and returns the failure messages.
// Does not fail fast.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, a)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, a)
		case AssertStored:
			err = assertStored(result.Stored, a)
		case AssertAbsent:
			err = assertAbsent(result.Stored, a)
		case AssertStoredCount:
			err = assertStoredCount(result.Stored, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %s", i, err.Error()))
		}
	}
	return errs
}

// matchesEvent reports whether event satisfies the op/outcome/value filter.
func matchesEvent(event TraceEvent, a Assertion) bool {
	if event.Op != a.Op {
		return false
	}
	if a.Outcome != "" && event.Outcome != a.Outcome {
		return false
	}
	if a.Value != nil && event.Input["value"] != *a.Value {
		return false
	}
	return true
}

func describe(a Assertion) string {
	var b strings.Builder
	b.WriteString(a.Op)
	if a.Value != nil {
		fmt.Fprintf(&b, " %q", *a.Value)
	}
	if a.Outcome != "" {
		fmt.Fprintf(&b, " -> %s", a.Outcome)
	}
	return b.String()
}

// assertTraceContains checks that at least one event matches.
func assertTraceContains(trace []TraceEvent, a Assertion) error {
	for _, event := range trace {
		if matchesEvent(event, a) {
			return nil
		}
	}
	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: describe(a),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceCount checks that exactly Count events match.
func assertTraceCount(trace []TraceEvent, a Assertion) error {
	count := 0
	for _, event := range trace {
		if matchesEvent(event, a) {
			count++
		}
	}
	if count != a.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%s exactly %d time(s)", describe(a), a.Count),
			Actual:   fmt.Sprintf("%d time(s)", count),
			Trace:    trace,
		}
	}
	return nil
}

func assertStored(stored []string, a Assertion) error {
	var missing []string
	for _, v := range a.Values {
		if !slices.Contains(stored, v) {
			missing = append(missing, v)
		}
	}
	if len(missing) > 0 {
		return &AssertionError{
			Type:     AssertStored,
			Expected: fmt.Sprintf("stored %q", a.Values),
			Actual:   fmt.Sprintf("missing %q", missing),
		}
	}
	return nil
}

func assertAbsent(stored []string, a Assertion) error {
	var present []string
	for _, v := range a.Values {
		if slices.Contains(stored, v) {
			present = append(present, v)
		}
	}
	if len(present) > 0 {
		return &AssertionError{
			Type:     AssertAbsent,
			Expected: fmt.Sprintf("absent %q", a.Values),
			Actual:   fmt.Sprintf("present %q", present),
		}
	}
	return nil
}

func assertStoredCount(stored []string, a Assertion) error {
	if len(stored) != a.Count {
		return &AssertionError{
			Type:     AssertStoredCount,
			Expected: fmt.Sprintf("%d record(s)", a.Count),
			Actual:   fmt.Sprintf("%d record(s) %q", len(stored), stored),
		}
	}
	return nil
}

// matchProperties does a subset match of expected against actual.
// Returns one message per mismatched key, sorted by key.
func matchProperties(expected map[string]any, actual ir.Properties) []string {
	got := toMap(actual)

	keys := make([]string, 0, len(expected))
	for k := range expected {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []string
	for _, k := range keys {
		v, ok := got[k]
		if !ok {
			errs = append(errs, fmt.Sprintf("unknown property %q", k))
			continue
		}
		if diff := cmp.Diff(normalize(expected[k]), v); diff != "" {
			errs = append(errs, fmt.Sprintf("property %s mismatch (-want +got):\n%s", k, diff))
		}
	}
	return errs
}

// matchValues reports whether two maps are equal after numeric normalization.
func matchValues(expected, actual map[string]any) bool {
	return cmp.Equal(normalize(expected), normalize(actual))
}

// criteriaMap renders criteria with their JSON field names.
func criteriaMap(c queryir.Criteria) map[string]any {
	return toMap(c)
}

// toMap converts v to its generic JSON form.
func toMap(v any) map[string]any {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}

// normalize converts YAML-decoded values to the types json.Unmarshal produces,
// so integers compare equal to float64.
func normalize(v any) any {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case uint64:
		return float64(x)
	case float32:
		return float64(x)
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}
