package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Store selects the backend: "memory" (default) or "sqlite".
	Store string `yaml:"store,omitempty"`

	// Setup lists values created before the flow.
	// Setup creates must succeed.
	Setup []string `yaml:"setup,omitempty"`

	// Flow contains the operations under test.
	Flow []Step `yaml:"flow"`

	// Assertions validate the final trace and store contents.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one engine operation.
type Step struct {
	// Op is one of create, get, delete, list, interpret.
	Op string `yaml:"op"`

	// Value is the string operated on (create, get, delete).
	Value string `yaml:"value,omitempty"`

	// Filters are raw query parameters (list).
	Filters map[string]string `yaml:"filters,omitempty"`

	// Query is the free-text filter (interpret).
	Query string `yaml:"query,omitempty"`

	// Expect specifies the expected result.
	// If nil, the step must succeed and nothing else is checked.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect specifies expected step behavior. Unset fields are not checked.
type Expect struct {
	// Outcome is the expected outcome; default "ok".
	Outcome string `yaml:"outcome,omitempty"`

	// Message is the expected error message.
	Message string `yaml:"message,omitempty"`

	// Values are the expected matching values, in order (list, interpret).
	Values []string `yaml:"values,omitempty"`

	// Count is the expected number of matches (list, interpret).
	Count *int `yaml:"count,omitempty"`

	// Properties is a subset match on the record's properties (create, get).
	Properties map[string]any `yaml:"properties,omitempty"`

	// ParsedFilters must equal the interpreted filters exactly (interpret).
	ParsedFilters map[string]any `yaml:"parsed_filters,omitempty"`
}

// Assertion validates trace or final state.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Op is the operation (trace_contains, trace_count).
	Op string `yaml:"op,omitempty"`

	// Outcome filters trace events (trace_contains, trace_count).
	Outcome string `yaml:"outcome,omitempty"`

	// Value filters trace events by input value (trace_contains).
	Value *string `yaml:"value,omitempty"`

	// Values are store contents to check (stored, absent).
	Values []string `yaml:"values,omitempty"`

	// Count is the expected count (trace_count, stored_count).
	Count int `yaml:"count,omitempty"`
}

// Operation names.
const (
	OpSetup     = "setup"
	OpCreate    = "create"
	OpGet       = "get"
	OpDelete    = "delete"
	OpList      = "list"
	OpInterpret = "interpret"
)

// Outcome names.
const (
	OutcomeOK              = "ok"
	OutcomeConflict        = "conflict"
	OutcomeNotFound        = "not_found"
	OutcomeInvalidArgument = "invalid_argument"
	OutcomeInternal        = "internal"
)

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceCount    = "trace_count"
	AssertStored        = "stored"
	AssertAbsent        = "absent"
	AssertStoredCount   = "stored_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch s.Store {
	case "", "memory", "sqlite":
	default:
		return fmt.Errorf("unknown store %q", s.Store)
	}

	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Flow {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateStep(index int, s *Step) error {
	switch s.Op {
	case OpCreate, OpGet, OpDelete:
		if s.Filters != nil || s.Query != "" {
			return fmt.Errorf("flow[%d]: %s takes only value", index, s.Op)
		}
	case OpList:
		if s.Value != "" || s.Query != "" {
			return fmt.Errorf("flow[%d]: list takes only filters", index)
		}
	case OpInterpret:
		if s.Value != "" || s.Filters != nil {
			return fmt.Errorf("flow[%d]: interpret takes only query", index)
		}
	case "":
		return fmt.Errorf("flow[%d]: op is required", index)
	default:
		return fmt.Errorf("flow[%d]: unknown op %q", index, s.Op)
	}

	if s.Expect != nil && s.Expect.Outcome != "" && !isOutcome(s.Expect.Outcome) {
		return fmt.Errorf("flow[%d].expect: unknown outcome %q", index, s.Expect.Outcome)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_contains", index)
		}
	case AssertTraceCount:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertStored, AssertAbsent:
		if len(a.Values) == 0 {
			return fmt.Errorf("assertions[%d]: values list is required for %s", index, a.Type)
		}
	case AssertStoredCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for stored_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	if a.Outcome != "" && !isOutcome(a.Outcome) {
		return fmt.Errorf("assertions[%d]: unknown outcome %q", index, a.Outcome)
	}
	return nil
}

func isOutcome(s string) bool {
	switch s {
	case OutcomeOK, OutcomeConflict, OutcomeNotFound, OutcomeInvalidArgument, OutcomeInternal:
		return true
	}
	return false
}
