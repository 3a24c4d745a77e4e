package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/0dillon/HNG1/internal/engine"
	"github.com/0dillon/HNG1/internal/filter"
	"github.com/0dillon/HNG1/internal/ir"
	"github.com/0dillon/HNG1/internal/queryir"
	"github.com/0dillon/HNG1/internal/store"
	"github.com/0dillon/HNG1/internal/testutil"
)

// Harness is the test execution engine.
// It runs scenarios against a fresh store with a deterministic clock.
type Harness struct {
	engine *engine.Engine
	logger *slog.Logger
}

// interpretResult is the traced result of an interpret step.
type interpretResult struct {
	ParsedFilters queryir.Criteria `json:"parsed_filters"`
	Values        []string         `json:"values"`
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh store for isolation. Record timestamps start
// at testutil.Epoch and advance one second per create.
//
// Execution flow:
// 1. Open a fresh store of the requested backend
// 2. Create setup values (must succeed)
// 3. Execute flow steps with expect validation
// 4. Snapshot the final store contents
// 5. Evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	repo, closeRepo, err := openRepository(scenario.Store)
	if err != nil {
		return nil, err
	}
	defer closeRepo()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests
	clock := testutil.NewStepClock(testutil.Epoch, time.Second)
	h := &Harness{
		engine: engine.New(repo, engine.WithClock(clock), engine.WithLogger(logger)),
		logger: logger,
	}

	ctx := context.Background()
	result := NewResult()

	if err := h.executeSetup(ctx, scenario.Setup, result); err != nil {
		return nil, fmt.Errorf("failed to execute setup: %w", err)
	}

	for i, step := range scenario.Flow {
		h.executeStep(ctx, i, step, result)
	}

	final, err := h.engine.List(ctx, queryir.Criteria{})
	if err != nil {
		return nil, fmt.Errorf("failed to read final state: %w", err)
	}
	for _, rec := range final {
		result.Stored = append(result.Stored, rec.Value)
	}

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

func openRepository(backend string) (engine.Repository, func(), error) {
	if backend == "sqlite" {
		st, err := store.Open(store.MemoryDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create in-memory store: %w", err)
		}
		return st, func() { st.Close() }, nil
	}
	return store.NewMemory(), func() {}, nil
}

// executeSetup creates every setup value. Any failure aborts the scenario.
func (h *Harness) executeSetup(ctx context.Context, values []string, result *Result) error {
	for i, v := range values {
		if _, err := h.engine.Create(ctx, v); err != nil {
			return fmt.Errorf("setup[%d] %q: %w", i, v, err)
		}
		result.AddTrace(TraceEvent{
			Op:      OpSetup,
			Input:   map[string]any{"value": v},
			Outcome: OutcomeOK,
		})
		h.logger.Debug("setup step completed", "step", i, "value", v)
	}
	return nil
}

// executeStep runs one flow step, traces it, and checks its expect clause.
func (h *Harness) executeStep(ctx context.Context, index int, step Step, result *Result) {
	ev := TraceEvent{Op: step.Op}
	var (
		rec    *ir.StringRecord
		values []string
		interp *queryir.Criteria
		err    error
	)

	switch step.Op {
	case OpCreate:
		ev.Input = map[string]any{"value": step.Value}
		var r ir.StringRecord
		if r, err = h.engine.Create(ctx, step.Value); err == nil {
			rec = &r
			ev.Result = r
		}
	case OpGet:
		ev.Input = map[string]any{"value": step.Value}
		var r ir.StringRecord
		if r, err = h.engine.Get(ctx, step.Value); err == nil {
			rec = &r
			ev.Result = r
		}
	case OpDelete:
		ev.Input = map[string]any{"value": step.Value}
		err = h.engine.Delete(ctx, step.Value)
	case OpList:
		filters := step.Filters
		if filters == nil {
			filters = map[string]string{}
		}
		ev.Input = map[string]any{"filters": filters}
		var recs []ir.StringRecord
		if recs, err = h.list(ctx, filters); err == nil {
			values = valuesOf(recs)
			ev.Result = values
		}
	case OpInterpret:
		ev.Input = map[string]any{"query": step.Query}
		i, recs, ierr := h.engine.Interpret(ctx, step.Query)
		if err = ierr; err == nil {
			values = valuesOf(recs)
			interp = &i.ParsedFilters
			ev.Result = interpretResult{ParsedFilters: i.ParsedFilters, Values: values}
		}
	}

	ev.Outcome, ev.Message = outcomeOf(err)
	result.AddTrace(ev)

	for _, msg := range checkExpect(step.Expect, ev, rec, values, interp) {
		result.AddError(fmt.Sprintf("flow[%d] %s: %s", index, step.Op, msg))
	}
}

// list parses raw filters the way the HTTP layer does.
func (h *Harness) list(ctx context.Context, filters map[string]string) ([]ir.StringRecord, error) {
	params := url.Values{}
	for k, v := range filters {
		params.Set(k, v)
	}
	c, err := filter.ParseParams(params)
	if err != nil {
		var argErr *queryir.ArgumentError
		if errors.As(err, &argErr) {
			return nil, &engine.Error{Code: engine.ErrCodeInvalidArgument, Message: argErr.Message, Err: err}
		}
		return nil, err
	}
	return h.engine.List(ctx, c)
}

func outcomeOf(err error) (outcome, message string) {
	if err == nil {
		return OutcomeOK, ""
	}
	var e *engine.Error
	if !errors.As(err, &e) {
		return OutcomeInternal, err.Error()
	}
	return strings.ToLower(string(e.Code)), e.Message
}

func checkExpect(exp *Expect, ev TraceEvent, rec *ir.StringRecord, values []string, interp *queryir.Criteria) []string {
	want := OutcomeOK
	if exp != nil && exp.Outcome != "" {
		want = exp.Outcome
	}

	var errs []string
	if ev.Outcome != want {
		errs = append(errs, fmt.Sprintf("expected outcome %s, got %s (%s)", want, ev.Outcome, ev.Message))
		return errs
	}
	if exp == nil {
		return nil
	}

	if exp.Message != "" && exp.Message != ev.Message {
		errs = append(errs, fmt.Sprintf("expected message %q, got %q", exp.Message, ev.Message))
	}
	if exp.Values != nil && !reflect.DeepEqual(exp.Values, values) {
		errs = append(errs, fmt.Sprintf("expected values %v, got %v", exp.Values, values))
	}
	if exp.Count != nil && *exp.Count != len(values) {
		errs = append(errs, fmt.Sprintf("expected count %d, got %d", *exp.Count, len(values)))
	}
	if exp.Properties != nil {
		if rec == nil {
			errs = append(errs, "properties expected but step returned no record")
		} else {
			errs = append(errs, matchProperties(exp.Properties, rec.Properties)...)
		}
	}
	if exp.ParsedFilters != nil {
		if interp == nil {
			errs = append(errs, "parsed_filters expected but step did not interpret")
		} else if got := criteriaMap(*interp); !matchValues(exp.ParsedFilters, got) {
			errs = append(errs, fmt.Sprintf("expected parsed_filters %v, got %v", exp.ParsedFilters, got))
		}
	}
	return errs
}

func valuesOf(recs []ir.StringRecord) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Value)
	}
	return out
}
