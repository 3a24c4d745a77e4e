// Package harness runs YAML scenarios against the string service engine.
//
// A scenario seeds the store, runs a flow of operations, checks each step's
// expected outcome, and evaluates assertions over the resulting trace and the
// final store contents. Every scenario runs against a fresh store with a
// deterministic clock, so its trace is byte-stable and can be compared
// against a golden file.
//
// # Scenario Format
//
//	name: crud_lifecycle
//	description: "What this scenario validates"
//	store: memory            # or sqlite; default memory
//	setup:
//	  - racecar
//	  - hello world
//	flow:
//	  - op: create
//	    value: racecar
//	    expect:
//	      outcome: conflict
//	  - op: list
//	    filters: { is_palindrome: "true" }
//	    expect:
//	      outcome: ok
//	      values: [racecar]
//	  - op: interpret
//	    query: "single word palindromic strings"
//	    expect:
//	      parsed_filters: { word_count: 1, is_palindrome: true }
//	assertions:
//	  - type: trace_count
//	    op: create
//	    outcome: conflict
//	    count: 1
//	  - type: stored
//	    values: [racecar]
//
// # Operations
//
//   - create, get, delete: take value
//   - list: takes filters, the raw query parameters of GET /strings
//   - interpret: takes query, the free-text filter
//
// Outcomes are ok, conflict, not_found, invalid_argument and internal.
//
// # Assertion Types
//
//   - trace_contains: an op with the given outcome (and value, if set) ran
//   - trace_count: an op (optionally with outcome) ran exactly count times
//   - stored: every listed value is in the final store
//   - absent: no listed value is in the final store
//   - stored_count: the final store holds exactly count records
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/crud_lifecycle.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        log.Println(e)
//	    }
//	}
package harness
