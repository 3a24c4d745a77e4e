// Package engine implements the string service core.
//
// The engine is the only component that sees every other one: it analyzes
// submitted values, stores them by fingerprint, and answers lookups and
// filter queries. HTTP handlers and the CLI talk to the engine, never to a
// store directly.
//
// ARCHITECTURE:
//
//	Create(value) → analyzer.NewRecord → Repository.Create (insert-if-absent)
//	Get(value)    → Repository.Get(Fingerprint(value))
//	Delete(value) → Repository.Delete(Fingerprint(value))
//	List(criteria)       → Querier.Query (pushdown) | Repository.List + filter.Apply
//	Interpret(query)     → nlquery.Translate → List(criteria)
//
// Records are addressed by their original value, not by id: callers re-submit
// the string and the engine recomputes the fingerprint.
//
// ERRORS:
//
// Every error returned by an exported method is an *Error with a Code that
// maps 1:1 to a client-visible outcome. Store failures surface as
// ErrCodeInternal with a generic message; the cause is logged, not returned.
//
// CONCURRENCY:
//
// Engine holds no mutable state of its own. Mutual exclusion lives in the
// Repository, which must make Create's duplicate check and insert atomic.
package engine
