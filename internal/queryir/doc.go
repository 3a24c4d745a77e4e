// Package queryir provides the filter intermediate representation (IR) shared
// by the in-memory filter engine and the SQL backend.
//
// ARCHITECTURE:
//
// Filters arrive in two shapes, structured query parameters and free-text
// queries. Both are reduced to a Criteria value, which is then lowered into a
// Predicate tree:
//
//	[query params] ─┐
//	                ├→ [Criteria] → [Predicate] → [filter.Apply]   (memory)
//	[free text]    ─┘                          → [querysql]       (SQLite)
//
// Criteria is the user-facing form: every field is optional and the JSON
// encoding of a Criteria is exactly the "parsed_filters" object returned to
// clients. Predicate is the evaluation form: a conjunction of simple
// comparisons over record fields.
//
// SEALED INTERFACES:
//
// Predicate is a sealed interface using the marker method pattern. Only types
// in this package implement it, so backends can switch exhaustively:
//
//	switch p := pred.(type) {
//	case Equals:
//	case AtLeast:
//	case AtMost:
//	case ContainsChar:
//	case And:
//	}
//
// SEMANTICS:
//
//   - All predicates are ANDed; an empty And is vacuously true
//   - Range bounds are inclusive
//   - ContainsChar is case-sensitive and matches on code points
package queryir
