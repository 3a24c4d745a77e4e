// Package filter evaluates filter criteria over stored records.
//
// The engine is backend-agnostic: it evaluates a queryir.Predicate tree
// directly against ir.StringRecord values. Stores that can push predicates
// down (see internal/querysql) must produce the same result set.
//
// Textual filters (HTTP query parameters) are parsed by ParseParams, which
// owns every "is this value acceptable" decision for the text form:
//
//   - is_palindrome: "true" or "false", case-insensitive
//   - min_length, max_length, word_count: base-10 integers
//   - contains_character: exactly one character (checked by queryir.Validate)
package filter
