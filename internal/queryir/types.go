package queryir

// Field names a filterable record field.
// Values double as column names in the SQL backend.
type Field string

const (
	FieldValue        Field = "value"
	FieldLength       Field = "length"
	FieldIsPalindrome Field = "is_palindrome"
	FieldWordCount    Field = "word_count"
)

// Predicate represents a filter condition over a single record.
//
// This is a sealed interface - only types in this package implement it.
//
// Predicate types:
//   - Equals: field = value (bool or int)
//   - AtLeast: field >= bound
//   - AtMost: field <= bound
//   - ContainsChar: field contains the character at least once
//   - And: all predicates must be true
type Predicate interface {
	predicateNode() // Marker method - seals interface to this package
}

// Equals represents a field-equals-literal predicate.
//
// Value is a bool for FieldIsPalindrome and an int for integer fields.
type Equals struct {
	Field Field
	Value any
}

func (Equals) predicateNode() {}

// AtLeast represents an inclusive lower bound on an integer field.
type AtLeast struct {
	Field Field
	Bound int
}

func (AtLeast) predicateNode() {}

// AtMost represents an inclusive upper bound on an integer field.
type AtMost struct {
	Field Field
	Bound int
}

func (AtMost) predicateNode() {}

// ContainsChar matches when a string field contains Char at least once.
// Char is a single code point; Validate enforces this on Criteria.
type ContainsChar struct {
	Field Field
	Char  string
}

func (ContainsChar) predicateNode() {}

// And represents a conjunction of predicates (all must be true).
// Empty Predicates means "always true".
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}
