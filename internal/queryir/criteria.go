package queryir

// Criteria is a set of optional filters combined with logical AND.
// A nil field imposes no constraint.
//
// The JSON form is the "parsed_filters" object of a natural-language query,
// so only supplied fields are emitted.
type Criteria struct {
	IsPalindrome      *bool   `json:"is_palindrome,omitempty"`
	MinLength         *int    `json:"min_length,omitempty"`
	MaxLength         *int    `json:"max_length,omitempty"`
	WordCount         *int    `json:"word_count,omitempty"`
	ContainsCharacter *string `json:"contains_character,omitempty"`
}

// IsEmpty reports whether no filter is set.
func (c Criteria) IsEmpty() bool {
	return c.IsPalindrome == nil &&
		c.MinLength == nil &&
		c.MaxLength == nil &&
		c.WordCount == nil &&
		c.ContainsCharacter == nil
}

// Predicate lowers the criteria into an And of simple predicates.
//
// Predicate order is fixed: is_palindrome, min_length, max_length,
// word_count, contains_character. Backends may rely on this for stable
// SQL text.
func (c Criteria) Predicate() And {
	preds := []Predicate{}

	if c.IsPalindrome != nil {
		preds = append(preds, Equals{Field: FieldIsPalindrome, Value: *c.IsPalindrome})
	}
	if c.MinLength != nil {
		preds = append(preds, AtLeast{Field: FieldLength, Bound: *c.MinLength})
	}
	if c.MaxLength != nil {
		preds = append(preds, AtMost{Field: FieldLength, Bound: *c.MaxLength})
	}
	if c.WordCount != nil {
		preds = append(preds, Equals{Field: FieldWordCount, Value: *c.WordCount})
	}
	if c.ContainsCharacter != nil {
		preds = append(preds, ContainsChar{Field: FieldValue, Char: *c.ContainsCharacter})
	}

	return And{Predicates: preds}
}

// Bool returns a pointer to b, for building Criteria literals.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to n, for building Criteria literals.
func Int(n int) *int { return &n }

// String returns a pointer to s, for building Criteria literals.
func String(s string) *string { return &s }
