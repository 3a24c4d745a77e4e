package queryir

import (
	"fmt"
	"unicode/utf8"
)

// ArgumentError reports a filter value that cannot be applied.
// Message is safe to show to clients.
type ArgumentError struct {
	Param   string
	Message string
}

func (e *ArgumentError) Error() string {
	return e.Message
}

// NewArgumentError creates an ArgumentError for param.
func NewArgumentError(param, format string, args ...any) *ArgumentError {
	return &ArgumentError{Param: param, Message: fmt.Sprintf(format, args...)}
}

// Validate checks that every supplied filter can be evaluated.
//
// Rules:
//  1. contains_character must be exactly one character (code point)
//
// Contradictory bounds (min_length > max_length) are valid and simply
// match nothing.
//
// Validate is a pure function with no side effects.
func Validate(c Criteria) error {
	if c.ContainsCharacter != nil && utf8.RuneCountInString(*c.ContainsCharacter) != 1 {
		return NewArgumentError("contains_character", "contains_character must be a single character")
	}
	return nil
}

// ValidatePredicate checks a predicate tree for unknown node types and
// field/operator mismatches. Backends call it before evaluating a tree that
// did not come from Criteria.Predicate.
func ValidatePredicate(p Predicate) error {
	switch pred := p.(type) {
	case nil:
		return nil
	case Equals:
		switch pred.Field {
		case FieldIsPalindrome:
			if _, ok := pred.Value.(bool); !ok {
				return fmt.Errorf("field %q compared to %T, want bool", pred.Field, pred.Value)
			}
		case FieldLength, FieldWordCount:
			if _, ok := pred.Value.(int); !ok {
				return fmt.Errorf("field %q compared to %T, want int", pred.Field, pred.Value)
			}
		default:
			return fmt.Errorf("field %q does not support equality", pred.Field)
		}
	case AtLeast:
		return validateIntField(pred.Field)
	case AtMost:
		return validateIntField(pred.Field)
	case ContainsChar:
		if pred.Field != FieldValue {
			return fmt.Errorf("field %q does not support contains", pred.Field)
		}
		if utf8.RuneCountInString(pred.Char) != 1 {
			return fmt.Errorf("contains expects one character, got %q", pred.Char)
		}
	case And:
		for i, sub := range pred.Predicates {
			if err := ValidatePredicate(sub); err != nil {
				return fmt.Errorf("and[%d]: %w", i, err)
			}
		}
	default:
		return fmt.Errorf("unknown predicate type: %T", p)
	}
	return nil
}

func validateIntField(f Field) error {
	switch f {
	case FieldLength, FieldWordCount:
		return nil
	default:
		return fmt.Errorf("field %q does not support range comparison", f)
	}
}
