package filter

import (
	"fmt"
	"strings"

	"github.com/0dillon/HNG1/internal/ir"
	"github.com/0dillon/HNG1/internal/queryir"
)

// Apply returns the records that satisfy every supplied criterion.
//
// Returns a *queryir.ArgumentError if the criteria are invalid; this is
// checked before any record is inspected, so an invalid filter fails the
// same way on an empty store.
//
// The input slice is not modified. The result preserves input order and is
// never nil.
func Apply(records []ir.StringRecord, c queryir.Criteria) ([]ir.StringRecord, error) {
	if err := queryir.Validate(c); err != nil {
		return nil, err
	}
	return Select(records, c.Predicate())
}

// Select returns the records matching pred.
func Select(records []ir.StringRecord, pred queryir.Predicate) ([]ir.StringRecord, error) {
	out := make([]ir.StringRecord, 0, len(records))
	for _, rec := range records {
		ok, err := Match(pred, rec)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Match evaluates pred against a single record.
// A nil predicate matches everything.
func Match(pred queryir.Predicate, rec ir.StringRecord) (bool, error) {
	switch p := pred.(type) {
	case nil:
		return true, nil
	case queryir.Equals:
		switch p.Field {
		case queryir.FieldIsPalindrome:
			want, ok := p.Value.(bool)
			if !ok {
				return false, fmt.Errorf("field %q compared to %T", p.Field, p.Value)
			}
			return rec.Properties.IsPalindrome == want, nil
		default:
			got, err := intField(rec, p.Field)
			if err != nil {
				return false, err
			}
			want, ok := p.Value.(int)
			if !ok {
				return false, fmt.Errorf("field %q compared to %T", p.Field, p.Value)
			}
			return got == want, nil
		}
	case queryir.AtLeast:
		got, err := intField(rec, p.Field)
		if err != nil {
			return false, err
		}
		return got >= p.Bound, nil
	case queryir.AtMost:
		got, err := intField(rec, p.Field)
		if err != nil {
			return false, err
		}
		return got <= p.Bound, nil
	case queryir.ContainsChar:
		if p.Field != queryir.FieldValue {
			return false, fmt.Errorf("field %q does not support contains", p.Field)
		}
		return strings.Contains(rec.Value, p.Char), nil
	case queryir.And:
		for _, sub := range p.Predicates {
			ok, err := Match(sub, rec)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	default:
		return false, fmt.Errorf("unsupported predicate type: %T", pred)
	}
}

// intField reads an integer-valued property of rec.
func intField(rec ir.StringRecord, f queryir.Field) (int, error) {
	switch f {
	case queryir.FieldLength:
		return rec.Properties.Length, nil
	case queryir.FieldWordCount:
		return rec.Properties.WordCount, nil
	default:
		return 0, fmt.Errorf("field %q is not an integer field", f)
	}
}
