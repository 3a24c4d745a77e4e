package filter

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/0dillon/HNG1/internal/queryir"
)

// Parameter names accepted by ParseParams, in reporting order.
const (
	ParamIsPalindrome      = "is_palindrome"
	ParamMinLength         = "min_length"
	ParamMaxLength         = "max_length"
	ParamWordCount         = "word_count"
	ParamContainsCharacter = "contains_character"
)

// Params lists every recognized filter parameter.
var Params = []string{
	ParamIsPalindrome,
	ParamMinLength,
	ParamMaxLength,
	ParamWordCount,
	ParamContainsCharacter,
}

// ParseParams converts textual filter parameters into Criteria.
//
// A parameter is "supplied" when its key is present, even with an empty
// value. Unknown parameters are ignored. When a key repeats, the first value
// wins.
//
// Returns a *queryir.ArgumentError describing the first bad parameter.
func ParseParams(values url.Values) (queryir.Criteria, error) {
	var c queryir.Criteria

	if raw, ok := first(values, ParamIsPalindrome); ok {
		switch strings.ToLower(raw) {
		case "true":
			c.IsPalindrome = queryir.Bool(true)
		case "false":
			c.IsPalindrome = queryir.Bool(false)
		default:
			return queryir.Criteria{}, queryir.NewArgumentError(ParamIsPalindrome, "Invalid is_palindrome value")
		}
	}

	ints := []struct {
		name string
		dst  **int
	}{
		{ParamMinLength, &c.MinLength},
		{ParamMaxLength, &c.MaxLength},
		{ParamWordCount, &c.WordCount},
	}
	for _, p := range ints {
		raw, ok := first(values, p.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return queryir.Criteria{}, queryir.NewArgumentError(p.name, "Invalid query parameter types")
		}
		*p.dst = queryir.Int(n)
	}

	if raw, ok := first(values, ParamContainsCharacter); ok {
		c.ContainsCharacter = queryir.String(raw)
	}

	if err := queryir.Validate(c); err != nil {
		return queryir.Criteria{}, err
	}
	return c, nil
}

// AppliedFilters returns the raw text of every supplied filter parameter,
// echoed back to clients as "filters_applied".
func AppliedFilters(values url.Values) map[string]string {
	applied := make(map[string]string)
	for _, name := range Params {
		if raw, ok := first(values, name); ok {
			applied[name] = raw
		}
	}
	return applied
}

func first(values url.Values, key string) (string, bool) {
	vs, ok := values[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}
