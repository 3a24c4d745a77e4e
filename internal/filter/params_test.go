package filter

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0dillon/HNG1/internal/queryir"
)

func TestParseParams_AllFilters(t *testing.T) {
	values := url.Values{
		"is_palindrome":      {"TRUE"},
		"min_length":         {"5"},
		"max_length":         {"10"},
		"word_count":         {"1"},
		"contains_character": {"a"},
	}

	c, err := ParseParams(values)
	require.NoError(t, err)

	assert.Equal(t, queryir.Criteria{
		IsPalindrome:      queryir.Bool(true),
		MinLength:         queryir.Int(5),
		MaxLength:         queryir.Int(10),
		WordCount:         queryir.Int(1),
		ContainsCharacter: queryir.String("a"),
	}, c)
}

func TestParseParams_NoneSupplied(t *testing.T) {
	c, err := ParseParams(url.Values{"unrelated": {"x"}})
	require.NoError(t, err)

	assert.True(t, c.IsEmpty())
}

func TestParseParams_Errors(t *testing.T) {
	tests := []struct {
		name      string
		values    url.Values
		wantParam string
		wantMsg   string
	}{
		{"bad boolean", url.Values{"is_palindrome": {"yes"}}, ParamIsPalindrome, "Invalid is_palindrome value"},
		{"empty boolean", url.Values{"is_palindrome": {""}}, ParamIsPalindrome, "Invalid is_palindrome value"},
		{"non-numeric min", url.Values{"min_length": {"five"}}, ParamMinLength, "Invalid query parameter types"},
		{"float max", url.Values{"max_length": {"2.5"}}, ParamMaxLength, "Invalid query parameter types"},
		{"non-numeric words", url.Values{"word_count": {"x"}}, ParamWordCount, "Invalid query parameter types"},
		{"two characters", url.Values{"contains_character": {"ab"}}, ParamContainsCharacter, "contains_character must be a single character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseParams(tt.values)

			var argErr *queryir.ArgumentError
			require.True(t, errors.As(err, &argErr), "got %v", err)
			assert.Equal(t, tt.wantParam, argErr.Param)
			assert.Equal(t, tt.wantMsg, argErr.Message)
		})
	}
}

func TestParseParams_FalseIsSupplied(t *testing.T) {
	c, err := ParseParams(url.Values{"is_palindrome": {"False"}})
	require.NoError(t, err)

	require.NotNil(t, c.IsPalindrome)
	assert.False(t, *c.IsPalindrome)
}

func TestAppliedFilters_EchoesRawValues(t *testing.T) {
	values := url.Values{
		"is_palindrome": {"TRUE"},
		"min_length":    {"05"},
		"page":          {"2"},
	}

	assert.Equal(t, map[string]string{
		"is_palindrome": "TRUE",
		"min_length":    "05",
	}, AppliedFilters(values))
}

func TestAppliedFilters_Empty(t *testing.T) {
	applied := AppliedFilters(url.Values{})

	assert.NotNil(t, applied)
	assert.Empty(t, applied)
}
