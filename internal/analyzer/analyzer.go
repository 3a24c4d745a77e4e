// Package analyzer computes the derived properties of a string.
//
// Analyze is a pure function: no state, no side effects, same output for the
// same input. Characters are Unicode code points throughout, so "é" counts as
// one character whether or not the input is otherwise ASCII.
package analyzer

import (
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/0dillon/HNG1/internal/ir"
)

// Analyze computes every property of value.
//
// Edge cases:
//   - "" is a palindrome with zero length, characters and words
//   - Palindrome comparison lowercases with full Unicode case mapping and keeps
//     whitespace and punctuation ("Race car" is not a palindrome)
//   - Words are maximal runs of non-whitespace; runs of whitespace collapse
//   - Frequencies are case-sensitive and include whitespace and punctuation
func Analyze(value string) ir.Properties {
	freq := make(map[string]int)
	for _, r := range value {
		freq[string(r)]++
	}

	return ir.Properties{
		Length:                utf8.RuneCountInString(value),
		IsPalindrome:          IsPalindrome(value),
		UniqueCharacters:      len(freq),
		WordCount:             len(strings.Fields(value)),
		SHA256Hash:            ir.Fingerprint(value),
		CharacterFrequencyMap: freq,
	}
}

// NewRecord analyzes value and stamps it with now.
// The record's ID is the fingerprint of value.
func NewRecord(value string, now time.Time) ir.StringRecord {
	props := Analyze(value)
	return ir.StringRecord{
		ID:         props.SHA256Hash,
		Value:      value,
		Properties: props,
		CreatedAt:  ir.FormatTimestamp(now),
	}
}

// IsPalindrome reports whether the lowercase form of s reads the same reversed.
func IsPalindrome(s string) bool {
	runes := []rune(Lower(s))
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		if runes[i] != runes[j] {
			return false
		}
	}
	return true
}

// Lower applies full Unicode lowercase mapping. Unlike strings.ToLower this
// handles mappings that change the number of code points (e.g. U+0130).
func Lower(s string) string {
	// cases.Caser is stateful; a fresh one per call keeps Lower goroutine-safe.
	return cases.Lower(language.Und).String(s)
}
