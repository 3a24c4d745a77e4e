// Package nlquery translates free-text queries into filter criteria.
//
// The translator is a fixed list of pattern rules, not a language model.
// Rules run in order against the lowercased query; every rule may fire and a
// later rule overwrites a field set by an earlier one. The order is part of
// the contract: "a single 3-word phrase" yields word_count=3 because the
// digit rule runs after the "single ... word" rule.
package nlquery

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/0dillon/HNG1/internal/queryir"
)

// Interpretation is the outcome of translating a query.
type Interpretation struct {
	Original      string           `json:"original"`
	ParsedFilters queryir.Criteria `json:"parsed_filters"`
}

var (
	singleWordPattern  = regexp.MustCompile(`\b(single|one)\b.*\bword\b`)
	countedWordPattern = regexp.MustCompile(`(\d+)\s*-?\s*word`)
	longerThanPattern  = regexp.MustCompile(`longer than\s+(\d+)`)
	containsPattern    = regexp.MustCompile(`contain(?:s|ing)?\s+the\s+letter\s+([a-z])`)
	containingPattern  = regexp.MustCompile(`containing\s+the\s+letter\s+([a-z])`)
)

// rule inspects the lowercased query and updates the criteria in place.
type rule func(q string, c *queryir.Criteria)

// rules is evaluated top to bottom. Do not reorder.
var rules = []rule{
	singleWordRule,
	countedWordRule,
	palindromeRule,
	longerThanRule,
	containsLetterRule,
	containingLetterRule,
}

// Translate converts query into filter criteria.
//
// Returns a *queryir.ArgumentError if query is empty. A query that no rule
// recognizes translates to empty criteria, which match every record.
func Translate(query string) (Interpretation, error) {
	if query == "" {
		return Interpretation{}, queryir.NewArgumentError("query", "Missing query parameter")
	}

	q := strings.ToLower(query)
	var c queryir.Criteria
	for _, r := range rules {
		r(q, &c)
	}

	return Interpretation{Original: query, ParsedFilters: c}, nil
}

func singleWordRule(q string, c *queryir.Criteria) {
	if singleWordPattern.MatchString(q) {
		c.WordCount = queryir.Int(1)
	}
}

func countedWordRule(q string, c *queryir.Criteria) {
	if n, ok := submatchInt(countedWordPattern, q); ok {
		c.WordCount = queryir.Int(n)
	}
}

func palindromeRule(q string, c *queryir.Criteria) {
	if strings.Contains(q, "palind") {
		c.IsPalindrome = queryir.Bool(true)
	}
}

func longerThanRule(q string, c *queryir.Criteria) {
	if n, ok := submatchInt(longerThanPattern, q); ok && n < math.MaxInt {
		c.MinLength = queryir.Int(n + 1)
	}
}

func containsLetterRule(q string, c *queryir.Criteria) {
	if m := containsPattern.FindStringSubmatch(q); m != nil {
		c.ContainsCharacter = queryir.String(m[1])
	}
}

// containingLetterRule only fills contains_character when the broader
// containsLetterRule left it unset, so the first match wins.
func containingLetterRule(q string, c *queryir.Criteria) {
	if c.ContainsCharacter != nil {
		return
	}
	if m := containingPattern.FindStringSubmatch(q); m != nil {
		c.ContainsCharacter = queryir.String(m[1])
	}
}

// submatchInt returns the first capture group of re as an int.
// Reports false when there is no match or the number overflows int.
func submatchInt(re *regexp.Regexp, q string) (int, bool) {
	m := re.FindStringSubmatch(q)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
