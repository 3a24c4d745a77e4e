package ir

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFieldNaming(t *testing.T) {
	rec := StringRecord{
		ID:    Fingerprint("a"),
		Value: "a",
		Properties: Properties{
			Length:                1,
			IsPalindrome:          true,
			UniqueCharacters:      1,
			WordCount:             1,
			SHA256Hash:            Fingerprint("a"),
			CharacterFrequencyMap: map[string]int{"a": 1},
		},
		CreatedAt: "2025-01-02T03:04:05Z",
	}
	data, err := json.Marshal(rec)
	require.NoError(t, err)

	for _, key := range []string{
		`"id"`, `"value"`, `"properties"`, `"created_at"`,
		`"length"`, `"is_palindrome"`, `"unique_characters"`, `"word_count"`,
		`"sha256_hash"`, `"character_frequency_map"`,
	} {
		assert.Contains(t, string(data), key)
	}
	assert.NotContains(t, string(data), `"createdAt"`)
}

func TestFormatTimestamp(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2025, 10, 15, 14, 30, 45, 999_000_000, loc)

	assert.Equal(t, "2025-10-15T12:30:45Z", FormatTimestamp(ts))
}
