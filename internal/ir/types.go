package ir

import "time"

// TimestampLayout is the wire format of created_at: UTC, second precision.
const TimestampLayout = "2006-01-02T15:04:05Z"

// StringRecord is a stored string together with its derived properties.
type StringRecord struct {
	ID         string     `json:"id"`
	Value      string     `json:"value"`
	Properties Properties `json:"properties"`
	CreatedAt  string     `json:"created_at"`
}

// Properties are computed once from Value and never edited independently.
type Properties struct {
	Length                int            `json:"length"`
	IsPalindrome          bool           `json:"is_palindrome"`
	UniqueCharacters      int            `json:"unique_characters"`
	WordCount             int            `json:"word_count"`
	SHA256Hash            string         `json:"sha256_hash"`
	CharacterFrequencyMap map[string]int `json:"character_frequency_map"`
}

// FormatTimestamp renders t in TimestampLayout, dropping sub-second precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(TimestampLayout)
}
