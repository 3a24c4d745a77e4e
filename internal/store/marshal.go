package store

import (
	"encoding/json"
	"fmt"

	"github.com/0dillon/HNG1/internal/ir"
)

// marshalFrequencies converts a frequency map to JSON TEXT for storage.
// json.Marshal sorts map keys, so equal maps always produce equal text.
func marshalFrequencies(freq map[string]int) (string, error) {
	if freq == nil {
		return "{}", nil
	}
	data, err := json.Marshal(freq)
	if err != nil {
		return "", fmt.Errorf("marshal character frequencies: %w", err)
	}
	return string(data), nil
}

// unmarshalFrequencies parses JSON TEXT back to a frequency map.
// Always returns a non-nil map so records serialize as {} rather than null.
func unmarshalFrequencies(data string) (map[string]int, error) {
	freq := map[string]int{}
	if data == "" || data == "{}" {
		return freq, nil
	}
	if err := json.Unmarshal([]byte(data), &freq); err != nil {
		return nil, fmt.Errorf("unmarshal character frequencies: %w", err)
	}
	return freq, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord reads one row selected with querysql.Columns.
func scanRecord(row rowScanner) (ir.StringRecord, error) {
	var (
		rec      ir.StringRecord
		freqJSON string
	)
	err := row.Scan(
		&rec.ID,
		&rec.Value,
		&rec.Properties.Length,
		&rec.Properties.IsPalindrome,
		&rec.Properties.UniqueCharacters,
		&rec.Properties.WordCount,
		&freqJSON,
		&rec.CreatedAt,
	)
	if err != nil {
		return ir.StringRecord{}, err
	}

	freq, err := unmarshalFrequencies(freqJSON)
	if err != nil {
		return ir.StringRecord{}, err
	}
	rec.Properties.CharacterFrequencyMap = freq
	rec.Properties.SHA256Hash = rec.ID

	return rec, nil
}
