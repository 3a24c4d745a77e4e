package store

import (
	"context"
	"fmt"

	"github.com/0dillon/HNG1/internal/ir"
	"github.com/0dillon/HNG1/internal/querysql"
)

// Create inserts rec unless a record with the same ID exists.
// Returns the stored record and whether a new row was inserted.
//
// Uses ON CONFLICT(id) DO NOTHING for atomic insert-if-absent. On conflict
// the existing record is returned with inserted=false; nothing is updated.
func (s *Store) Create(ctx context.Context, rec ir.StringRecord) (stored ir.StringRecord, inserted bool, err error) {
	freqJSON, err := marshalFrequencies(rec.Properties.CharacterFrequencyMap)
	if err != nil {
		return ir.StringRecord{}, false, fmt.Errorf("create: %w", err)
	}

	// Use a transaction to ensure atomicity of insert-or-select
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ir.StringRecord{}, false, fmt.Errorf("create: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO strings
		(id, value, length, is_palindrome, unique_characters, word_count, character_frequency_map, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.ID,
		rec.Value,
		rec.Properties.Length,
		rec.Properties.IsPalindrome,
		rec.Properties.UniqueCharacters,
		rec.Properties.WordCount,
		freqJSON,
		rec.CreatedAt,
	)
	if err != nil {
		return ir.StringRecord{}, false, fmt.Errorf("create: insert: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return ir.StringRecord{}, false, fmt.Errorf("create: rows affected: %w", err)
	}

	if rowsAffected > 0 {
		stored, inserted = rec, true
	} else {
		// Conflict - row already exists, fetch it
		row := tx.QueryRowContext(ctx,
			"SELECT "+querysql.Columns+" FROM strings WHERE id = ?", rec.ID)
		stored, err = scanRecord(row)
		if err != nil {
			return ir.StringRecord{}, false, fmt.Errorf("create: select existing: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return ir.StringRecord{}, false, fmt.Errorf("create: commit: %w", err)
	}

	return stored, inserted, nil
}

// Delete removes the record with the given id.
// Returns ErrNotFound if no row matched.
func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM strings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete: rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
