package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/0dillon/HNG1/internal/ir"
	"github.com/0dillon/HNG1/internal/queryir"
	"github.com/0dillon/HNG1/internal/querysql"
)

// Get retrieves a single record by id.
// Returns ErrNotFound if no record has that id.
func (s *Store) Get(ctx context.Context, id string) (ir.StringRecord, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+querysql.Columns+" FROM strings WHERE id = ?", id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.StringRecord{}, ErrNotFound
	}
	if err != nil {
		return ir.StringRecord{}, fmt.Errorf("get: %w", err)
	}
	return rec, nil
}

// List returns every record in insertion order.
// Returns an empty slice (not nil) when the store is empty.
func (s *Store) List(ctx context.Context) ([]ir.StringRecord, error) {
	return s.Query(ctx, nil)
}

// Query returns the records matching pred, in insertion order.
// The predicate is compiled to SQL and evaluated inside SQLite.
func (s *Store) Query(ctx context.Context, pred queryir.Predicate) ([]ir.StringRecord, error) {
	query, params, err := s.compiler.Compile(pred)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	records := []ir.StringRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return records, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM strings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}
