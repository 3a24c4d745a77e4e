package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/0dillon/HNG1/internal/analyzer"
	"github.com/0dillon/HNG1/internal/ir"
)

// repository is the operation set both backends implement.
type repository interface {
	Create(ctx context.Context, rec ir.StringRecord) (ir.StringRecord, bool, error)
	Get(ctx context.Context, id string) (ir.StringRecord, error)
	List(ctx context.Context) ([]ir.StringRecord, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// createTestStore creates a new in-memory SQLite store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(MemoryDSN)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createFileStore creates a file-backed SQLite store for testing.
func createFileStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

// backends returns a fresh instance of every backend.
func backends(t *testing.T) map[string]repository {
	t.Helper()
	return map[string]repository{
		"memory": NewMemory(),
		"sqlite": createTestStore(t),
	}
}

// testRecord builds a fully analyzed record with a fixed timestamp.
func testRecord(value string) ir.StringRecord {
	return analyzer.NewRecord(value, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
}
