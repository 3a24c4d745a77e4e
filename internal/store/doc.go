// Package store provides content-addressed storage for string records.
//
// Two backends implement the same four operations (Create, Get, List,
// Delete) keyed by fingerprint:
//
//   - Memory: a map guarded by a single RWMutex. The default.
//   - Store: SQLite via mattn/go-sqlite3, opened on an in-memory database
//     unless a file DSN is configured. Supports predicate pushdown (Query).
//
// # Critical Patterns
//
// Atomic insert-if-absent
//   - Create never overwrites. The duplicate check and the insert are one
//     critical section (mutex for Memory, ON CONFLICT DO NOTHING for SQLite),
//     so two concurrent creates of one value cannot both report inserted=true.
//
// Deterministic listing
//   - Both backends list in insertion order (ORDER BY seq for SQLite).
//     Callers must not rely on it; it keeps tests and traces stable.
//
// Records are immutable
//   - There is no update path. Delete + Create is the only way to change
//     what a fingerprint maps to, and Create recomputes nothing: callers pass
//     a fully analyzed record.
package store
