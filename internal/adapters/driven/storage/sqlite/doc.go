// Package sqlite provides a SQLite-backed implementation of driven.CorpusStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Sentences are stored one row per sentence with tokens joined by single spaces;
// tokens never contain whitespace.
//
// # Data Location
//
// By default, the database is stored at ~/.wordspace/data/corpus.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
