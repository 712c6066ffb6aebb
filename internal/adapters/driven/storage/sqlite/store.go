package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/wordspace/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/wordspace/internal/core/domain"
	"github.com/custodia-labs/wordspace/internal/core/ports/driven"
)

// DatabaseFile is the corpus database name inside the data directory.
const DatabaseFile = "corpus.db"

// Ensure Store implements the interface.
var _ driven.CorpusStore = (*Store)(nil)

// Store is a SQLite-backed corpus store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.wordspace/data/corpus.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".wordspace", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// WAL for concurrent readers; foreign keys set per connection via the DSN.
	db, err := sql.Open("sqlite",
		dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_corpus.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// apply runs one migration and records its version atomically.
func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveDocument stores or replaces a document and its sentences. A replaced
// document keeps its original ingestion position.
func (s *Store) SaveDocument(ctx context.Context, doc *domain.CorpusDocument, sentences []domain.Sentence) error {
	if doc == nil || doc.ID == "" {
		return fmt.Errorf("%w: document id is required", domain.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (id, name, path, sentence_count, token_count, ingested_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			path = excluded.path,
			sentence_count = excluded.sentence_count,
			token_count = excluded.token_count,
			ingested_at = excluded.ingested_at
	`, doc.ID, doc.Name, doc.Path, doc.Sentences, doc.Tokens, doc.IngestedAt)
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM sentences WHERE document_id = ?", doc.ID); err != nil {
		return fmt.Errorf("clearing sentences: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO sentences (document_id, position, tokens) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, sentence := range sentences {
		if _, err := stmt.ExecContext(ctx, doc.ID, i, strings.Join(sentence, " ")); err != nil {
			return fmt.Errorf("saving sentence %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *Store) GetDocument(ctx context.Context, id string) (*domain.CorpusDocument, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, path, sentence_count, token_count, ingested_at
		FROM documents WHERE id = ?
	`, id)

	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return doc, err
}

// ListDocuments returns documents in ingestion order.
func (s *Store) ListDocuments(ctx context.Context) ([]domain.CorpusDocument, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, path, sentence_count, token_count, ingested_at
		FROM documents ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.CorpusDocument //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// DeleteDocument removes a document; its sentences cascade.
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// Sentences returns every sentence in document then position order.
func (s *Store) Sentences(ctx context.Context) ([]domain.Sentence, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.tokens
		FROM sentences s JOIN documents d ON d.id = s.document_id
		ORDER BY d.seq, s.position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying sentences: %w", err)
	}
	defer rows.Close()

	var out []domain.Sentence //nolint:prealloc // size unknown from query
	for rows.Next() {
		var tokens string
		if err := rows.Scan(&tokens); err != nil {
			return nil, fmt.Errorf("scanning sentence: %w", err)
		}
		out = append(out, strings.Fields(tokens))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sentences: %w", err)
	}
	return out, nil
}

// Stats summarises the stored corpus.
func (s *Store) Stats(ctx context.Context) (domain.CorpusStats, error) {
	var stats domain.CorpusStats
	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(sentence_count), 0), COALESCE(SUM(token_count), 0)
		FROM documents
	`)
	if err := row.Scan(&stats.Documents, &stats.Sentences, &stats.Tokens); err != nil {
		return stats, fmt.Errorf("querying stats: %w", err)
	}
	return stats, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*domain.CorpusDocument, error) {
	var doc domain.CorpusDocument
	if err := row.Scan(&doc.ID, &doc.Name, &doc.Path, &doc.Sentences, &doc.Tokens, &doc.IngestedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return &doc, nil
}
