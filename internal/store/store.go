// Package store handles SQLite persistence for the synonym cache.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/synapse-edit/synapse/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for cached synonym lookups.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS synonym_cache (
			word TEXT NOT NULL,
			lang TEXT NOT NULL,
			position INTEGER NOT NULL,
			synonym TEXT NOT NULL,
			context TEXT NOT NULL,
			source TEXT NOT NULL,
			fetched_at TEXT NOT NULL,
			PRIMARY KEY (word, lang, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_synonym_cache_fetched_at ON synonym_cache(fetched_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Put replaces the cached candidate list for a word. An empty list is cached
// too, so repeated lookups of a fruitless word stay local until the TTL runs out.
func (s *Store) Put(ctx context.Context, word, lang string, synonyms []model.Synonym) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM synonym_cache WHERE word = ? AND lang = ?`, word, lang); err != nil {
		return err
	}

	fetchedAt := time.Now().Format(time.RFC3339Nano)
	if len(synonyms) == 0 {
		// Position -1 marks a cached empty result.
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO synonym_cache (word, lang, position, synonym, context, source, fetched_at)
			 VALUES (?, ?, -1, '', '', '', ?)`, word, lang, fetchedAt); err != nil {
			return err
		}
		return tx.Commit()
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO synonym_cache (word, lang, position, synonym, context, source, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for i, syn := range synonyms {
		if _, err = stmt.ExecContext(ctx, word, lang, i, syn.Word, syn.Context, syn.Source, fetchedAt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Get returns the cached candidate list for a word. The second return value is
// false on a miss or when the entry is older than the TTL.
func (s *Store) Get(ctx context.Context, word, lang string, ttl time.Duration) ([]model.Synonym, bool, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT position, synonym, context, source, fetched_at
		 FROM synonym_cache
		 WHERE word = ? AND lang = ?
		 ORDER BY position ASC`, word, lang)
	if err != nil {
		return nil, false, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var synonyms []model.Synonym
	found := false
	for rows.Next() {
		var position int
		var syn model.Synonym
		var fetchedAt string
		if err := rows.Scan(&position, &syn.Word, &syn.Context, &syn.Source, &fetchedAt); err != nil {
			return nil, false, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, fetchedAt)
		if err != nil {
			return nil, false, err
		}
		if time.Since(parsed) > ttl {
			return nil, false, nil
		}
		found = true
		if position >= 0 {
			synonyms = append(synonyms, syn)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}
	return synonyms, true, nil
}

// Prune removes cache entries older than the TTL.
func (s *Store) Prune(ctx context.Context, ttl time.Duration) error {
	cutoff := time.Now().Add(-ttl).Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM synonym_cache WHERE fetched_at < ?`, cutoff)
	return err
}
