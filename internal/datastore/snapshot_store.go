// Package datastore persists the most recent content snapshot per watched URL.
package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"webwatch/internal/common"
)

// SnapshotStore wraps the SQL database connection holding the websites table.
type SnapshotStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewSnapshotStore initializes a new store connection and ensures the schema is set up.
func NewSnapshotStore(dataSourceName string, logger zerolog.Logger) (*SnapshotStore, error) {
	storeLogger := logger.With().Str("component", "SnapshotStore").Logger()
	storeLogger.Info().Str("db_path", dataSourceName).Msg("Initializing snapshot database connection")

	dbDir := filepath.Dir(dataSourceName)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		storeLogger.Error().Err(err).Str("directory", dbDir).Msg("Failed to create snapshot database directory")
		return nil, fmt.Errorf("failed to create snapshot database directory %s: %w", dbDir, err)
	}

	dbInstance, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		storeLogger.Error().Err(err).Str("db_path", dataSourceName).Msg("Failed to open snapshot database")
		return nil, fmt.Errorf("sql.Open failed for %s: %w", dataSourceName, err)
	}

	store := &SnapshotStore{
		db:     dbInstance,
		logger: storeLogger,
	}

	if err := store.initSchema(); err != nil {
		_ = store.Close()
		storeLogger.Error().Err(err).Msg("Failed to initialize database schema")
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	storeLogger.Info().Str("path", dataSourceName).Msg("Database initialized and schema verified.")
	return store, nil
}

// Close closes the database connection.
func (s *SnapshotStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// initSchema creates the websites table if it doesn't already exist.
func (s *SnapshotStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS websites (
		url TEXT PRIMARY KEY,
		content TEXT
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return err
	}
	return nil
}

// Load returns the current snapshot for every known URL. An empty or freshly
// created table yields an empty map, not an error. A NULL content column
// reads as the empty string, meaning "never fetched".
func (s *SnapshotStore) Load(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT url, content FROM websites`)
	if err != nil {
		return nil, common.WrapError(err, "failed to query websites table")
	}
	defer rows.Close()

	snapshots := make(map[string]string)
	for rows.Next() {
		var url string
		var content sql.NullString
		if err := rows.Scan(&url, &content); err != nil {
			return nil, common.WrapError(err, "failed to scan website row")
		}
		snapshots[url] = content.String
	}
	if err := rows.Err(); err != nil {
		return nil, common.WrapError(err, "failed to iterate website rows")
	}

	s.logger.Debug().Int("count", len(snapshots)).Msg("Loaded website snapshots")
	return snapshots, nil
}

// Save atomically replaces the entire table contents with the given mapping.
// The delete and inserts run in a single transaction; on any failure the
// transaction is rolled back and the previous contents remain.
func (s *SnapshotStore) Save(ctx context.Context, snapshots map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.WrapError(err, "failed to begin save transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM websites`); err != nil {
		return common.WrapError(err, "failed to clear websites table")
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO websites (url, content) VALUES (?, ?)`)
	if err != nil {
		return common.WrapError(err, "failed to prepare insert statement")
	}
	defer stmt.Close()

	for url, content := range snapshots {
		if _, err := stmt.ExecContext(ctx, url, content); err != nil {
			return common.WrapError(err, fmt.Sprintf("failed to insert snapshot for %s", url))
		}
	}

	if err := tx.Commit(); err != nil {
		return common.WrapError(err, "failed to commit save transaction")
	}

	s.logger.Debug().Int("count", len(snapshots)).Msg("Saved website snapshots")
	return nil
}

// Seed registers watch URLs that are not yet present in the table, with an
// empty content column so the first successful fetch becomes the baseline.
// Existing rows are left untouched.
func (s *SnapshotStore) Seed(ctx context.Context, urls []string) error {
	if len(urls) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.WrapError(err, "failed to begin seed transaction")
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO websites (url, content) VALUES (?, '')`)
	if err != nil {
		return common.WrapError(err, "failed to prepare seed statement")
	}
	defer stmt.Close()

	for _, url := range urls {
		if _, err := stmt.ExecContext(ctx, url); err != nil {
			return common.WrapError(err, fmt.Sprintf("failed to seed URL %s", url))
		}
	}

	if err := tx.Commit(); err != nil {
		return common.WrapError(err, "failed to commit seed transaction")
	}

	s.logger.Info().Int("count", len(urls)).Msg("Seeded watch URLs into snapshot store")
	return nil
}
