package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/pagelift/pagelift-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/pagelift/pagelift-cli/internal/core/domain"
	"github.com/pagelift/pagelift-cli/internal/core/ports/driven"
)

// Store is a SQLite-based launch history store.
type Store struct {
	db   *sql.DB
	path string
}

var _ driven.HistoryStore = (*Store)(nil)

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.pagelift/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".pagelift", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
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

// Record stores one launch record.
func (s *Store) Record(ctx context.Context, record domain.LaunchRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO launches (id, project, site, domain, result, message, bundle_hash, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			result = excluded.result,
			message = excluded.message,
			bundle_hash = excluded.bundle_hash,
			ended_at = excluded.ended_at
	`, record.ID, record.Project, record.Site, record.Domain, string(record.Result),
		record.Message, record.BundleHash, record.StartedAt.UTC(), record.EndedAt.UTC())

	if err != nil {
		return fmt.Errorf("saving launch record: %w", err)
	}
	return nil
}

// List returns the most recent launch records, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]domain.LaunchRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project, site, domain, result, message, bundle_hash, started_at, ended_at
		FROM launches
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying launches: %w", err)
	}
	defer rows.Close()

	var records []domain.LaunchRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var rec domain.LaunchRecord
		var result string
		var startedAt, endedAt sql.NullTime
		if err := rows.Scan(&rec.ID, &rec.Project, &rec.Site, &rec.Domain, &result,
			&rec.Message, &rec.BundleHash, &startedAt, &endedAt); err != nil {
			return nil, fmt.Errorf("scanning launch record: %w", err)
		}

		rec.Result = domain.ResultKind(result)
		if startedAt.Valid {
			rec.StartedAt = startedAt.Time
		}
		if endedAt.Valid {
			rec.EndedAt = endedAt.Time
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating launch records: %w", err)
	}

	return records, nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
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
		// Extract version number (e.g., "001_launches.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}
