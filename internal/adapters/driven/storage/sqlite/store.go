package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/domain"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/ports/driven"
)

// Ensure Store implements the interfaces.
var (
	_ driven.TrendStore   = (*Store)(nil)
	_ driven.SessionStore = (*Store)(nil)
)

// Store is a SQLite-backed implementation of the trend and session
// stores.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.careeragent/data/metadata.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".careeragent", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "metadata.db")

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

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
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
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
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

// ==================== Trend Store ====================

// LatestSnapshot returns the most recent snapshot for a role.
func (s *Store) LatestSnapshot(ctx context.Context, role string) (*domain.TrendSnapshot, error) {
	key := domain.TopicKey(role)

	var snap domain.TrendSnapshot
	row := s.db.QueryRowContext(ctx, `
		SELECT role_key, job_count, taken_at
		FROM trend_snapshots
		WHERE role_key = ?
		ORDER BY taken_at DESC
		LIMIT 1
	`, key)

	if err := row.Scan(&snap.Role, &snap.JobCount, &snap.TakenAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning snapshot: %w", err)
	}
	return &snap, nil
}

// SaveSnapshot records the job count observed for a role now.
func (s *Store) SaveSnapshot(ctx context.Context, role string, jobCount int) error {
	key := domain.TopicKey(role)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trend_snapshots (role_key, job_count, taken_at)
		VALUES (?, ?, ?)
	`, key, jobCount, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}
	return nil
}

// ==================== Session Store ====================

// LoadSession returns the stored session, or an empty session when
// nothing has been stored yet.
func (s *Store) LoadSession(ctx context.Context) (*domain.SessionMemory, error) {
	var (
		mem        domain.SessionMemory
		uploadedAt sql.NullTime
		jobAt      sql.NullTime
	)
	row := s.db.QueryRowContext(ctx, `
		SELECT resume_text, job_description, uploaded_filename, uploaded_at, job_stored_at
		FROM session_memory
		WHERE id = 1
	`)
	if err := row.Scan(&mem.ResumeText, &mem.JobDescription, &mem.UploadedFilename, &uploadedAt, &jobAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.SessionMemory{}, nil
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	if uploadedAt.Valid {
		mem.UploadedAt = uploadedAt.Time
	}
	if jobAt.Valid {
		mem.JobStoredAt = jobAt.Time
	}
	return &mem, nil
}

// SaveSession stores or replaces the session.
func (s *Store) SaveSession(ctx context.Context, mem *domain.SessionMemory) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session_memory (id, resume_text, job_description, uploaded_filename, uploaded_at, job_stored_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			resume_text = excluded.resume_text,
			job_description = excluded.job_description,
			uploaded_filename = excluded.uploaded_filename,
			uploaded_at = excluded.uploaded_at,
			job_stored_at = excluded.job_stored_at
	`, mem.ResumeText, mem.JobDescription, mem.UploadedFilename,
		nullTime(mem.UploadedAt), nullTime(mem.JobStoredAt))
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// ClearSession removes all stored session data.
func (s *Store) ClearSession(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session_memory WHERE id = 1`); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}
