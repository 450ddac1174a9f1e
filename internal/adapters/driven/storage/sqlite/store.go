package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driven"
	"github.com/rocketfuel/rocketfuel-cli/internal/logger"
)

// DatabaseFile is the database file name within the data directory.
const DatabaseFile = "rocketfuel.db"

// pragmas are applied through the DSN so every pooled connection gets them.
const pragmas = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"

// Store owns the database handle. The per-port stores it hands out share it.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the database under dataDir and brings the
// schema up to date. An empty dataDir means ~/.rocketfuel/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".rocketfuel", "data")
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	path := filepath.Join(dataDir, DatabaseFile)
	db, err := sql.Open("sqlite", path+pragmas)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SessionStore returns the signed-in session store.
func (s *Store) SessionStore() driven.SessionStore {
	return &sessionStore{store: s}
}

// IdentityTokenStore returns the identity provider token cache.
func (s *Store) IdentityTokenStore() driven.IdentityTokenStore {
	return &identityTokenStore{store: s}
}

// SearchHistoryStore returns the search history store.
func (s *Store) SearchHistoryStore() driven.SearchHistoryStore {
	return &searchHistoryStore{store: s}
}

// SchemaVersion returns the highest applied migration, or 0 on a fresh file.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return version, nil
}

func (s *Store) migrate(ctx context.Context) error {
	steps, err := migrations.Load()
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TEXT NOT NULL
		)`); err != nil {
		return fmt.Errorf("creating schema_migrations: %w", err)
	}

	current, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	for _, m := range steps {
		if m.Version <= current {
			continue
		}
		if err := s.apply(ctx, m); err != nil {
			return fmt.Errorf("applying migration %s: %w", m.Name, err)
		}
		logger.Debug("sqlite: applied migration %s", m.Name)
	}
	return nil
}

// apply runs m and records its version in one transaction.
func (s *Store) apply(ctx context.Context, m migrations.Migration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)",
		m.Version, formatTime(time.Now()),
	); err != nil {
		return err
	}
	return tx.Commit()
}

// formatTime stores t as RFC3339 UTC text, or NULL for the zero time.
func formatTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

// scanTime parses a nullable RFC3339 column. Unparseable text reads as zero.
func scanTime(s sql.NullString) time.Time {
	if !s.Valid {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}
