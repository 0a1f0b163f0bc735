package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const (
	projectsKey = "projects"
	postsKey    = "posts"
)

// Option configures Open.
type Option func(*Store)

// WithLogger sets the logger used for recoverable storage problems.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store is a SQLite-backed content store. Each collection is kept as one
// JSON document so an entry's position in the list survives edits.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// Open opens or creates the database at path, in WAL mode, and makes sure
// the schema exists.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("content: database path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	s := &Store{db: db, path: path, logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS collections (
  name TEXT PRIMARY KEY,
  items TEXT NOT NULL,
  updated_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS settings (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Projects returns the project collection. List yields the newest project
// first.
func (s *Store) Projects() *Collection[Project] {
	return &Collection[Project]{
		store:       s,
		name:        projectsKey,
		id:          func(p Project) string { return p.ID },
		defaults:    defaultProjects,
		clean:       Project.sanitized,
		newestFirst: true,
	}
}

// Posts returns the blog post collection. List yields posts in the order
// they were added.
func (s *Store) Posts() *Collection[Post] {
	return &Collection[Post]{
		store:    s,
		name:     postsKey,
		id:       func(p Post) string { return p.ID },
		defaults: defaultPosts,
		clean:    Post.sanitized,
	}
}

// GetSetting returns the value stored under key, or ErrNotFound.
func (s *Store) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key=?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading setting %q: %w", key, err)
	}
	return value, nil
}

// PutSetting stores value under key, replacing any previous value.
func (s *Store) PutSetting(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO settings(key, value) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value); err != nil {
		return fmt.Errorf("writing setting %q: %w", key, err)
	}
	return nil
}

func (s *Store) readCollection(ctx context.Context, name string) (string, bool, error) {
	var items string
	err := s.db.QueryRowContext(ctx, `SELECT items FROM collections WHERE name=?`, name).Scan(&items)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", name, err)
	}
	return items, true, nil
}

func (s *Store) writeCollection(ctx context.Context, name, items string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO collections(name, items, updated_at) VALUES(?, ?, ?)
ON CONFLICT(name) DO UPDATE SET items=excluded.items, updated_at=excluded.updated_at`,
		name, items, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func (s *Store) deleteCollection(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM collections WHERE name=?`, name); err != nil {
		return fmt.Errorf("resetting %s: %w", name, err)
	}
	return nil
}
