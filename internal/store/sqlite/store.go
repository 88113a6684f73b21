// Package sqlite is the embedded bookmark store: schema versioning,
// bookmark CRUD with dynamic tag-aware search, and the tag index.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/MrSnakeDoc/seeyoulater/internal/domain"
	"github.com/MrSnakeDoc/seeyoulater/internal/logger"
)

// Store is a versioned bookmark database backed by a single SQLite file.
// It is meant for one logical caller at a time; share it behind a lock.
type Store struct {
	db   *sql.DB
	path string
	log  logger.Logger
}

// Open opens or creates the database at path and migrates it to the
// latest schema version. Use ":memory:" for a throwaway database.
//
// An unreadable stored version yields a *domain.SchemaError; callers should
// treat it as fatal.
func Open(ctx context.Context, path string, log logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.NewNop()
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, domain.NewStorageError("open "+path, err)
	}
	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path, log: log}
	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// dsn enables foreign keys for every connection the pool opens.
func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path, sep)
}

// Path returns the file the store was opened from.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
