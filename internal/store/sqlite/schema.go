package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/seeyoulater/internal/domain"
	"github.com/MrSnakeDoc/seeyoulater/internal/logger"
)

const metaVersionKey = "database_version"

// initialSchema is version 0 of the database.
const initialSchema = `
	CREATE TABLE IF NOT EXISTS bookmark (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		url         TEXT NOT NULL UNIQUE,
		title       TEXT,
		description TEXT,
		created_at  INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tag (
		name TEXT PRIMARY KEY
	);

	-- One row per (bookmark, tag); the pair is a hard uniqueness constraint.
	CREATE TABLE IF NOT EXISTS bookmark_tag (
		bookmark_id INTEGER NOT NULL REFERENCES bookmark (id),
		tag_name    TEXT    NOT NULL REFERENCES tag (name),
		PRIMARY KEY (bookmark_id, tag_name)
	);

	CREATE TABLE IF NOT EXISTS syl_meta (
		key   TEXT PRIMARY KEY,
		value TEXT
	);
`

// ensureSchema brings the database to LatestVersion, initializing it first
// when no version is recorded. A current database is left untouched.
func (s *Store) ensureSchema(ctx context.Context) error {
	raw, found, err := s.readVersion(ctx)
	if err != nil {
		return err
	}

	version := 0
	if !found {
		if err := s.initialize(ctx); err != nil {
			return err
		}
	} else {
		version, err = strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return &domain.SchemaError{Version: raw, Err: err}
		}
		if version < 0 {
			return &domain.SchemaError{Version: raw, Err: errors.New("negative version")}
		}
	}

	return s.migrate(ctx, version)
}

// readVersion returns the stored version string and whether it exists.
func (s *Store) readVersion(ctx context.Context) (string, bool, error) {
	var tables int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'syl_meta'`,
	).Scan(&tables)
	if err != nil {
		return "", false, domain.NewStorageError("read schema version", err)
	}
	if tables == 0 {
		return "", false, nil
	}

	var value sql.NullString
	err = s.db.QueryRowContext(ctx,
		`SELECT value FROM syl_meta WHERE key = ?`, metaVersionKey,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, domain.NewStorageError("read schema version", err)
	}
	if !value.Valid {
		return "", true, &domain.SchemaError{Version: "NULL", Err: errors.New("missing value")}
	}
	return value.String, true, nil
}

// initialize creates every table and records version 0 in one transaction.
func (s *Store) initialize(ctx context.Context) error {
	s.log.Info("initializing database", logger.String("path", s.path))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewStorageError("initialize", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, initialSchema); err != nil {
		return domain.NewStorageError("initialize: create tables", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO syl_meta (key, value) VALUES (?, ?)`, metaVersionKey, "0",
	); err != nil {
		return domain.NewStorageError("initialize: write version", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.NewStorageError("initialize: commit", err)
	}
	return nil
}

// migrate applies every pending step after version from. Each step and its
// version bump commit together, so an interrupted run resumes cleanly.
func (s *Store) migrate(ctx context.Context, from int) error {
	steps, err := pendingMigrations(from)
	if err != nil {
		return &domain.SchemaError{Version: strconv.Itoa(from), Err: err}
	}

	for i, m := range steps {
		target := from + i + 1
		s.log.Info("migrating database",
			logger.Int("version", target),
			logger.String("step", m.name))

		if err := s.applyMigration(ctx, m, target); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) applyMigration(ctx context.Context, m migration, target int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewStorageError("migrate", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.sql); err != nil {
		return domain.NewStorageError("migrate to version "+strconv.Itoa(target), err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE syl_meta SET value = ? WHERE key = ?`, strconv.Itoa(target), metaVersionKey,
	); err != nil {
		return domain.NewStorageError("migrate: write version", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.NewStorageError("migrate: commit", err)
	}
	return nil
}

// Version returns the schema version currently recorded in the database.
func (s *Store) Version(ctx context.Context) (int, error) {
	raw, found, err := s.readVersion(ctx)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, &domain.SchemaError{Version: "", Err: errors.New("no version recorded")}
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &domain.SchemaError{Version: raw, Err: err}
	}
	return v, nil
}
