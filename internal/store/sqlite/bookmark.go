package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/MrSnakeDoc/seeyoulater/internal/domain"
	"github.com/MrSnakeDoc/seeyoulater/internal/logger"
)

// tagSeparator joins aggregated tag names; tags may contain commas.
const tagSeparator = "\x1f"

// selectBookmark is the standard projection: one row per bookmark once
// grouped by b.id, with its tags folded into the last column.
const selectBookmark = `
	SELECT b.id, b.url, b.title, b.description, b.created_at,
		group_concat(bt.tag_name, char(31))
	FROM bookmark b
	LEFT JOIN bookmark_tag bt ON bt.bookmark_id = b.id`

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookmark(row rowScanner) (*domain.Bookmark, error) {
	var (
		b           domain.Bookmark
		title, desc sql.NullString
		createdAt   int64
		tags        sql.NullString
	)
	if err := row.Scan(&b.ID, &b.URL, &title, &desc, &createdAt, &tags); err != nil {
		return nil, err
	}
	if title.Valid {
		b.Title = &title.String
	}
	if desc.Valid {
		b.Description = &desc.String
	}
	b.CreatedAt = time.Unix(createdAt, 0).UTC()
	if tags.Valid && tags.String != "" {
		b.Tags = domain.NormalizeTags(strings.Split(tags.String, tagSeparator))
	} else {
		b.Tags = []string{}
	}
	return &b, nil
}

// Add stores a bookmark for url unless one already exists.
//
// An existing bookmark is returned unchanged with Created == false: the
// tags and metadata passed to this call are discarded, never merged.
func (s *Store) Add(ctx context.Context, url string, meta domain.Metadata, tags []string) (*domain.AddResult, error) {
	if strings.TrimSpace(url) == "" {
		return nil, domain.InvalidArgument("url is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, domain.NewStorageError("add: begin", err)
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := scanBookmark(tx.QueryRowContext(ctx,
		selectBookmark+` WHERE b.url = ? GROUP BY b.id`, url))
	switch {
	case err == nil:
		s.log.Debug("bookmark already exists",
			logger.String("url", url),
			logger.Int64("id", existing.ID))
		return &domain.AddResult{Bookmark: *existing, Created: false}, nil
	case !errors.Is(err, sql.ErrNoRows):
		return nil, domain.NewStorageError("add: lookup", err)
	}

	createdAt := time.Unix(time.Now().Unix(), 0).UTC()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookmark (url, title, description, created_at) VALUES (?, ?, ?, ?)`,
		url, meta.Title, meta.Description, createdAt.Unix())
	if err != nil {
		return nil, domain.NewStorageError("add: insert bookmark", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, domain.NewStorageError("add: insert bookmark", err)
	}

	tags = domain.NormalizeTags(tags)
	if err := addTags(ctx, tx, id, tags); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, domain.NewStorageError("add: commit", err)
	}

	s.log.Debug("bookmark added",
		logger.Int64("id", id),
		logger.String("url", url),
		logger.Strings("tags", tags))

	return &domain.AddResult{
		Bookmark: domain.Bookmark{
			ID:          id,
			URL:         url,
			Title:       meta.Title,
			Description: meta.Description,
			CreatedAt:   createdAt,
			Tags:        tags,
		},
		Created: true,
	}, nil
}

// addTags creates missing tags and links them to bookmark id. Both inserts
// tolerate rows that already exist.
func addTags(ctx context.Context, q queryer, id int64, tags []string) error {
	for _, t := range tags {
		if _, err := q.ExecContext(ctx, `INSERT OR IGNORE INTO tag (name) VALUES (?)`, t); err != nil {
			return domain.NewStorageError("add: insert tag "+t, err)
		}
		if _, err := q.ExecContext(ctx,
			`INSERT OR IGNORE INTO bookmark_tag (bookmark_id, tag_name) VALUES (?, ?)`, id, t,
		); err != nil {
			return domain.NewStorageError("add: tag bookmark", err)
		}
	}
	return nil
}

// Search returns the bookmarks matching q. Result order is unspecified.
func (s *Store) Search(ctx context.Context, q domain.SearchQuery) ([]domain.Bookmark, error) {
	b := newQueryBuilder()
	searchPredicate(b, q)

	rows, err := s.db.QueryContext(ctx, selectBookmark+b.whereClause()+` GROUP BY b.id`, b.args...)
	if err != nil {
		return nil, domain.NewStorageError("search", err)
	}
	defer rows.Close()

	bookmarks := []domain.Bookmark{}
	for rows.Next() {
		bm, err := scanBookmark(rows)
		if err != nil {
			return nil, domain.NewStorageError("search: scan", err)
		}
		bookmarks = append(bookmarks, *bm)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("search", err)
	}
	return bookmarks, nil
}

// Delete removes the given bookmarks and their tag associations in one
// transaction and returns how many bookmarks were removed. Tags are kept.
func (s *Store) Delete(ctx context.Context, ids []int64) (int64, error) {
	return s.deleteResolved(ctx, func(context.Context, queryer) ([]int64, error) {
		return ids, nil
	})
}

// DeleteMatching resolves q to bookmark ids and deletes them like Delete.
// Resolving the matches and removing them happen in the same transaction.
func (s *Store) DeleteMatching(ctx context.Context, q domain.SearchQuery) (int64, error) {
	return s.deleteResolved(ctx, func(ctx context.Context, tx queryer) ([]int64, error) {
		return matchingIDs(ctx, tx, q)
	})
}

// deleteResolved runs resolve and deletes the ids it returns, all inside one
// transaction. Any failure rolls the whole delete back.
func (s *Store) deleteResolved(ctx context.Context, resolve func(context.Context, queryer) ([]int64, error)) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, domain.NewStorageError("delete: begin", err)
	}
	defer func() { _ = tx.Rollback() }()

	ids, err := resolve(ctx, tx)
	if err != nil {
		return 0, err
	}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return 0, nil
	}

	n, err := deleteIDs(ctx, tx, ids)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, domain.NewStorageError("delete: commit", err)
	}
	return n, nil
}

func matchingIDs(ctx context.Context, q queryer, sq domain.SearchQuery) ([]int64, error) {
	b := newQueryBuilder()
	searchPredicate(b, sq)
	rows, err := q.QueryContext(ctx, `SELECT b.id FROM bookmark b`+b.whereClause(), b.args...)
	if err != nil {
		return nil, domain.NewStorageError("delete: match", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, domain.NewStorageError("delete: match", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("delete: match", err)
	}
	return ids, nil
}

// deleteIDs removes associations first, then the bookmark rows.
func deleteIDs(ctx context.Context, q queryer, ids []int64) (int64, error) {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	in := "(" + placeholders(len(ids)) + ")"

	if _, err := q.ExecContext(ctx, `DELETE FROM bookmark_tag WHERE bookmark_id IN `+in, args...); err != nil {
		return 0, domain.NewStorageError("delete: associations", err)
	}
	res, err := q.ExecContext(ctx, `DELETE FROM bookmark WHERE id IN `+in, args...)
	if err != nil {
		return 0, domain.NewStorageError("delete: bookmarks", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, domain.NewStorageError("delete: bookmarks", err)
	}
	return n, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
