package sqlite

import (
	"context"
	"strings"

	"github.com/MrSnakeDoc/seeyoulater/internal/domain"
	"github.com/MrSnakeDoc/seeyoulater/internal/logger"
)

// ListTags counts bookmarks per tag. Tags without any bookmark are not
// listed. The primary key is the count when sortByCount is set, the name
// otherwise; reverse flips it. Ties are always broken by name ascending.
func (s *Store) ListTags(ctx context.Context, sortByCount, reverse bool) ([]domain.TagCount, error) {
	key := "t.name"
	if sortByCount {
		key = "count"
	}
	dir := "ASC"
	if reverse {
		dir = "DESC"
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT t.name, COUNT(bt.bookmark_id) AS count
		FROM tag t
		JOIN bookmark_tag bt ON bt.tag_name = t.name
		GROUP BY t.name
		ORDER BY `+key+` `+dir+`, t.name ASC`)
	if err != nil {
		return nil, domain.NewStorageError("list tags", err)
	}
	defer rows.Close()

	tags := []domain.TagCount{}
	for rows.Next() {
		var tc domain.TagCount
		if err := rows.Scan(&tc.Name, &tc.Count); err != nil {
			return nil, domain.NewStorageError("list tags: scan", err)
		}
		tags = append(tags, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("list tags", err)
	}
	return tags, nil
}

// RenameTag moves every association of tag from onto tag to, creating to
// if needed, and returns the number of associations repointed.
//
// A bookmark that already holds both tags keeps a single association to
// to; its from association is dropped instead of violating uniqueness.
// The from tag itself is kept.
func (s *Store) RenameTag(ctx context.Context, from, to string) (int64, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" || to == "" {
		return 0, domain.InvalidArgument("both tag names are required")
	}
	if from == to {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, domain.NewStorageError("rename tag: begin", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO tag (name) VALUES (?)`, to); err != nil {
		return 0, domain.NewStorageError("rename tag: create "+to, err)
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE OR IGNORE bookmark_tag SET tag_name = ? WHERE tag_name = ?`, to, from)
	if err != nil {
		return 0, domain.NewStorageError("rename tag: repoint", err)
	}
	updated, err := res.RowsAffected()
	if err != nil {
		return 0, domain.NewStorageError("rename tag: repoint", err)
	}
	// Whatever is left conflicted with an existing association to "to".
	dropped, err := tx.ExecContext(ctx, `DELETE FROM bookmark_tag WHERE tag_name = ?`, from)
	if err != nil {
		return 0, domain.NewStorageError("rename tag: drop duplicates", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, domain.NewStorageError("rename tag: commit", err)
	}

	if n, _ := dropped.RowsAffected(); n > 0 {
		s.log.Debug("rename tag merged duplicate associations",
			logger.String("from", from),
			logger.String("to", to),
			logger.Int64("merged", n))
	}
	return updated, nil
}

// PruneTags deletes tags no bookmark refers to anymore, such as the old
// name left behind by RenameTag, and returns how many were removed.
func (s *Store) PruneTags(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM tag
		WHERE NOT EXISTS (SELECT 1 FROM bookmark_tag bt WHERE bt.tag_name = tag.name)`)
	if err != nil {
		return 0, domain.NewStorageError("prune tags", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, domain.NewStorageError("prune tags", err)
	}
	return n, nil
}
