package sqlite

import (
	"strings"

	"github.com/MrSnakeDoc/seeyoulater/internal/domain"
)

// queryBuilder assembles a WHERE clause from optional predicates. User
// input only ever travels through args, never through the query text.
type queryBuilder struct {
	where []string
	args  []any
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{where: []string{"1 = 1"}}
}

func (b *queryBuilder) and(clause string, args ...any) {
	b.where = append(b.where, clause)
	b.args = append(b.args, args...)
}

func (b *queryBuilder) whereClause() string {
	return " WHERE " + strings.Join(b.where, " AND ")
}

// placeholders returns "?, ?, ?" for n values.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// likePattern turns a free-text query into a substring LIKE pattern,
// escaping LIKE wildcards so they match literally.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}

// searchPredicate adds the free-text and tag filters of q to b. Bookmark
// columns are referenced through the alias "b".
func searchPredicate(b *queryBuilder, q domain.SearchQuery) {
	if q.Query != nil {
		p := likePattern(*q.Query)
		b.and(`(b.url LIKE ? ESCAPE '\' OR b.title LIKE ? ESCAPE '\' OR b.description LIKE ? ESCAPE '\')`, p, p, p)
	}

	// Duplicate names collapse here so the ALL count compares against the
	// size of the tag set, not of the request.
	tags := domain.NormalizeTags(q.Tags)
	if len(tags) == 0 {
		return
	}

	args := make([]any, 0, len(tags)+1)
	for _, t := range tags {
		args = append(args, t)
	}

	switch q.Match {
	case domain.MatchAll:
		args = append(args, len(tags))
		b.and(`b.id IN (
			SELECT bookmark_id FROM bookmark_tag
			WHERE tag_name IN (`+placeholders(len(tags))+`)
			GROUP BY bookmark_id
			HAVING COUNT(DISTINCT tag_name) = ?)`, args...)
	default:
		b.and(`b.id IN (
			SELECT bookmark_id FROM bookmark_tag
			WHERE tag_name IN (`+placeholders(len(tags))+`))`, args...)
	}
}
