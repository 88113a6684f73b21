package command

import (
	"context"

	"github.com/MrSnakeDoc/seeyoulater/internal/domain"
	"github.com/MrSnakeDoc/seeyoulater/internal/logger"
	"github.com/MrSnakeDoc/seeyoulater/internal/metadata"
	"github.com/MrSnakeDoc/seeyoulater/internal/store/sqlite"
)

// Local runs commands against a SQLite store in this process.
type Local struct {
	store   *sqlite.Store
	fetcher metadata.Fetcher
	log     logger.Logger
}

var _ Commands = (*Local)(nil)

// NewLocal takes ownership of store; Close closes it.
func NewLocal(store *sqlite.Store, fetcher metadata.Fetcher, log logger.Logger) *Local {
	if fetcher == nil {
		fetcher = metadata.Nop
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Local{store: store, fetcher: fetcher, log: log}
}

// Store exposes the underlying database, for health reporting.
func (l *Local) Store() *sqlite.Store { return l.store }

func (l *Local) Add(ctx context.Context, req domain.AddRequest) (*domain.AddResult, error) {
	meta := req.Metadata()
	if meta.IsEmpty() && req.URL != "" {
		meta = l.lookup(ctx, req.URL)
	}
	return l.store.Add(ctx, req.URL, meta, req.Tags)
}

// lookup is best effort: any failure leaves the bookmark without metadata.
func (l *Local) lookup(ctx context.Context, url string) domain.Metadata {
	meta, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		l.log.Debug("metadata fetch failed",
			logger.String("url", url),
			logger.Error(err))
		return domain.Metadata{}
	}
	return meta
}

func (l *Local) Find(ctx context.Context, q domain.SearchQuery) ([]domain.Bookmark, error) {
	return l.store.Search(ctx, q)
}

func (l *Local) Tags(ctx context.Context, q domain.TagsQuery) ([]domain.TagCount, error) {
	return l.store.ListTags(ctx, q.SortByCount, q.Reverse)
}

func (l *Local) RenameTag(ctx context.Context, from, to string) (int64, error) {
	return l.store.RenameTag(ctx, from, to)
}

func (l *Local) Delete(ctx context.Context, q domain.SearchQuery) (int64, error) {
	return l.store.DeleteMatching(ctx, q)
}

// SchemaVersion reports the schema version of the underlying store.
func (l *Local) SchemaVersion(ctx context.Context) (int, error) {
	return l.store.Version(ctx)
}

func (l *Local) Close() error {
	return l.store.Close()
}
