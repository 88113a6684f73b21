package metadata

import (
	"context"

	"github.com/MrSnakeDoc/seeyoulater/internal/domain"
	"github.com/MrSnakeDoc/seeyoulater/internal/logger"
)

// Cache stores previously fetched metadata. The Redis store satisfies it.
type Cache interface {
	GetMetadata(ctx context.Context, url string) (domain.Metadata, bool, error)
	SaveMetadata(ctx context.Context, url string, meta domain.Metadata) error
}

// CachedFetcher consults a cache before fetching. Cache failures are
// logged and otherwise ignored.
type CachedFetcher struct {
	next  Fetcher
	cache Cache
	log   logger.Logger
}

// NewCachedFetcher wraps next with cache. A nil cache returns next as is.
func NewCachedFetcher(next Fetcher, cache Cache, log logger.Logger) Fetcher {
	if cache == nil {
		return next
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &CachedFetcher{next: next, cache: cache, log: log}
}

// Fetch implements Fetcher.
func (f *CachedFetcher) Fetch(ctx context.Context, url string) (domain.Metadata, error) {
	meta, ok, err := f.cache.GetMetadata(ctx, url)
	if err != nil {
		f.log.Warn("metadata cache read failed",
			logger.String("url", url),
			logger.Error(err))
	} else if ok {
		f.log.Debug("metadata cache hit", logger.String("url", url))
		return meta, nil
	}

	meta, err = f.next.Fetch(ctx, url)
	if err != nil {
		return meta, err
	}

	if err := f.cache.SaveMetadata(ctx, url, meta); err != nil {
		f.log.Warn("metadata cache write failed",
			logger.String("url", url),
			logger.Error(err))
	}
	return meta, nil
}
