package app

import (
	"context"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/seeyoulater/internal/config"
	"github.com/MrSnakeDoc/seeyoulater/internal/logger"
	"github.com/MrSnakeDoc/seeyoulater/internal/metadata"
	"github.com/MrSnakeDoc/seeyoulater/internal/redis"
	redisstore "github.com/MrSnakeDoc/seeyoulater/internal/store/redis"
)

// Fetcher is the page metadata lookup used on add, with its optional cache.
type Fetcher struct {
	metadata.Fetcher
	cache  *redisstore.Store // nil when caching is disabled
	client *goredis.Client
}

// NewFetcher builds the metadata fetcher cfg asks for. Lookup disabled
// yields metadata.Nop. A configured but unreachable Redis is logged and
// the fetcher runs uncached.
func NewFetcher(ctx context.Context, cfg *config.Config, log logger.Logger) *Fetcher {
	if !cfg.FetchMetadata {
		return &Fetcher{Fetcher: metadata.Nop}
	}
	f := &Fetcher{}

	var cache metadata.Cache
	client, err := redis.Connect(ctx, cfg.Redis, log)
	switch {
	case err != nil:
		log.Warn("metadata cache disabled", logger.Error(err))
	case client != nil:
		f.client = client
		f.cache = redisstore.NewStore(client, cfg.Redis.TTL)
		cache = f.cache
	}

	f.Fetcher = metadata.NewCachedFetcher(metadata.NewHTTPFetcher(cfg.Timeout), cache, log)
	return f
}

// Cache returns the Redis store, or nil.
func (f *Fetcher) Cache() *redisstore.Store { return f.cache }

// Close releases the Redis connection, if any.
func (f *Fetcher) Close() error {
	if f.client == nil {
		return nil
	}
	return f.client.Close()
}
