// Package command is the single contract the CLI and the server talk to.
// The same operations run either against the local SQLite file or against
// a remote seeyoulater server.
package command

import (
	"context"

	"github.com/MrSnakeDoc/seeyoulater/internal/config"
	"github.com/MrSnakeDoc/seeyoulater/internal/domain"
	"github.com/MrSnakeDoc/seeyoulater/internal/logger"
	"github.com/MrSnakeDoc/seeyoulater/internal/metadata"
	"github.com/MrSnakeDoc/seeyoulater/internal/store/sqlite"
)

// Commands is implemented by every backend. Callers pick one at startup
// and never branch on which one they got.
type Commands interface {
	// Add stores a bookmark unless its URL is already known, in which case
	// the existing bookmark comes back with Created == false.
	Add(ctx context.Context, req domain.AddRequest) (*domain.AddResult, error)

	// Find returns bookmarks matching q, each with all of its tags.
	Find(ctx context.Context, q domain.SearchQuery) ([]domain.Bookmark, error)

	// Tags lists tags in use with their bookmark counts.
	Tags(ctx context.Context, q domain.TagsQuery) ([]domain.TagCount, error)

	// RenameTag moves every association of from onto to.
	RenameTag(ctx context.Context, from, to string) (int64, error)

	// Delete removes the bookmarks matching q and reports how many.
	Delete(ctx context.Context, q domain.SearchQuery) (int64, error)

	Close() error
}

// New returns the backend selected by cfg: remote when a remote section is
// configured, the local database otherwise. fetcher may be nil.
func New(ctx context.Context, cfg *config.Config, log logger.Logger, fetcher metadata.Fetcher) (Commands, error) {
	if cfg.Remote != nil {
		log.Debug("using remote backend", logger.String("url", cfg.Remote.URL))
		return NewRemote(*cfg.Remote, cfg.Timeout, log)
	}

	if err := cfg.EnsureDatabaseDir(); err != nil {
		return nil, domain.NewStorageError("create database dir", err)
	}
	store, err := sqlite.Open(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}
	log.Debug("using local backend", logger.String("database", cfg.Database))
	return NewLocal(store, fetcher, log), nil
}
