package main

import (
	"context"
	"io"

	"github.com/MrSnakeDoc/seeyoulater/internal/app"
	"github.com/MrSnakeDoc/seeyoulater/internal/command"
	"github.com/MrSnakeDoc/seeyoulater/internal/config"
	"github.com/MrSnakeDoc/seeyoulater/internal/logger"
	"github.com/MrSnakeDoc/seeyoulater/internal/metadata"
	"github.com/MrSnakeDoc/seeyoulater/internal/utils"
)

// session is one configured backend for the duration of a command.
type session struct {
	command.Commands
	log     logger.Logger
	closers []io.Closer
}

// openSession loads the configuration and opens the backend it selects.
// A local backend fetches page metadata itself; a remote one leaves that
// to the server.
func openSession(ctx context.Context, opts *globalOptions) (*session, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, &configError{err: err}
	}
	log := app.NewLogger(cfg)

	s := &session{log: log}
	var fetcher metadata.Fetcher
	if cfg.Remote == nil {
		f := app.NewFetcher(ctx, cfg, log)
		s.closers = append(s.closers, f)
		fetcher = f
	}

	cmds, err := command.New(ctx, cfg, log, fetcher)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.Commands = cmds
	return s, nil
}

// Close releases the backend, then the metadata cache.
func (s *session) Close() {
	if s.Commands != nil {
		utils.CloseLogged(s.Commands, "backend", s.log)
	}
	for _, c := range s.closers {
		utils.CloseLogged(c, "metadata cache", s.log)
	}
	_ = s.log.Sync()
}
