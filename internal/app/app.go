// Package app wires the bookmark server process together.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/seeyoulater/internal/command"
	"github.com/MrSnakeDoc/seeyoulater/internal/config"
	"github.com/MrSnakeDoc/seeyoulater/internal/httpserver"
	"github.com/MrSnakeDoc/seeyoulater/internal/httpserver/deps"
	"github.com/MrSnakeDoc/seeyoulater/internal/logger"
	"github.com/MrSnakeDoc/seeyoulater/internal/store/sqlite"
	"github.com/MrSnakeDoc/seeyoulater/internal/utils"
	"github.com/MrSnakeDoc/seeyoulater/internal/version"
)

type App struct {
	cfg      *config.Config
	logger   logger.Logger
	server   *httpserver.Server
	commands command.Commands
	fetcher  *Fetcher
}

// New opens the database and builds the server. The server always uses the
// local database, even when a remote section is configured.
func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	if cfg.Server == nil {
		return nil, errors.New("missing server section (server.username and server.password are required)")
	}

	if err := cfg.EnsureDatabaseDir(); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	store, err := sqlite.Open(ctx, cfg.Database, loggerClient)
	if err != nil {
		return nil, err
	}
	schema, err := store.Version(ctx)
	if err != nil {
		utils.Close(store)
		return nil, err
	}
	loggerClient.Info("database ready",
		logger.String("path", cfg.Database),
		logger.Int("schema_version", schema))

	fetcher := NewFetcher(ctx, cfg, loggerClient)
	commands := command.NewGuarded(command.NewLocal(store, fetcher, loggerClient))

	d := newDeps(cfg, loggerClient, commands, fetcher)

	return &App{
		cfg:      cfg,
		logger:   loggerClient,
		server:   httpserver.New(cfg.Server, loggerClient, d),
		commands: commands,
		fetcher:  fetcher,
	}, nil
}

func newDeps(cfg *config.Config, loggerClient logger.Logger, commands *command.Guarded, fetcher *Fetcher) deps.Deps {
	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		Commands:      commands,
		SchemaVersion: commands.SchemaVersion,
		Username:      cfg.Server.Username,
		Password:      cfg.Server.Password,
		AllowedCIDRS:  cfg.Server.AllowedCIDRS,
		TrustProxy:    cfg.Server.TrustProxy,
		RateBurst:     cfg.Server.RateBurst,
		RatePerMinute: cfg.Server.RatePerMinute,
	}
	if cache := fetcher.Cache(); cache != nil {
		d.MetadataCache = cache
	}
	return d
}

// Run serves until SIGINT/SIGTERM, then shuts down gracefully.
func (a *App) Run() error {
	a.logger.Info("starting seeyoulater server",
		logger.String("version", version.Version),
		logger.String("commit", version.Commit),
		logger.String("built", version.BuildDate),
		logger.String("go", version.GoVersion),
		logger.String("listen", a.cfg.Server.Listen))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutting down gracefully")
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop server: %w", err)
	}

	utils.CloseLogged(a.commands, "database", a.logger)
	utils.CloseLogged(a.fetcher, "redis", a.logger)

	if runErr == nil {
		a.logger.Info("seeyoulater stopped cleanly")
	}
	return runErr
}
