// Package httpserver exposes the bookmark commands over HTTP for the
// remote backend and the browser extension.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/seeyoulater/internal/config"
	"github.com/MrSnakeDoc/seeyoulater/internal/httpserver/deps"
	"github.com/MrSnakeDoc/seeyoulater/internal/httpserver/mw"
	"github.com/MrSnakeDoc/seeyoulater/internal/httpserver/routes"
	"github.com/MrSnakeDoc/seeyoulater/internal/logger"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	http    *http.Server
	logger  logger.Logger
	started time.Time
}

// NewHandler builds the router: global middlewares then every registered route.
func NewHandler(cfg *config.ServerConfig, d deps.Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)             // X-Request-ID on each request
	r.Use(middleware.Recoverer)             // never crash the process on panic
	r.Use(mw.Log(d.Logger, cfg.TrustProxy)) // structured access logs
	r.Use(mw.CORS())                        // browser extension support, answers preflight
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	routes.RegisterAll(r, d)
	return r
}

// New builds the HTTP server (router, middlewares, route registration).
func New(cfg *config.ServerConfig, loggerClient logger.Logger, d deps.Deps) *Server {
	s := &http.Server{
		Addr:              cfg.Listen,
		Handler:           NewHandler(cfg, d),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return &Server{
		http:    s,
		logger:  loggerClient,
		started: d.StartTime,
	}
}

// Start runs the HTTP server (blocks until error or shutdown).
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Stop is called.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("HTTP server listening", logger.String("addr", ln.Addr().String()))
	err := s.http.Serve(ln)
	// http.ErrServerClosed is expected on graceful shutdown.
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server with the provided context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down",
		logger.Duration("uptime", time.Since(s.started)))
	return s.http.Shutdown(ctx)
}
