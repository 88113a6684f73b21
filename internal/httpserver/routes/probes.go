package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/seeyoulater/internal/httpserver/deps"
	"github.com/MrSnakeDoc/seeyoulater/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/seeyoulater/internal/httpserver/mw"
)

func init() { Register(registerProbes) }

// Probes skip Auth; they are limited by the CIDR allow-list instead.
func registerProbes(r chi.Router, d deps.Deps) {
	r.Group(func(r chi.Router) {
		r.Use(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
		r.Get("/healthz", handlers.Healthz(d))
		r.Get("/readyz", handlers.Readyz(d))
	})
}
