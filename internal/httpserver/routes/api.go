package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/seeyoulater/internal/command"
	"github.com/MrSnakeDoc/seeyoulater/internal/httpserver/deps"
	"github.com/MrSnakeDoc/seeyoulater/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/seeyoulater/internal/httpserver/mw"
)

func init() { Register(registerAPI) }

// registerAPI mounts every bookmark operation behind Auth and, when
// configured, the per-IP rate limit.
func registerAPI(r chi.Router, d deps.Deps) {
	r.Group(func(r chi.Router) {
		if d.RateBurst > 0 {
			r.Use(mw.RateLimit(mw.RateLimitConfig{
				Burst:             d.RateBurst,
				RefillPerIPPerMin: d.RatePerMinute,
				MaxEntries:        10_000,
				TrustProxy:        d.TrustProxy,
			}))
		}
		r.Use(mw.Auth(d.Username, d.Password, d.TrustProxy, d.Logger))

		r.Post(command.PathBookmark, handlers.AddBookmark(d))
		// Path used by the browser extension.
		r.Post("/add", handlers.AddBookmark(d))

		r.Get(command.PathSearch, handlers.Search(d))
		r.Delete(command.PathSearch, handlers.DeleteSearch(d))

		r.Get(command.PathTags, handlers.Tags(d))
		r.Patch(command.PathTags, handlers.RenameTag(d))
	})
}
