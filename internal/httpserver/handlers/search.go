package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/seeyoulater/internal/command"
	"github.com/MrSnakeDoc/seeyoulater/internal/domain"
	"github.com/MrSnakeDoc/seeyoulater/internal/httpserver/deps"
	"github.com/MrSnakeDoc/seeyoulater/internal/logger"
)

// Search lists bookmarks matching ?query=&tag=&all_tags=.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := command.DecodeSearch(r.URL.Query())
		if err != nil {
			writeError(w, d.Logger, "search", err)
			return
		}

		found, err := d.Commands.Find(r.Context(), q)
		if err != nil {
			writeError(w, d.Logger, "search", err)
			return
		}
		if found == nil {
			found = []domain.Bookmark{}
		}
		writeJSON(w, http.StatusOK, found)
	}
}

// DeleteSearch removes every bookmark the same filter would return and
// answers with the number removed.
func DeleteSearch(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := command.DecodeSearch(r.URL.Query())
		if err != nil {
			writeError(w, d.Logger, "delete", err)
			return
		}

		n, err := d.Commands.Delete(r.Context(), q)
		if err != nil {
			writeError(w, d.Logger, "delete", err)
			return
		}

		d.Logger.Info("bookmarks deleted",
			logger.Int64("count", n),
			logger.Strings("tags", q.Tags),
			logger.String("match", q.Match.String()))
		writeJSON(w, http.StatusOK, n)
	}
}
