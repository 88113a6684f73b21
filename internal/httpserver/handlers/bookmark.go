package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/seeyoulater/internal/domain"
	"github.com/MrSnakeDoc/seeyoulater/internal/httpserver/deps"
	"github.com/MrSnakeDoc/seeyoulater/internal/logger"
)

// AddBookmark stores the bookmark in the body. It answers 201 with the new
// bookmark, or 200 with the existing one when the URL was already saved.
func AddBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.AddRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, d.Logger, "add", err)
			return
		}

		res, err := d.Commands.Add(r.Context(), req)
		if err != nil {
			writeError(w, d.Logger, "add", err)
			return
		}

		status := http.StatusOK
		if res.Created {
			status = http.StatusCreated
			d.Logger.Info("bookmark added",
				logger.Int64("id", res.Bookmark.ID),
				logger.String("url", res.Bookmark.URL))
		}
		writeJSON(w, status, res.Bookmark)
	}
}
