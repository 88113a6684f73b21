package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/seeyoulater/internal/command"
	"github.com/MrSnakeDoc/seeyoulater/internal/domain"
	"github.com/MrSnakeDoc/seeyoulater/internal/httpserver/deps"
	"github.com/MrSnakeDoc/seeyoulater/internal/logger"
)

// Tags lists tags as [name, count] pairs.
func Tags(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := command.DecodeTags(r.URL.Query())
		if err != nil {
			writeError(w, d.Logger, "list tags", err)
			return
		}

		tags, err := d.Commands.Tags(r.Context(), q)
		if err != nil {
			writeError(w, d.Logger, "list tags", err)
			return
		}
		if tags == nil {
			tags = []domain.TagCount{}
		}
		writeJSON(w, http.StatusOK, tags)
	}
}

// RenameTag moves ?from= onto ?to= and answers with the association count.
func RenameTag(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from := r.URL.Query().Get("from")
		to := r.URL.Query().Get("to")

		n, err := d.Commands.RenameTag(r.Context(), from, to)
		if err != nil {
			writeError(w, d.Logger, "rename tag", err)
			return
		}

		d.Logger.Info("tag renamed",
			logger.String("from", from),
			logger.String("to", to),
			logger.Int64("updated", n))
		writeJSON(w, http.StatusOK, n)
	}
}
