package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/MrSnakeDoc/seeyoulater/internal/command"
	"github.com/MrSnakeDoc/seeyoulater/internal/domain"
	"github.com/MrSnakeDoc/seeyoulater/internal/logger"
)

// maxBody bounds request bodies.
const maxBody = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError answers with the JSON error body the remote backend decodes.
func writeError(w http.ResponseWriter, log logger.Logger, op string, err error) {
	kind := command.KindOf(err)

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrSerialization):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	}

	if status >= 500 {
		log.Error(op+" failed", logger.String("kind", kind), logger.Error(err))
	} else {
		log.Debug(op+" rejected", logger.String("kind", kind), logger.Error(err))
	}

	writeJSON(w, status, command.ErrorBody{Kind: kind, Message: err.Error()})
}

// decodeJSON reads a single JSON value from the request body.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	if err := dec.Decode(v); err != nil {
		return &domain.SerializationError{Op: "decode request", Err: err}
	}
	return nil
}
