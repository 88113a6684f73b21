package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/seeyoulater/internal/httpserver/deps"
)

type componentStatus struct {
	OK            bool   `json:"ok"`
	SchemaVersion *int   `json:"schema_version,omitempty"`
	Mode          string `json:"mode,omitempty"`
	Error         string `json:"error,omitempty"`
}

type readyzResponse struct {
	Ready      bool                       `json:"ready"`
	Components map[string]componentStatus `json:"components"`
}

// Readyz reports whether the database answers. The metadata cache is
// optional: when it is down adds still work, only without cached lookups.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		db := checkDatabase(ctx, d)
		components := map[string]componentStatus{
			"database":       db,
			"metadata_cache": checkCache(ctx, d),
		}

		status := http.StatusOK
		if !db.OK {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, readyzResponse{Ready: db.OK, Components: components})
	}
}

func checkDatabase(ctx context.Context, d deps.Deps) componentStatus {
	if d.SchemaVersion == nil {
		return componentStatus{OK: true, Mode: "unknown"}
	}
	v, err := d.SchemaVersion(ctx)
	if err != nil {
		return componentStatus{OK: false, Error: err.Error()}
	}
	return componentStatus{OK: true, SchemaVersion: &v}
}

func checkCache(ctx context.Context, d deps.Deps) componentStatus {
	if d.MetadataCache == nil {
		return componentStatus{OK: true, Mode: "disabled"}
	}
	if err := d.MetadataCache.Ping(ctx); err != nil {
		return componentStatus{OK: false, Mode: "degraded", Error: err.Error()}
	}
	return componentStatus{OK: true, Mode: "redis"}
}
