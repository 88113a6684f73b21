package mw

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/seeyoulater/internal/command"
)

var (
	corsMethods = strings.Join([]string{
		http.MethodPost, http.MethodGet, http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}, ", ")
	corsHeaders = strings.Join([]string{
		"Content-Type", command.HeaderUsername, command.HeaderPassword,
	}, ", ")
)

// CORS allows browser extensions on any origin to call the API. Preflight
// OPTIONS requests are answered here with 204 and never reach Auth.
func CORS() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Methods", corsMethods)
			h.Set("Access-Control-Allow-Headers", corsHeaders)
			h.Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
