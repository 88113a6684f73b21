package mw

import (
	"crypto/subtle"
	"net/http"

	"github.com/MrSnakeDoc/seeyoulater/internal/command"
	"github.com/MrSnakeDoc/seeyoulater/internal/logger"
	"github.com/MrSnakeDoc/seeyoulater/internal/utils"
)

const (
	msgCredentialsRequired = "X-Username and X-Password headers required"
	msgCredentialsInvalid  = "Username or password incorrect"
)

// Auth requires the X-Username and X-Password headers to match the
// configured credentials. Failures answer 401 with a plain-text reason.
func Auth(username, password string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	wantUser := []byte(username)
	wantPass := []byte(password)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := r.Header.Get(command.HeaderUsername)
			pass := r.Header.Get(command.HeaderPassword)

			if user == "" || pass == "" {
				http.Error(w, msgCredentialsRequired, http.StatusUnauthorized)
				return
			}

			// Evaluate both so timing does not reveal which one was wrong.
			userOK := subtle.ConstantTimeCompare([]byte(user), wantUser) == 1
			passOK := subtle.ConstantTimeCompare([]byte(pass), wantPass) == 1
			if !userOK || !passOK {
				log.Warn("authentication failed",
					logger.String("username", user),
					logger.String("remote_ip", utils.ClientIP(r, trustProxy)),
					logger.String("path", r.URL.Path))
				http.Error(w, msgCredentialsInvalid, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
