package main

import (
	"errors"

	"github.com/MrSnakeDoc/seeyoulater/internal/domain"
)

const (
	ExitSuccess      = 0 // Success
	ExitError        = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError  = 2 // Configuration could not be loaded
	ExitSchemaError  = 3 // Database schema unreadable or from a newer version
	ExitUnauthorized = 4 // Remote server rejected the credentials
	ExitRemoteError  = 5 // Remote server unreachable or answered unexpectedly
)

// configError marks failures to load the configuration.
type configError struct{ err error }

func (e *configError) Error() string { return "config: " + e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var cfgErr *configError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &cfgErr):
		return ExitConfigError
	case domain.IsSchema(err):
		return ExitSchemaError
	case errors.Is(err, domain.ErrUnauthorized):
		return ExitUnauthorized
	case domain.IsTransport(err):
		return ExitRemoteError
	default:
		return ExitError
	}
}
