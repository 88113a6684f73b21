package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/seeyoulater/internal/command"
	"github.com/MrSnakeDoc/seeyoulater/internal/logger"
)

// Pinger reports whether an optional backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	Commands      command.Commands                       // shared backend, already serialized
	SchemaVersion func(ctx context.Context) (int, error) // current database schema version
	MetadataCache Pinger                                 // nil when the Redis cache is disabled
	Username      string                                 // expected X-Username
	Password      string                                 // expected X-Password
	AllowedCIDRS  []string                               // IPs allowed to access healthz/readyz endpoints
	TrustProxy    bool                                   // true if running behind a trusted reverse proxy
	RateBurst     int                                    // per-IP burst for API routes, 0 disables limiting
	RatePerMinute int                                    // per-IP refill rate
}
