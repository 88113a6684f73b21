// Package redis opens the optional Redis connection used to cache fetched
// page metadata.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/seeyoulater/internal/config"
	"github.com/MrSnakeDoc/seeyoulater/internal/logger"
)

// backoff is the retry policy of Connect.
type backoff struct {
	initial   time.Duration
	max       time.Duration
	ping      time.Duration
	total     time.Duration
	warnAfter int
}

func (b backoff) validate() error {
	switch {
	case b.total <= 0:
		return fmt.Errorf("connect_timeout must be > 0, got %v", b.total)
	case b.initial <= 0:
		return fmt.Errorf("retry_interval must be > 0, got %v", b.initial)
	case b.max <= 0:
		return fmt.Errorf("max_wait must be > 0, got %v", b.max)
	case b.ping <= 0:
		return fmt.Errorf("ping_timeout must be > 0, got %v", b.ping)
	case b.warnAfter < 0:
		return fmt.Errorf("warn_threshold must be >= 0, got %d", b.warnAfter)
	}
	return nil
}

// next doubles wait up to the cap.
func (b backoff) next(wait time.Duration) time.Duration {
	wait *= 2
	if wait > b.max {
		return b.max
	}
	return wait
}

// Connect returns a pinged client for cfg. It retries with exponential
// backoff until cfg.ConnectTimeout elapses or ctx is cancelled.
// A nil cfg means the cache is disabled and returns (nil, nil).
func Connect(ctx context.Context, cfg *config.RedisConfig, log logger.Logger) (*redis.Client, error) {
	if cfg == nil {
		return nil, nil
	}

	policy := backoff{
		initial:   cfg.RetryInterval,
		max:       cfg.MaxWait,
		ping:      cfg.PingTimeout,
		total:     cfg.ConnectTimeout,
		warnAfter: cfg.WarnThreshold,
	}
	if err := policy.validate(); err != nil {
		return nil, fmt.Errorf("invalid redis config: %w", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Username:     cfg.User,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
	})

	log = log.With(logger.String("addr", cfg.Addr))
	if err := ping(ctx, client, policy, log); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func ping(ctx context.Context, client *redis.Client, policy backoff, log logger.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, policy.total)
	defer cancel()

	log.Info("connecting to redis", logger.Duration("timeout", policy.total))
	start := time.Now()
	wait := policy.initial

	for attempt := 1; ; attempt++ {
		pingCtx, pingCancel := context.WithTimeout(ctx, policy.ping)
		err := client.Ping(pingCtx).Err()
		pingCancel()

		if err == nil {
			if attempt > 1 {
				log.Warn("connected to redis after retry",
					logger.Int("attempts", attempt),
					logger.Duration("elapsed", time.Since(start)))
			} else {
				log.Info("connected to redis")
			}
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Error("redis unavailable",
				logger.Int("attempts", attempt),
				logger.Duration("timeout", policy.total),
				logger.Error(err))
			return fmt.Errorf("redis unavailable at %s after %d attempts: %w", client.Options().Addr, attempt, err)

		case <-timer.C:
			fields := []logger.Field{
				logger.Int("attempt", attempt),
				logger.Duration("next_retry_in", wait),
				logger.Error(err),
			}
			if attempt <= policy.warnAfter {
				log.Warn("redis connection failed, retrying", fields...)
			} else {
				log.Error("redis still unavailable, retrying", fields...)
			}
			wait = policy.next(wait)
		}
	}
}
