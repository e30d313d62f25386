package probe

import (
	"context"
	"database/sql"

	"github.com/carbondoomsday/carbondoomsday/internal/config"
	"github.com/carbondoomsday/carbondoomsday/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Status is the outcome of probing one target.
type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Result describes the outcome of probing one backing service.
type Result struct {
	// Kind is "database" or "redis".
	Kind string
	// Target identifies the endpoint without credentials.
	Target string
	Status Status
	Err    error
	// Hint is an operator-facing suggestion for known failures.
	Hint string
}

// Prober pings the services a profile points at.
type Prober struct {
	logger   *logger.Logger
	openDB   func(driver, dsn string) (*sql.DB, error)
	newRedis func(opts *redis.Options) RedisClient
}

// NewProber constructs a [Prober] using the real database/sql drivers and
// go-redis clients.
func NewProber(log *logger.Logger) *Prober {
	return &Prober{
		logger: log.GetChildLogger("probe"),
		openDB: sql.Open,
		newRedis: func(opts *redis.Options) RedisClient {
			return redis.NewClient(opts)
		},
	}
}

// Check probes the default database and every Redis endpoint of s, in that
// order. It never stops at the first failure.
func (p *Prober) Check(ctx context.Context, s *config.Settings) []Result {
	results := []Result{p.checkDatabase(ctx, s.DefaultDatabase())}

	for _, target := range redisTargets(s) {
		results = append(results, p.checkRedis(ctx, target))
	}

	for _, r := range results {
		event := p.logger.Info()
		if r.Status == StatusFailed {
			event = p.logger.Error().Err(r.Err).Str("hint", r.Hint)
		}
		event.Str("kind", r.Kind).
			Str("target", r.Target).
			Str("status", string(r.Status)).
			Msg("probe finished")
	}

	return results
}

// Failed reports whether any result failed.
func Failed(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusFailed {
			return true
		}
	}

	return false
}
