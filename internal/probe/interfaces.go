package probe

//go:generate mockgen -source=interfaces.go -destination=../mock/redis_client_mock.go -package=mock

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the part of the go-redis client the probe needs.
type RedisClient interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}
