package config

import (
	"encoding/json"
	"fmt"
	"net"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RedisHost is one Redis endpoint of the channel layer. It encodes as the
// (host, port) pair the channel backend expects; DB, Password and the parsed
// client options are kept for clients that connect to it.
type RedisHost struct {
	Host     string
	Port     int
	DB       int
	Password string

	// opts holds what redis.ParseURL found beyond the address, such as the
	// ACL username and the TLS config of a rediss:// URL.
	opts *redis.Options
}

// ParseRedisURL extracts the endpoint of a redis:// or rediss:// URL.
func ParseRedisURL(raw string) (RedisHost, error) {
	opts, err := redis.ParseURL(raw)
	if err != nil {
		return RedisHost{}, fmt.Errorf("%w: REDIS_URL: %v", ErrMalformedURL, err)
	}

	host, portStr, err := net.SplitHostPort(opts.Addr)
	if err != nil {
		return RedisHost{}, fmt.Errorf("%w: REDIS_URL: %v", ErrMalformedURL, err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return RedisHost{}, fmt.Errorf("%w: REDIS_URL: invalid port %q", ErrMalformedURL, portStr)
	}

	return RedisHost{
		Host:     host,
		Port:     port,
		DB:       opts.DB,
		Password: opts.Password,
		opts:     opts,
	}, nil
}

// Addr returns the endpoint in host:port form.
func (h RedisHost) Addr() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

// Options returns go-redis client options for the endpoint. Each call
// returns a fresh copy.
func (h RedisHost) Options() *redis.Options {
	opts := &redis.Options{}
	if h.opts != nil {
		*opts = *h.opts
		if h.opts.TLSConfig != nil {
			opts.TLSConfig = h.opts.TLSConfig.Clone()
		}
	}

	opts.Addr = h.Addr()
	opts.DB = h.DB
	opts.Password = h.Password

	return opts
}

func (h RedisHost) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{h.Host, h.Port})
}

func (h *RedisHost) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("redis host must be a [host, port] pair, got %d elements", len(pair))
	}

	if err := json.Unmarshal(pair[0], &h.Host); err != nil {
		return err
	}

	return json.Unmarshal(pair[1], &h.Port)
}
