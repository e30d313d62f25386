package probe

import (
	"context"
	"fmt"
	"strconv"

	"github.com/carbondoomsday/carbondoomsday/internal/config"
	"github.com/redis/go-redis/v9"
)

type redisTarget struct {
	name string
	opts *redis.Options
	err  error
}

// redisTargets lists the channel layer hosts followed by the task broker,
// without duplicates.
func redisTargets(s *config.Settings) []redisTarget {
	var targets []redisTarget
	seen := make(map[string]bool)

	add := func(t redisTarget) {
		key := t.name
		if t.opts != nil {
			key = t.opts.Addr + "/" + strconv.Itoa(t.opts.DB)
		}
		if seen[key] {
			return
		}
		seen[key] = true
		targets = append(targets, t)
	}

	if layer := s.DefaultChannelLayer(); layer.Config != nil {
		for _, host := range layer.Config.Hosts {
			add(redisTarget{name: host.Addr(), opts: host.Options()})
		}
	}

	if s.CeleryBrokerURL != "" {
		opts, err := redis.ParseURL(s.CeleryBrokerURL)
		if err != nil {
			add(redisTarget{name: "task broker", err: fmt.Errorf("%w: %v", config.ErrMalformedURL, err)})
		} else {
			add(redisTarget{name: opts.Addr, opts: opts})
		}
	}

	return targets
}

func (p *Prober) checkRedis(ctx context.Context, target redisTarget) Result {
	result := Result{Kind: "redis", Target: target.name}
	if target.err != nil {
		result.Status = StatusFailed
		result.Err = target.err
		return result
	}

	client := p.newRedis(target.opts)
	defer client.Close()

	if err := client.Ping(ctx).Err(); err != nil {
		result.Status = StatusFailed
		result.Err = fmt.Errorf("error connecting redis (ping): %w", err)
		return result
	}

	result.Status = StatusOK
	return result
}
