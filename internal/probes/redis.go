package probes

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisProbe checks the Redis server backing daily limits
type RedisProbe struct {
	BaseProbe
	client *redis.Client
}

// NewRedisProbe wraps an existing client
func NewRedisProbe(client *redis.Client) *RedisProbe {
	return &RedisProbe{
		BaseProbe: BaseProbe{probeType: "redis"},
		client:    client,
	}
}

// HealthCheck verifies Redis connectivity
func (p *RedisProbe) HealthCheck(ctx context.Context) error {
	if err := p.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	return nil
}
