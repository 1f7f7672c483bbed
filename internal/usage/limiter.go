package usage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/terra-clan/homework-assistant/internal/models"
)

// ErrLimitExceeded is returned once a client has used up its daily allowance
var ErrLimitExceeded = errors.New("daily limit exceeded")

// counterTTL keeps a day's counter around past midnight in every timezone
const counterTTL = 48 * time.Hour

// Limiter counts requests per client per UTC day.
// A limit of zero or less means unlimited.
type Limiter interface {
	// Allow counts one request and fails with ErrLimitExceeded past the limit
	Allow(ctx context.Context, clientID string, limit int) (models.QuotaStatus, error)

	// Status reports the current position without counting a request
	Status(ctx context.Context, clientID string, limit int) (models.QuotaStatus, error)
}

// RedisLimiter keeps daily counters in Redis
type RedisLimiter struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisLimiter creates a limiter over an existing client
func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{client: client, now: time.Now}
}

// Allow increments today's counter for the client
func (l *RedisLimiter) Allow(ctx context.Context, clientID string, limit int) (models.QuotaStatus, error) {
	now := l.now().UTC()
	key := DailyKey(clientID, now)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, counterTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return models.QuotaStatus{}, fmt.Errorf("failed to increment usage counter: %w", err)
	}

	used := int(incr.Val())
	status := quota(limit, used, now)
	if limit > 0 && used > limit {
		return status, ErrLimitExceeded
	}
	return status, nil
}

// Status reads today's counter for the client
func (l *RedisLimiter) Status(ctx context.Context, clientID string, limit int) (models.QuotaStatus, error) {
	now := l.now().UTC()

	used, err := l.client.Get(ctx, DailyKey(clientID, now)).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return models.QuotaStatus{}, fmt.Errorf("failed to read usage counter: %w", err)
	}

	return quota(limit, used, now), nil
}

// NoopLimiter allows everything; used when Redis is not configured
type NoopLimiter struct{}

// Allow always succeeds
func (NoopLimiter) Allow(ctx context.Context, clientID string, limit int) (models.QuotaStatus, error) {
	return quota(limit, 0, time.Now().UTC()), nil
}

// Status reports an untouched allowance
func (NoopLimiter) Status(ctx context.Context, clientID string, limit int) (models.QuotaStatus, error) {
	return quota(limit, 0, time.Now().UTC()), nil
}

// DailyKey returns the Redis key holding a client's counter for the day of t
func DailyKey(clientID string, t time.Time) string {
	return fmt.Sprintf("homework:usage:%s:%s", clientID, t.UTC().Format("2006-01-02"))
}

func quota(limit, used int, now time.Time) models.QuotaStatus {
	remaining := 0
	if limit > 0 {
		remaining = max(limit-used, 0)
	}

	y, m, d := now.UTC().Date()
	return models.QuotaStatus{
		Limit:     limit,
		Used:      used,
		Remaining: remaining,
		ResetsAt:  time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC),
	}
}
