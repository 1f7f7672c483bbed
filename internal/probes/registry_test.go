package probes

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProbe struct {
	BaseProbe
	err error
}

func (p *stubProbe) HealthCheck(ctx context.Context) error { return p.err }

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	down := errors.New("connection refused")
	r.Register("redis", &stubProbe{BaseProbe: BaseProbe{probeType: "redis"}, err: down})
	r.Register("postgres", &stubProbe{BaseProbe: BaseProbe{probeType: "postgres"}})

	assert.Equal(t, []string{"postgres", "redis"}, r.List())
	assert.Equal(t, "redis", r.Get("redis").Type())
	assert.Nil(t, r.Get("missing"))

	results := r.HealthCheckAll(context.Background())
	assert.NoError(t, results["postgres"])
	assert.ErrorIs(t, results["redis"], down)

	r.Register("redis", &stubProbe{BaseProbe: BaseProbe{probeType: "redis"}})
	assert.Equal(t, []string{"postgres", "redis"}, r.List(), "re-registering replaces the probe")
	assert.NoError(t, r.HealthCheckAll(context.Background())["redis"])
}

func TestPostgresProbe(t *testing.T) {
	dsn := os.Getenv("DATABASE_TEST_DSN")
	if dsn == "" {
		t.Skip("DATABASE_TEST_DSN not set")
	}

	p, err := NewPostgresProbe(dsn)
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, "postgres", p.Type())
	assert.NoError(t, p.HealthCheck(context.Background()))
}

func TestRedisProbe_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()

	p := NewRedisProbe(client)
	assert.Equal(t, "redis", p.Type())
	assert.ErrorContains(t, p.HealthCheck(context.Background()), "redis:")
}
