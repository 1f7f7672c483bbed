package cleanup

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePruner struct {
	mu      sync.Mutex
	cutoffs []time.Time
	err     error
}

func (p *fakePruner) PruneUsage(ctx context.Context, before time.Time) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cutoffs = append(p.cutoffs, before)
	return 3, p.err
}

func (p *fakePruner) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.cutoffs)
}

func TestCleaner_CutoffUsesRetention(t *testing.T) {
	p := &fakePruner{}
	c := NewCleaner(p, 48*time.Hour, time.Hour)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.cleanup(context.Background())

	require.Len(t, p.cutoffs, 1)
	assert.Equal(t, now.Add(-48*time.Hour), p.cutoffs[0])
}

func TestCleaner_ErrorDoesNotPanic(t *testing.T) {
	p := &fakePruner{err: errors.New("db down")}
	c := NewCleaner(p, time.Hour, time.Hour)

	c.cleanup(context.Background())
	assert.Equal(t, 1, p.calls())
}

func TestCleaner_RunsOnStartAndStops(t *testing.T) {
	p := &fakePruner{}
	c := NewCleaner(p, time.Hour, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	c.Start(ctx)

	assert.Eventually(t, func() bool { return p.calls() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	time.Sleep(30 * time.Millisecond)
	stopped := p.calls()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, stopped, p.calls(), "worker should stop after cancel")
}

func TestNewCleaner_Defaults(t *testing.T) {
	c := NewCleaner(&fakePruner{}, 0, 0)
	assert.Equal(t, time.Hour, c.interval)
	assert.Equal(t, 30*24*time.Hour, c.retention)
}
