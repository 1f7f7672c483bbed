// Package usage meters processed problems and enforces daily request limits.
package usage

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/terra-clan/homework-assistant/internal/models"
)

// ExcerptLength is the number of characters of a problem kept in usage records
const ExcerptLength = 50

// storeTimeout bounds a single background write
const storeTimeout = 5 * time.Second

// Store persists usage events
type Store interface {
	RecordUsage(ctx context.Context, event *models.UsageEvent) error
}

// Recorder logs every processed problem and stores it in the background.
// A nil store only logs.
type Recorder struct {
	store  Store
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewRecorder creates a usage recorder
func NewRecorder(store Store, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{store: store, logger: logger}
}

// Record emits the usage line and queues the event for storage.
// It never blocks on the store.
func (r *Recorder) Record(ctx context.Context, event models.UsageEvent) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	event.ProblemExcerpt = Excerpt(event.ProblemExcerpt)

	r.logger.InfoContext(ctx, "usage",
		"client", event.ClientName,
		"role", event.Role,
		"operation", event.Operation,
		"success", event.Success,
		"error_kind", event.ErrorKind,
		"problem", event.ProblemExcerpt,
	)

	if r.store == nil {
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		if err := r.store.RecordUsage(ctx, &event); err != nil {
			r.logger.Warn("failed to store usage event", "id", event.ID, "error", err)
		}
	}()
}

// Wait blocks until queued writes have finished
func (r *Recorder) Wait() {
	r.wg.Wait()
}

// Excerpt truncates a problem text to ExcerptLength characters
func Excerpt(problem string) string {
	runes := []rune(problem)
	if len(runes) <= ExcerptLength {
		return problem
	}
	return string(runes[:ExcerptLength])
}
