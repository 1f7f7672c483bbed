// Package assistant runs a problem through classification, hint composition
// and response shaping, and reports the outcome to a usage sink.
package assistant

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/terra-clan/homework-assistant/internal/classifier"
	"github.com/terra-clan/homework-assistant/internal/hints"
	"github.com/terra-clan/homework-assistant/internal/models"
	"github.com/terra-clan/homework-assistant/internal/response"
)

// Sink receives one notification per processed problem
type Sink interface {
	Record(ctx context.Context, event models.UsageEvent)
}

// Service processes homework problems for authenticated clients
type Service struct {
	sink Sink
	now  func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithClock overrides the time source used for envelope timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a Service. A nil sink discards usage notifications.
func NewService(sink Sink, opts ...Option) *Service {
	s := &Service{sink: sink, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Process classifies a problem and returns the shaped envelope along with
// the raw bundle. client may be nil for local use; it then acts as a student.
func (s *Service) Process(ctx context.Context, problem string, client *models.ApiClient, requestID string) (models.ResponseEnvelope, models.HintBundle) {
	info := client.RoleInfo()
	role := models.ParseRole(string(info.Role))

	op, operands := classifier.Classify(problem, role)
	bundle := hints.Compose(op, operands, role)

	if requestID == "" {
		requestID = uuid.NewString()
	}
	now := s.now()
	env := response.Shape(problem, op, operands, bundle, info, requestID, now)

	if s.sink != nil {
		name := "local"
		if client != nil {
			name = client.Name
		}
		s.sink.Record(ctx, models.UsageEvent{
			ClientName:     name,
			Role:           role,
			Operation:      op,
			Success:        env.Success,
			ErrorKind:      bundle.Error,
			ProblemExcerpt: problem,
			CreatedAt:      now.UTC(),
		})
	}

	return env, bundle
}
