package storage

import (
	"context"
	"time"

	"github.com/terra-clan/homework-assistant/internal/models"
)

// Repository defines the interface for API client and usage persistence
type Repository interface {
	// API Clients
	GetClientByApiKey(ctx context.Context, apiKey string) (*models.ApiClient, error)
	UpdateClientLastUsed(ctx context.Context, apiKey string) error

	// Usage
	RecordUsage(ctx context.Context, event *models.UsageEvent) error
	SummarizeUsage(ctx context.Context, since time.Time) (*models.UsageSummary, error)
	PruneUsage(ctx context.Context, before time.Time) (int64, error)

	// Health
	Ping(ctx context.Context) error
	Close() error
}
