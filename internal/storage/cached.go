package storage

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/terra-clan/homework-assistant/internal/models"
)

// CachedRepository wraps a Repository with an in-process API key cache.
// Unknown keys are not cached.
type CachedRepository struct {
	Repository
	cache *cache.Cache
}

// NewCachedRepository caches client lookups for ttl
func NewCachedRepository(repo Repository, ttl time.Duration) *CachedRepository {
	return &CachedRepository{
		Repository: repo,
		cache:      cache.New(ttl, 2*ttl),
	}
}

// GetClientByApiKey serves from cache when possible.
// Callers get their own copy of the client.
func (r *CachedRepository) GetClientByApiKey(ctx context.Context, apiKey string) (*models.ApiClient, error) {
	if x, found := r.cache.Get(apiKey); found {
		c := *x.(*models.ApiClient)
		return &c, nil
	}

	client, err := r.Repository.GetClientByApiKey(ctx, apiKey)
	if err != nil || client == nil {
		return client, err
	}

	cached := *client
	r.cache.Set(apiKey, &cached, cache.DefaultExpiration)
	return client, nil
}
