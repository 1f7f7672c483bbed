package storage

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/terra-clan/homework-assistant/internal/models"
)

// keyFile is the on-disk layout of the static API key file
type keyFile struct {
	Clients []KeyEntry `yaml:"clients"`
}

// KeyEntry defines one client in the key file
type KeyEntry struct {
	Name        string            `yaml:"name"`
	ApiKey      string            `yaml:"api_key"`
	Role        string            `yaml:"role"`
	DailyLimit  int               `yaml:"daily_limit"`
	Active      *bool             `yaml:"active"`
	Permissions []string          `yaml:"permissions"`
	Metadata    map[string]string `yaml:"metadata"`
}

// StaticRepository serves API clients from a YAML key file and keeps usage
// events in memory. It is used when no database is configured.
type StaticRepository struct {
	clients map[string]*models.ApiClient

	mu       sync.RWMutex
	lastUsed map[string]time.Time
	events   []models.UsageEvent
}

// LoadStaticRepository reads API clients from a YAML key file
func LoadStaticRepository(path string) (*StaticRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	var file keyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse key file %s: %w", path, err)
	}

	return NewStaticRepository(file.Clients)
}

// NewStaticRepository builds a repository from key definitions.
// Role, daily limit and permissions fall back to role defaults.
func NewStaticRepository(entries []KeyEntry) (*StaticRepository, error) {
	repo := &StaticRepository{
		clients:  make(map[string]*models.ApiClient, len(entries)),
		lastUsed: make(map[string]time.Time),
	}

	created := time.Now().UTC()
	for i, e := range entries {
		if e.ApiKey == "" {
			return nil, fmt.Errorf("client %d (%q): api_key is required", i, e.Name)
		}
		if _, dup := repo.clients[e.ApiKey]; dup {
			return nil, fmt.Errorf("client %d (%q): duplicate api_key", i, e.Name)
		}

		role := models.ParseRole(e.Role)
		client := &models.ApiClient{
			ID:          i + 1,
			Name:        e.Name,
			ApiKey:      e.ApiKey,
			Role:        role,
			DailyLimit:  e.DailyLimit,
			IsActive:    e.Active == nil || *e.Active,
			CreatedAt:   created,
			Permissions: e.Permissions,
			Metadata:    e.Metadata,
		}
		if client.DailyLimit == 0 {
			client.DailyLimit = models.DefaultDailyLimit(role)
		}
		if len(client.Permissions) == 0 {
			client.Permissions = models.DefaultPermissions(role)
		}

		repo.clients[e.ApiKey] = client
	}

	return repo, nil
}

// GetClientByApiKey returns a copy of the client, or nil if the key is unknown
func (r *StaticRepository) GetClientByApiKey(ctx context.Context, apiKey string) (*models.ApiClient, error) {
	client, ok := r.clients[apiKey]
	if !ok {
		return nil, nil
	}

	c := *client
	r.mu.RLock()
	if t, ok := r.lastUsed[apiKey]; ok {
		c.LastUsedAt = &t
	}
	r.mu.RUnlock()

	return &c, nil
}

// UpdateClientLastUsed records the current time for a known key
func (r *StaticRepository) UpdateClientLastUsed(ctx context.Context, apiKey string) error {
	if _, ok := r.clients[apiKey]; !ok {
		return nil
	}

	r.mu.Lock()
	r.lastUsed[apiKey] = time.Now().UTC()
	r.mu.Unlock()
	return nil
}

// RecordUsage appends an event to the in-memory log
func (r *StaticRepository) RecordUsage(ctx context.Context, event *models.UsageEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

// SummarizeUsage groups events since a point in time by role and operation
func (r *StaticRepository) SummarizeUsage(ctx context.Context, since time.Time) (*models.UsageSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type groupKey struct {
		role models.Role
		op   models.Operation
	}
	groups := make(map[groupKey]*models.UsageCount)

	summary := &models.UsageSummary{Since: since, Counts: []models.UsageCount{}}
	for _, ev := range r.events {
		if ev.CreatedAt.Before(since) {
			continue
		}

		k := groupKey{ev.Role, ev.Operation}
		c, ok := groups[k]
		if !ok {
			c = &models.UsageCount{Role: ev.Role, Operation: ev.Operation}
			groups[k] = c
		}
		c.Requests++
		if !ev.Success {
			c.Failures++
		}
		summary.Total++
	}

	for _, c := range groups {
		summary.Counts = append(summary.Counts, *c)
	}
	sort.Slice(summary.Counts, func(i, j int) bool {
		if summary.Counts[i].Role != summary.Counts[j].Role {
			return summary.Counts[i].Role < summary.Counts[j].Role
		}
		return summary.Counts[i].Operation < summary.Counts[j].Operation
	})

	return summary, nil
}

// PruneUsage drops events created before the cutoff
func (r *StaticRepository) PruneUsage(ctx context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.events[:0]
	for _, ev := range r.events {
		if !ev.CreatedAt.Before(before) {
			kept = append(kept, ev)
		}
	}

	removed := int64(len(r.events) - len(kept))
	r.events = kept
	return removed, nil
}

// Ping always succeeds
func (r *StaticRepository) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op
func (r *StaticRepository) Close() error {
	return nil
}
