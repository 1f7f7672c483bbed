package models

import (
	"strings"
	"time"
)

// ApiClient represents an authenticated API key holder
type ApiClient struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	ApiKey      string            `json:"-"` // Never serialize to JSON
	Role        Role              `json:"role"`
	DailyLimit  int               `json:"daily_limit"`
	IsActive    bool              `json:"is_active"`
	CreatedAt   time.Time         `json:"created_at"`
	LastUsedAt  *time.Time        `json:"last_used_at,omitempty"`
	Permissions []string          `json:"permissions"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Permission names checked by the API
const (
	PermHomeworkSolve = "homework:solve"
	PermCatalogRead   = "catalog:read"
	PermUsageRead     = "usage:read"
)

// DefaultPermissions returns the permissions granted to a role when a key
// definition does not list any
func DefaultPermissions(role Role) []string {
	switch role {
	case RoleAdmin:
		return []string{"*"}
	case RoleTeacher:
		return []string{PermHomeworkSolve, PermCatalogRead, PermUsageRead}
	case RoleParent, RoleStudent:
		return []string{PermHomeworkSolve, PermCatalogRead}
	default:
		return []string{PermHomeworkSolve}
	}
}

// DefaultDailyLimit returns the per-day request allowance for a role
func DefaultDailyLimit(role Role) int {
	switch role {
	case RoleAdmin:
		return 10000
	case RoleTeacher:
		return 1000
	case RoleParent:
		return 100
	case RoleStudent:
		return 50
	default:
		return 10
	}
}

// HasPermission checks if client has specific permission
// Supports wildcard permissions like "homework:*"
func (c *ApiClient) HasPermission(required string) bool {
	if c == nil || !c.IsActive {
		return false
	}

	for _, perm := range c.Permissions {
		if perm == required || perm == "*" {
			return true
		}

		// "homework:*" matches "homework:solve"
		if strings.HasSuffix(perm, ":*") {
			prefix := strings.TrimSuffix(perm, "*")
			if strings.HasPrefix(required, prefix) {
				return true
			}
		}
	}

	return false
}

// RoleInfo returns the envelope view of the client
func (c *ApiClient) RoleInfo() RoleInfo {
	if c == nil {
		return RoleInfo{Role: RoleStudent}
	}
	return RoleInfo{Role: c.Role, DailyLimit: c.DailyLimit}
}

// MaskedApiKey returns first 8 characters of API key for logging
func (c *ApiClient) MaskedApiKey() string {
	if len(c.ApiKey) < 8 {
		return "***"
	}
	return c.ApiKey[:8] + "..."
}
