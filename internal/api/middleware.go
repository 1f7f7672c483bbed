package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/terra-clan/homework-assistant/internal/models"
	"github.com/terra-clan/homework-assistant/internal/storage"
	"github.com/terra-clan/homework-assistant/internal/usage"
)

const demoApiKey = "demo_access_homework_2025"

// AuthMiddleware handles API key authentication and daily limits
type AuthMiddleware struct {
	repo    storage.Repository
	limiter usage.Limiter
}

// NewAuthMiddleware creates new auth middleware
func NewAuthMiddleware(repo storage.Repository, limiter usage.Limiter) *AuthMiddleware {
	if limiter == nil {
		limiter = usage.NoopLimiter{}
	}
	return &AuthMiddleware{repo: repo, limiter: limiter}
}

// Authenticate verifies the API key sent in X-API-Key, Authorization or
// Api-Key. Websocket upgrades may pass it as the api_key query parameter.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := extractAPIKey(r)
		if apiKey == "" && websocket.IsWebSocketUpgrade(r) {
			apiKey = r.URL.Query().Get("api_key")
		}
		if apiKey == "" {
			slog.Warn("authentication failed", "reason", "missing api key", "remote_addr", r.RemoteAddr)
			writeAuthError(w, http.StatusUnauthorized, "missing api key", "Missing API key in request headers")
			return
		}

		client, err := m.repo.GetClientByApiKey(r.Context(), apiKey)
		if err != nil {
			slog.Error("failed to lookup api client", "error", err, "key_prefix", maskKey(apiKey))
			writeAuthError(w, http.StatusInternalServerError, "authentication error", "internal server error")
			return
		}

		if client == nil {
			slog.Warn("invalid api key attempt", "key_prefix", maskKey(apiKey), "remote_addr", r.RemoteAddr)
			writeAuthError(w, http.StatusUnauthorized, "invalid api key", "Invalid API key provided")
			return
		}

		if !client.IsActive {
			slog.Warn("inactive client attempt", "client", client.Name, "key_prefix", maskKey(apiKey))
			writeAuthError(w, http.StatusUnauthorized, "client inactive", "This API key has been deactivated")
			return
		}

		// Don't block the request on the bookkeeping write
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := m.repo.UpdateClientLastUsed(ctx, apiKey); err != nil {
				slog.Error("failed to update client last_used_at", "error", err, "client", client.Name)
			}
		}()

		slog.Debug("authenticated request", "client", client.Name, "role", client.Role, "key_prefix", client.MaskedApiKey())

		ctx := ContextWithClient(r.Context(), client)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePermission returns middleware that checks for specific permission
func (m *AuthMiddleware) RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := ClientFromContext(r.Context())
			if client == nil {
				writeAuthError(w, http.StatusUnauthorized, "not authenticated", "authentication required")
				return
			}

			if !client.HasPermission(permission) {
				slog.Warn("permission denied",
					"client", client.Name,
					"required", permission,
					"has", client.Permissions,
				)
				writeAuthError(w, http.StatusForbidden, "permission denied",
					"client does not have required permission: "+permission)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireDailyLimit counts the request against the client's daily allowance.
// Limiter failures let the request through.
func (m *AuthMiddleware) RequireDailyLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := ClientFromContext(r.Context())
		if client == nil {
			writeAuthError(w, http.StatusUnauthorized, "not authenticated", "authentication required")
			return
		}

		quota, err := m.limiter.Allow(r.Context(), client.Name, client.DailyLimit)
		switch {
		case errors.Is(err, usage.ErrLimitExceeded):
			slog.Warn("daily limit exceeded", "client", client.Name, "limit", quota.Limit)
			setQuotaHeaders(w, quota)
			respondError(w, http.StatusTooManyRequests, "daily_limit_exceeded",
				fmt.Sprintf("Daily limit of %d requests reached, resets at %s", quota.Limit, quota.ResetsAt.Format(time.RFC3339)))
			return
		case err != nil:
			slog.Warn("daily limit check failed, allowing request", "client", client.Name, "error", err)
		default:
			setQuotaHeaders(w, quota)
		}

		next.ServeHTTP(w, r)
	})
}

func setQuotaHeaders(w http.ResponseWriter, quota models.QuotaStatus) {
	if quota.Limit <= 0 {
		return
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(quota.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(quota.Remaining))
}

// recoverPanics turns a panic into an internal_error response.
// Only admins get to see what went wrong.
func recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			client := ClientFromContext(r.Context())
			slog.Error("panic recovered",
				"panic", rec,
				"client", clientName(r.Context()),
				"request_id", middleware.GetReqID(r.Context()),
				"stack", string(debug.Stack()),
			)

			message := "An unexpected error occurred"
			if client != nil && client.Role == models.RoleAdmin {
				message = fmt.Sprintf("%s: %v", message, rec)
			}
			respondError(w, http.StatusInternalServerError, "internal_error", message)
		}()

		next.ServeHTTP(w, r)
	})
}

// extractAPIKey reads the API key from the supported headers
func extractAPIKey(r *http.Request) string {
	if key := strings.TrimSpace(r.Header.Get("X-API-Key")); key != "" {
		return key
	}

	// "Bearer xxx" or the raw key
	if auth := r.Header.Get("Authorization"); auth != "" {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}

	return strings.TrimSpace(r.Header.Get("Api-Key"))
}

// maskKey returns first 8 chars of key for safe logging
func maskKey(key string) string {
	if len(key) < 8 {
		return "***"
	}
	return key[:8] + "..."
}

// AuthError is the body of 401 and 403 responses
type AuthError struct {
	Error        string            `json:"error"`
	Message      string            `json:"message"`
	Instructions *AuthInstructions `json:"instructions,omitempty"`
	DemoAccess   *DemoAccess       `json:"demo_access,omitempty"`
	Timestamp    time.Time         `json:"timestamp"`
}

// AuthInstructions tells a caller how to authenticate
type AuthInstructions struct {
	HeaderRequired string `json:"header_required"`
	Example        string `json:"example"`
	Contact        string `json:"contact"`
}

// DemoAccess advertises the demo key
type DemoAccess struct {
	Note    string `json:"note"`
	DemoKey string `json:"demo_key"`
	Limits  string `json:"limits"`
}

func authInstructions() *AuthInstructions {
	return &AuthInstructions{
		HeaderRequired: "X-API-Key",
		Example:        "X-API-Key: your_api_key_here",
		Contact:        "Contact your teacher, parent, or administrator for an API key",
	}
}

func demoAccess() *DemoAccess {
	return &DemoAccess{
		Note:    "For testing purposes only",
		DemoKey: demoApiKey,
		Limits:  fmt.Sprintf("Limited to %d requests per day", models.DefaultDailyLimit(models.RoleDemo)),
	}
}

// writeAuthError writes JSON error response.
// Unauthenticated callers also get instructions and the demo key.
func writeAuthError(w http.ResponseWriter, status int, error, message string) {
	body := AuthError{
		Error:     error,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if status == http.StatusUnauthorized {
		body.Instructions = authInstructions()
		body.DemoAccess = demoAccess()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
