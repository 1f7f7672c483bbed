package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/terra-clan/homework-assistant/internal/hints"
	"github.com/terra-clan/homework-assistant/internal/models"
)

const serviceName = "Smart Homework Assistant"

// Response helpers

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondFailure(w, status, nil, code, message)
}

// respondFailure is respondError with a payload, for failures that still
// carry a result worth showing
func respondFailure(w http.ResponseWriter, status int, data interface{}, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Data:    data,
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// respondEnvelope writes a processed problem: 200 when hints were produced,
// 422 with the error kind as code otherwise
func respondEnvelope(w http.ResponseWriter, env models.ResponseEnvelope, bundle models.HintBundle) {
	if env.Success {
		respondJSON(w, http.StatusOK, env)
		return
	}
	respondFailure(w, http.StatusUnprocessableEntity, env, string(bundle.Error), bundle.Message)
}

// Info and health handlers

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"service":     serviceName,
		"description": "Step-by-step hints for arithmetic homework. Hints explain the method and never give the answer away.",
		"endpoints": map[string]string{
			"POST /api/v1/homework":                                 "Submit a problem and receive hints",
			"POST /process-homework":                                "Same as /api/v1/homework",
			"GET /api/v1/walkthrough":                               "Websocket, hints one step at a time",
			"GET /api/v1/catalog/sets":                              "List practice problem sets",
			"GET /api/v1/catalog/sets/{name}":                       "Problems of one set",
			"GET /api/v1/catalog/sets/{name}/problems/{code}/hints": "Hints for a practice problem",
			"GET /api/v1/usage/me":                                  "Your daily allowance",
			"GET /api/v1/usage":                                     "Usage summary (teachers and admins)",
			"GET /health":                                           "Liveness",
			"GET /ready":                                            "Readiness of storage and limiter",
		},
		"authentication": map[string]interface{}{
			"instructions": authInstructions(),
			"demo_access":  demoAccess(),
		},
		"supported_operations": hints.SupportedOperations(),
		"example_problems":     hints.ExampleProblems,
		"roles":                []models.Role{models.RoleStudent, models.RoleParent, models.RoleTeacher, models.RoleDemo, models.RoleAdmin},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": serviceName,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)
	ready := true

	if err := s.repo.Ping(r.Context()); err != nil {
		slog.Warn("storage not ready", "error", err)
		checks["storage"] = err.Error()
		ready = false
	} else {
		checks["storage"] = "ok"
	}

	for name, err := range s.probes.HealthCheckAll(r.Context()) {
		if err != nil {
			slog.Warn("probe failed", "probe", name, "error", err)
			checks[name] = err.Error()
			ready = false
			continue
		}
		checks[name] = "ok"
	}

	// Registered dependencies in name order, with their kind
	dependencies := make([]map[string]string, 0)
	for _, name := range s.probes.List() {
		if p := s.probes.Get(name); p != nil {
			dependencies = append(dependencies, map[string]string{"name": name, "type": p.Type()})
		}
	}

	body := map[string]interface{}{
		"status":       "ready",
		"checks":       checks,
		"dependencies": dependencies,
	}
	if !ready {
		body["status"] = "not_ready"
		respondFailure(w, http.StatusServiceUnavailable, body, "not_ready", "service not ready")
		return
	}

	respondJSON(w, http.StatusOK, body)
}

// Homework handlers

func (s *Server) handleHomework(w http.ResponseWriter, r *http.Request) {
	var req models.HomeworkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := s.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", validationMessage(err))
		return
	}

	client := ClientFromContext(r.Context())
	env, bundle := s.service.Process(r.Context(), req.Problem, client, middleware.GetReqID(r.Context()))

	slog.Debug("homework processed",
		"client", clientName(r.Context()),
		"operation", env.Analysis.Operation,
		"success", env.Success,
	)

	respondEnvelope(w, env, bundle)
}

// validationMessage turns validator errors into one readable line
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

// Usage handlers

func (s *Server) handleMyUsage(w http.ResponseWriter, r *http.Request) {
	client := ClientFromContext(r.Context())

	quota, err := s.limiter.Status(r.Context(), client.Name, client.DailyLimit)
	if err != nil {
		slog.Error("failed to read usage counter", "error", err, "client", client.Name)
		respondError(w, http.StatusServiceUnavailable, "usage_unavailable", "usage counters are unavailable")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"client": client.Name,
		"role":   client.Role,
		"quota":  quota,
	})
}

func (s *Server) handleUsageSummary(w http.ResponseWriter, r *http.Request) {
	window := 24 * time.Hour
	if v := r.URL.Query().Get("since"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			respondError(w, http.StatusBadRequest, "validation_error", "since must be a positive duration such as 24h")
			return
		}
		window = d
	}

	summary, err := s.repo.SummarizeUsage(r.Context(), time.Now().UTC().Add(-window))
	if err != nil {
		slog.Error("failed to summarize usage", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to summarize usage")
		return
	}

	respondJSON(w, http.StatusOK, summary)
}
