package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/terra-clan/homework-assistant/internal/catalog"
)

// Catalog handlers: practice problem sets

func (s *Server) handleListSets(w http.ResponseWriter, r *http.Request) {
	sets := s.catalog.ListSets()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sets":  sets,
		"total": len(sets),
	})
}

func (s *Server) handleGetSet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	set, err := s.catalog.GetSet(name)
	if err != nil {
		if errors.Is(err, catalog.ErrSetNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "problem set not found")
			return
		}
		slog.Error("failed to get problem set", "error", err, "name", name)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get problem set")
		return
	}
	respondJSON(w, http.StatusOK, set)
}

// handleCatalogProblemHints runs a practice problem exactly like a submitted one
func (s *Server) handleCatalogProblemHints(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	code := chi.URLParam(r, "code")

	problem, err := s.catalog.GetProblem(name, code)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrSetNotFound):
			respondError(w, http.StatusNotFound, "not_found", "problem set not found")
		case errors.Is(err, catalog.ErrProblemNotFound):
			respondError(w, http.StatusNotFound, "not_found", "problem not found")
		default:
			slog.Error("failed to get problem", "error", err, "set", name, "code", code)
			respondError(w, http.StatusInternalServerError, "internal_error", "failed to get problem")
		}
		return
	}

	env, bundle := s.service.Process(r.Context(), problem.Text, ClientFromContext(r.Context()), middleware.GetReqID(r.Context()))
	respondEnvelope(w, env, bundle)
}
