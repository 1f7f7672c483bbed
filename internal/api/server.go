package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"github.com/terra-clan/homework-assistant/internal/assistant"
	"github.com/terra-clan/homework-assistant/internal/catalog"
	"github.com/terra-clan/homework-assistant/internal/config"
	"github.com/terra-clan/homework-assistant/internal/models"
	"github.com/terra-clan/homework-assistant/internal/probes"
	"github.com/terra-clan/homework-assistant/internal/storage"
	"github.com/terra-clan/homework-assistant/internal/usage"
)

// Server represents the HTTP API server
type Server struct {
	config         config.ServerConfig
	router         *chi.Mux
	service        *assistant.Service
	catalog        *catalog.Loader
	repo           storage.Repository
	limiter        usage.Limiter
	probes         *probes.Registry
	validate       *validator.Validate
	authMiddleware *AuthMiddleware
}

// NewServer creates a new API server.
// A nil limiter disables daily limits; a nil registry reports ready always.
func NewServer(
	cfg config.ServerConfig,
	svc *assistant.Service,
	loader *catalog.Loader,
	repo storage.Repository,
	limiter usage.Limiter,
	registry *probes.Registry,
) *Server {
	if limiter == nil {
		limiter = usage.NoopLimiter{}
	}
	if registry == nil {
		registry = probes.NewRegistry()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	s := &Server{
		config:         cfg,
		service:        svc,
		catalog:        loader,
		repo:           repo,
		limiter:        limiter,
		probes:         registry,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		authMiddleware: NewAuthMiddleware(repo, limiter),
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-API-Key", "Authorization", "Api-Key"},
		ExposedHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:         300,
	}))

	auth := s.authMiddleware
	timeout := middleware.Timeout(s.config.RequestTimeout)

	// Public
	r.With(timeout).Get("/", s.handleInfo)
	r.With(timeout).Get("/health", s.handleHealth)
	r.With(timeout).Get("/ready", s.handleReady)

	// Path used by the first deployment, kept for existing clients
	r.With(
		timeout,
		auth.Authenticate,
		recoverPanics,
		auth.RequirePermission(models.PermHomeworkSolve),
		auth.RequireDailyLimit,
	).Post("/process-homework", s.handleHomework)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Use(recoverPanics)

		// Long-lived connection, no request timeout
		r.With(auth.RequirePermission(models.PermHomeworkSolve)).Get("/walkthrough", s.handleWalkthroughWS)

		r.Group(func(r chi.Router) {
			r.Use(timeout)

			r.With(
				auth.RequirePermission(models.PermHomeworkSolve),
				auth.RequireDailyLimit,
			).Post("/homework", s.handleHomework)

			r.Route("/catalog/sets", func(r chi.Router) {
				r.Use(auth.RequirePermission(models.PermCatalogRead))
				r.Get("/", s.handleListSets)
				r.Get("/{name}", s.handleGetSet)
				r.With(auth.RequireDailyLimit).Get("/{name}/problems/{code}/hints", s.handleCatalogProblemHints)
			})

			r.Get("/usage/me", s.handleMyUsage)
			r.With(auth.RequirePermission(models.PermUsageRead)).Get("/usage", s.handleUsageSummary)
		})
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
