// Package api provides the HTTP API server and handlers for Scripture Sanctuary.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/scripturesanctuary/sanctuary-server/internal/catalog"
	"github.com/scripturesanctuary/sanctuary-server/internal/config"
	"github.com/scripturesanctuary/sanctuary-server/internal/metrics"
	"github.com/scripturesanctuary/sanctuary-server/internal/store"
)

// Version is reported in the OpenAPI document.
const Version = "1.0.0"

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           store.Store
	catalog         *catalog.Catalog
	services        *Services
	metrics         *metrics.Metrics
	router          *chi.Mux
	api             huma.API
	logger          *slog.Logger
	authRateLimiter *RateLimiter
}

// NewServer creates the HTTP server with all routes configured.
func NewServer(st store.Store, cat *catalog.Catalog, services *Services, m *metrics.Metrics, cfg *config.Config, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	if m != nil {
		router.Use(m.Middleware)
	}
	if len(cfg.Server.CORSOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.Server.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         300,
		}))
	}

	humaConfig := huma.DefaultConfig("Scripture Sanctuary API", Version)
	humaConfig.Info.Description = "Look up Bible passages, save favorites and organize them with tags."
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:           st,
		catalog:         cat,
		services:        services,
		metrics:         m,
		router:          router,
		api:             api,
		logger:          logger,
		authRateLimiter: NewRateLimiter(cfg.Auth.LoginAttemptsPerMinute, time.Minute, cfg.Auth.LoginBurst),
	}

	s.registerRoutes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, mostly for tests and OpenAPI export.
func (s *Server) API() huma.API {
	return s.api
}

// Close releases background resources.
func (s *Server) Close() {
	s.authRateLimiter.Stop()
}

func (s *Server) registerRoutes() {
	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics.Handler())
	}

	s.registerHealthRoutes()
	s.registerCatalogRoutes()
	s.registerSearchRoutes()
	s.registerAuthRoutes()
	s.registerUserRoutes()
	s.registerFavoriteRoutes()
	s.registerTagRoutes()
}
