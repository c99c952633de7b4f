// Package api provides the HTTP API server and handlers for the StickerVault application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/stickervault/stickervault-server/internal/config"
	"github.com/stickervault/stickervault-server/internal/ratelimit"
	"github.com/stickervault/stickervault-server/internal/service"
	"github.com/stickervault/stickervault-server/internal/upload"
	"github.com/stickervault/stickervault-server/internal/validation"
)

// Version is the API version reported in envelopes and health checks.
const Version = "1.0.0"

// Endpoint names used as rate limit keys.
const (
	EndpointUpload = "upload"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	stickerService *service.StickerService
	seriesService  *service.SeriesService
	uploadLimiter  *ratelimit.Limiter
	validator      *validation.Validator
	uploadLimits   upload.Limits
	manifestMax    int64
	router         *chi.Mux
	api            huma.API
	logger         *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, stickerService *service.StickerService, seriesService *service.SeriesService, uploadLimiter *ratelimit.Limiter, logger *slog.Logger) *Server {
	s := &Server{
		stickerService: stickerService,
		seriesService:  seriesService,
		uploadLimiter:  uploadLimiter,
		validator:      validation.New(),
		uploadLimits: upload.Limits{
			MinFiles:     cfg.Upload.MinFiles,
			MaxFiles:     cfg.Upload.MaxFiles,
			MaxFileBytes: cfg.Upload.FileMaxBytes,
		},
		manifestMax: cfg.Upload.ManifestMaxBytes,
		router:      chi.NewRouter(),
		logger:      logger,
	}

	// Chi requires the full middleware stack before any route is
	// mounted, and creating the huma API registers the docs and openapi
	// routes, so the adapter must come after setupMiddleware.
	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("StickerVault API", Version)
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "If-None-Match"},
		MaxAge:         300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Multipart upload and binary streaming use chi directly; everything
	// else goes through huma.
	s.router.With(s.rateLimit(EndpointUpload)).Post("/stickers/upload", s.handleUpload)
	s.router.Get("/stickers/{seriesID}/{stickerID}", s.handleServeSticker)

	s.registerHealthRoutes()
	s.registerStickerRoutes()
	s.registerSeriesRoutes()
	s.registerRateLimitRoutes()
}

// NewHTTPServer wraps the handler in an http.Server with the configured
// timeouts.
func NewHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
}

// stickerCacheControl is the cache policy for served sticker images.
// Content-addressed objects never change, so clients may cache forever.
const stickerCacheControl = "public, max-age=31536000, immutable"
