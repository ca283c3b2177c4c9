// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/configd/internal/auth/http"
	authService "github.com/allisson/configd/internal/auth/service"
	"github.com/allisson/configd/internal/config"
	"github.com/allisson/configd/internal/metrics"
	secretsHTTP "github.com/allisson/configd/internal/secrets/http"
	configHTTP "github.com/allisson/configd/internal/serviceconfig/http"
)

// Pinger reports whether a storage backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Pingers checks several storage backends in order and returns the first failure.
type Pingers []Pinger

// Ping implements Pinger.
func (p Pingers) Ping(ctx context.Context) error {
	for _, pinger := range p {
		if err := pinger.Ping(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Server represents the HTTP server
type Server struct {
	storage     Pinger
	serviceName string
	server      *http.Server
	router      *gin.Engine
	logger      *slog.Logger
}

// NewServer creates a new HTTP server. storage backs the readiness probe and may be nil,
// in which case the server never reports ready.
func NewServer(
	storage Pinger,
	host string,
	port int,
	serviceName string,
	logger *slog.Logger,
) *Server {
	return &Server{
		storage:     storage,
		serviceName: serviceName,
		logger:      logger,
		server:      newHTTPServer(host, port, nil),
	}
}

// SetupRouter configures the Gin router with all routes and middleware.
// metricsProvider may be nil when metrics are disabled.
func (s *Server) SetupRouter(
	cfg *config.Config,
	configHandler *configHTTP.ConfigHandler,
	secretHandler *secretsHTTP.SecretHandler,
	tokenService authService.TokenService,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsEnabled && metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	// Health and readiness endpoints (outside API versioning)
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/api/v1")
	{
		services := v1.Group("/services")
		{
			services.GET("", configHandler.ListServicesHandler)
			services.GET("/:name/config", configHandler.GetConfigHandler)
			services.POST("/:name/config", configHandler.SetValueHandler)
			services.GET("/:name/config/:path", configHandler.GetValueHandler)
		}

		secrets := v1.Group("/secrets")
		{
			secrets.GET("", secretHandler.ListHandler)
			secrets.GET("/:service", secretHandler.ListServiceHandler)
			secrets.POST("/:service/:key", secretHandler.SetHandler)
			secrets.DELETE("/:service/:key", secretHandler.DeleteHandler)
			secrets.GET("/:service/:key/value", s.rawValueMiddleware(cfg, tokenService, secretHandler.GetValueHandler)...)
		}
	}

	s.router = router
}

// rawValueMiddleware builds the handler chain guarding the plaintext secret endpoint.
func (s *Server) rawValueMiddleware(
	cfg *config.Config,
	tokenService authService.TokenService,
	handler gin.HandlerFunc,
) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, 3)

	if cfg.RateLimitEnabled {
		chain = append(chain, authHTTP.RateLimitMiddleware(
			cfg.RateLimitRequestsPerSec,
			cfg.RateLimitBurst,
			s.logger,
		))
	}

	if cfg.RawValueAuthEnabled {
		chain = append(chain, authHTTP.BearerTokenMiddleware(cfg.RawValueTokenHash, tokenService, s.logger))
	} else {
		s.logger.Warn("raw secret value endpoint is not authenticated")
	}

	return append(chain, handler)
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router
	return listen(s.server, s.logger, "http server")
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return shutdown(ctx, s.server, s.logger, "http server")
}

// healthHandler is a liveness probe.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": s.serviceName,
	})
}

// readinessHandler reports whether the storage directories are usable.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"storage": "error"},
		})
		return
	}

	if err := s.storage.Ping(ctx); err != nil {
		s.logger.Error("storage readiness check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"storage": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"storage": "ok"},
	})
}
