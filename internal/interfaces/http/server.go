// internal/interfaces/http/server.go
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stephenombuya/Velixa/internal/config"
	"github.com/stephenombuya/Velixa/internal/interfaces/http/middleware"
	"github.com/stephenombuya/Velixa/internal/interfaces/http/response"
	"github.com/stephenombuya/Velixa/internal/interfaces/http/routes"
	"github.com/stephenombuya/Velixa/internal/pkg/auth"
	"github.com/stephenombuya/Velixa/internal/pkg/metrics"
)

const maxRequestBody = 10 << 20 // 10MB

// HealthChecker is a dependency probed by /health
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Options describes what one server process exposes
type Options struct {
	Name        string
	Services    routes.Services
	Checks      map[string]HealthChecker
	RedisClient *redis.Client
	// Fallback serves requests no route matched; the gateway proxies them upstream
	Fallback gin.HandlerFunc
}

// Server represents the HTTP server
type Server struct {
	config     *config.Config
	logger     *logrus.Logger
	options    Options
	metrics    *metrics.ServerMetrics
	gin        *gin.Engine
	httpServer *http.Server
	startedAt  time.Time
}

// NewServer creates a new HTTP server with middleware and routes installed
func NewServer(cfg *config.Config, logger *logrus.Logger, options Options) *Server {
	s := &Server{
		config:    cfg,
		logger:    logger,
		options:   options,
		metrics:   metrics.NewServerMetrics(options.Name),
		gin:       gin.New(),
		startedAt: time.Now(),
	}

	if len(cfg.Security.TrustedProxies) > 0 {
		if err := s.gin.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
			logger.WithError(err).Warn("Ignoring invalid trusted proxies")
		}
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Handler returns the router, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.gin
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.gin,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	s.logger.WithFields(logrus.Fields{
		"service": s.options.Name,
		"port":    s.config.Server.Port,
	}).Info("HTTP server starting")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Shutting down HTTP server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info("HTTP server stopped gracefully")
	return nil
}

// setupMiddleware configures all middleware for the server
func (s *Server) setupMiddleware() {
	s.gin.Use(gin.Recovery())
	s.gin.Use(middleware.RequestID())
	s.gin.Use(middleware.Logger(s.logger))
	s.gin.Use(middleware.Metrics(s.metrics))
	s.gin.Use(middleware.CORS(s.config))
	s.gin.Use(middleware.SecurityHeaders())
	s.gin.Use(middleware.RateLimit(s.config, s.options.RedisClient, s.logger))
	s.gin.Use(middleware.RequestSizeLimit(maxRequestBody))
	s.gin.Use(middleware.Timeout(s.config.Server.RequestTimeout))
}

// setupRoutes configures all routes for the server
func (s *Server) setupRoutes() {
	s.gin.GET("/health", s.healthCheck)
	s.gin.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	if s.options.Fallback != nil {
		s.gin.NoRoute(s.options.Fallback)
	} else {
		s.gin.NoRoute(func(c *gin.Context) {
			response.Error(c, http.StatusNotFound, "Resource not found: "+c.Request.URL.Path)
		})
	}

	var protect gin.HandlerFunc
	if s.config.Security.AuthRequired {
		protect = middleware.AuthMiddleware(auth.NewJWTManager(s.config))
	}

	routes.SetupRoutes(s.gin.Group("/api"), s.options.Services, protect)
}

// healthCheck handles health check requests
func (s *Server) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	checks := gin.H{}
	healthy := true
	for name, checker := range s.options.Checks {
		if err := checker.Health(ctx); err != nil {
			s.logger.WithError(err).WithField("dependency", name).Warn("Health check failed")
			checks[name] = "unhealthy"
			healthy = false
			continue
		}
		checks[name] = "healthy"
	}

	status, code := "healthy", http.StatusOK
	if !healthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":      status,
		"service":     s.options.Name,
		"checks":      checks,
		"timestamp":   time.Now().UTC(),
		"uptime":      time.Since(s.startedAt).Round(time.Second).String(),
		"version":     s.config.App.Version,
		"environment": s.config.App.Environment,
	})
}
