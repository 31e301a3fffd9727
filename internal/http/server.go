// Package http provides the HTTP server and route wiring.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/serviceauth/internal/auth/http"
	authUsecase "github.com/allisson/serviceauth/internal/auth/usecase"
	"github.com/allisson/serviceauth/internal/config"
	"github.com/allisson/serviceauth/internal/metrics"
	serviceHTTP "github.com/allisson/serviceauth/internal/service/http"
)

// Server represents the HTTP server.
type Server struct {
	server          *http.Server
	cfg             *config.Config
	db              *sql.DB
	verifyUseCase   authUsecase.VerifyUseCase
	verifyHandler   *authHTTP.VerifyHandler
	signInHandler   *authHTTP.SignInHandler
	serviceHandler  *serviceHTTP.ServiceHandler
	metricsProvider *metrics.Provider
	logger          *slog.Logger
}

// NewServer creates a new HTTP server with all routes registered.
func NewServer(
	cfg *config.Config,
	db *sql.DB,
	verifyUseCase authUsecase.VerifyUseCase,
	verifyHandler *authHTTP.VerifyHandler,
	signInHandler *authHTTP.SignInHandler,
	serviceHandler *serviceHTTP.ServiceHandler,
	metricsProvider *metrics.Provider,
	logger *slog.Logger,
) *Server {
	s := &Server{
		cfg:             cfg,
		db:              db,
		verifyUseCase:   verifyUseCase,
		verifyHandler:   verifyHandler,
		signInHandler:   signInHandler,
		serviceHandler:  serviceHandler,
		metricsProvider: metricsProvider,
		logger:          logger,
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:      s.setupRouter(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRouter builds the gin engine with middleware and routes.
func (s *Server) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(s.cfg.CORSEnabled, s.cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if s.metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(s.metricsProvider.MeterProvider(), s.cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	serviceAuth := authHTTP.ServiceAuthMiddleware(s.verifyUseCase, s.logger)
	adminOnly := authHTTP.AdminOnlyMiddleware(s.cfg.AdminServiceName, s.logger)

	v1 := router.Group("/v1")

	// Verification and sign-in share the verify tier. The limiter runs
	// before authentication so unauthenticated floods cannot saturate
	// Argon2id hashing.
	authGroup := v1.Group("/auth")
	authGroup.Use(s.rateLimit(s.cfg.RateLimitVerifyRequestsPerSec, s.cfg.RateLimitVerifyBurst))
	authGroup.POST("/verify", s.verifyHandler.VerifyServiceHandler)
	authGroup.POST("/signin", serviceAuth, s.signInHandler.SignInUserHandler)

	// Administrative operations require an authenticated admin service.
	servicesGroup := v1.Group("/services")
	servicesGroup.Use(serviceAuth, adminOnly)
	servicesGroup.POST(
		"",
		s.rateLimit(s.cfg.RateLimitAdminRequestsPerSec, s.cfg.RateLimitAdminBurst),
		s.serviceHandler.CreateServiceHandler,
	)
	servicesGroup.PUT(
		"/:id/permissions",
		s.rateLimit(s.cfg.RateLimitAdminRequestsPerSec, s.cfg.RateLimitAdminBurst),
		s.serviceHandler.ReplacePermissionsHandler,
	)
	servicesGroup.POST(
		"/:id/rotate-key",
		s.rateLimit(s.cfg.RateLimitRotateRequestsPerSec, s.cfg.RateLimitRotateBurst),
		s.serviceHandler.RotateKeyHandler,
	)

	return router
}

// rateLimit returns a rate limiting middleware for the given tier, or a
// no-op handler when rate limiting is disabled.
func (s *Server) rateLimit(rps float64, burst int) gin.HandlerFunc {
	if !s.cfg.RateLimitEnabled {
		return func(c *gin.Context) { c.Next() }
	}
	return authHTTP.RateLimitMiddleware(rps, burst, s.logger)
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can reach its database.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}

	if s.db == nil {
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Error("readiness check failed", slog.Any("error", err))
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
