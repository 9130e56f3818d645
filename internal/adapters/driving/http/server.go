package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driven"
	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	handler    http.Handler
	version    string
	appURL     string
	logger     *slog.Logger

	// Session resolution
	auth *AuthMiddleware

	// Services
	oauthService        driving.CalendarOAuthService
	channelService      driving.ChannelService
	integrationService  driving.IntegrationService
	calendarService     driving.CalendarService
	notificationService driving.NotificationService

	// Infrastructure
	db          Pinger // integration store health check
	redisClient Pinger // Redis health check (optional)
	metrics     http.Handler
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string

	// AppURL is the UI origin the OAuth callback redirects to.
	AppURL string

	CORSAllowedOrigins []string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:    "0.0.0.0",
		Port:    8080,
		Version: "dev",
		AppURL:  "http://localhost:3000",
	}
}

// Services bundles the driving ports the server exposes.
type Services struct {
	OAuth         driving.CalendarOAuthService
	Channel       driving.ChannelService
	Integrations  driving.IntegrationService
	Calendar      driving.CalendarService
	Notifications driving.NotificationService
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	verifier driven.TokenVerifier,
	services Services,
	db Pinger,
	redisClient Pinger, // can be nil
	metrics http.Handler, // can be nil
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		router:              http.NewServeMux(),
		version:             cfg.Version,
		appURL:              cfg.AppURL,
		logger:              logger,
		auth:                NewAuthMiddleware(verifier),
		oauthService:        services.OAuth,
		channelService:      services.Channel,
		integrationService:  services.Integrations,
		calendarService:     services.Calendar,
		notificationService: services.Notifications,
		db:                  db,
		redisClient:         redisClient,
		metrics:             metrics,
	}

	s.setupRoutes()

	s.handler = NewRecoveryMiddleware(logger).Handler(
		NewLoggingMiddleware(logger).Handler(
			NewCORSMiddleware(cfg.CORSAllowedOrigins).Handler(s.router)))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	authenticated := func(h http.HandlerFunc) http.Handler {
		return s.auth.Authenticate(h)
	}

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)
	s.router.HandleFunc("GET /swagger/doc.json", s.handleSwaggerDoc)
	if s.metrics != nil {
		s.router.Handle("GET /metrics", s.metrics)
	}

	// Calendar OAuth flow
	s.router.Handle("GET /api/auth/google", authenticated(s.handleGoogleAuthorize))
	// Callback is reached by a top-level redirect; the session is resolved best-effort
	s.router.HandleFunc("GET /api/auth/google/callback", s.handleGoogleCallback)

	// Messaging channel
	s.router.Handle("POST /api/telegram/verify", authenticated(s.handleTelegramVerify))
	s.router.Handle("POST /api/telegram/send", authenticated(s.handleTelegramSend))

	// Integration management
	s.router.Handle("GET /api/integrations", authenticated(s.handleListIntegrations))
	s.router.Handle("PUT /api/integrations/{provider}/settings", authenticated(s.handleUpdateIntegrationSettings))
	s.router.Handle("DELETE /api/integrations/{provider}", authenticated(s.handleDisconnectIntegration))

	// Calendar sync
	s.router.Handle("POST /api/calendar/interviews", authenticated(s.handleCreateInterviewEvent))
	s.router.Handle("POST /api/calendar/deadlines", authenticated(s.handleCreateDeadlineEvent))
	s.router.Handle("GET /api/calendar/events", authenticated(s.handleListEvents))
	s.router.Handle("GET /api/calendar/events/{id}", authenticated(s.handleGetEvent))
	s.router.Handle("PATCH /api/calendar/events/{id}", authenticated(s.handleUpdateEvent))
	s.router.Handle("DELETE /api/calendar/events/{id}", authenticated(s.handleDeleteEvent))

	// Notifications
	s.router.Handle("POST /api/notifications/interview", authenticated(s.handleInterviewReminder))
	s.router.Handle("POST /api/notifications/deadline", authenticated(s.handleDeadlineReminder))
	s.router.Handle("POST /api/notifications/status", authenticated(s.handleStatusChange))
}

// Handler returns the fully wrapped handler (used by tests)
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
