// Package http exposes the prediction service over HTTP.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Server wraps the stdlib server with the handler chain and lifecycle.
type Server struct {
	server *http.Server
	config ServerConfig
	logger *zap.Logger
}

// ServerConfig holds the HTTP surface settings.
type ServerConfig struct {
	Port           int
	Timeout        time.Duration
	AllowedOrigins []string
}

// DefaultServerConfig mirrors the original deployment defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:           8000,
		Timeout:        30 * time.Second,
		AllowedOrigins: []string{"*"},
	}
}

// NewServer builds the server around an already-wired Handler.
func NewServer(config ServerConfig, handler *Handler, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := http.NewServeMux()
	handler.Register(mux)

	chain := Chain(
		RecoveryMiddleware(logger),
		LoggerMiddleware(logger),
		SecurityHeadersMiddleware,
		CORSMiddleware(config.AllowedOrigins),
		TimeoutMiddleware(config.Timeout),
	)

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", config.Port),
			Handler:      chain(mux),
			ReadTimeout:  config.Timeout,
			WriteTimeout: config.Timeout,
			IdleTimeout:  120 * time.Second,
		},
		config: config,
		logger: logger,
	}
}

// Start blocks serving requests until Stop or a listen failure.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop drains in-flight requests and shuts the server down.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}
