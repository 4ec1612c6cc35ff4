// Package server provides the HTTP server for the PidginPal chat relay.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"pidginpal-hq/relay/pkg/config"
	"pidginpal-hq/relay/pkg/proxy/handlers"
	"pidginpal-hq/relay/pkg/proxy/middleware"
	"pidginpal-hq/relay/pkg/telemetry/health"
	"pidginpal-hq/relay/pkg/telemetry/metrics"
	"pidginpal-hq/relay/pkg/telemetry/tracing"
)

// Dependencies are the components the server routes requests to.
type Dependencies struct {
	// Relay handles chat requests. Required.
	Relay handlers.ChatRelay

	// Provider reports provider health at /health/provider. Optional.
	Provider handlers.HealthReporter

	// Checker serves /health and /ready. A checker with no checks is
	// created when nil.
	Checker *health.Checker

	// Metrics is served at the configured metrics path. Optional.
	Metrics *metrics.Collector

	// Version is reported at /version.
	Version health.VersionInfo
}

// Server is the HTTP server for the chat relay.
type Server struct {
	config       *config.Config
	deps         Dependencies
	httpServer   *http.Server
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
	addr         net.Addr
}

// NewServer creates a new relay server. It returns an error if no relay is
// supplied.
func NewServer(cfg *config.Config, deps Dependencies) (*Server, error) {
	if deps.Relay == nil {
		return nil, errors.New("server: relay is required")
	}
	if deps.Checker == nil {
		deps.Checker = health.New(0)
	}

	return &Server{
		config:       cfg,
		deps:         deps,
		shutdownChan: make(chan struct{}),
	}, nil
}

// Start listens on the configured address and serves until ctx is
// cancelled, Stop is called, or the listener fails. A clean stop returns
// the result of Shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}

	proxyCfg := &s.config.Proxy
	ln, err := net.Listen("tcp", proxyCfg.ListenAddress)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to listen on %s: %w", proxyCfg.ListenAddress, err)
	}

	s.httpServer = &http.Server{
		Handler:        s.setupRoutes(),
		ReadTimeout:    proxyCfg.ReadTimeout,
		WriteTimeout:   proxyCfg.WriteTimeout,
		IdleTimeout:    proxyCfg.IdleTimeout,
		MaxHeaderBytes: proxyCfg.MaxHeaderBytes,
		BaseContext:    func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
	s.addr = ln.Addr()
	s.isRunning = true
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting relay server",
			"address", ln.Addr().String(),
			"chat_path", proxyCfg.ChatPath,
		)

		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
		return err
	case <-s.shutdownChan:
		slog.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Stop asks a running Start to shut down. It is safe to call more than once.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.shutdownChan:
	default:
		close(s.shutdownChan)
	}
}

// Shutdown gracefully shuts down the server, waiting up to the configured
// shutdown timeout for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.RLock()
		running := s.isRunning
		s.mu.RUnlock()
		if !running {
			return
		}

		timeout := s.config.Proxy.ShutdownTimeout
		slog.Info("initiating graceful shutdown", "timeout", timeout.String())

		shutdownCtx := ctx
		if timeout > 0 {
			var cancel context.CancelFunc
			shutdownCtx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("error during server shutdown", "error", err)
			shutdownErr = fmt.Errorf("server shutdown error: %w", err)
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("relay server stopped")
	})

	return shutdownErr
}

// setupRoutes configures HTTP routes and the middleware chain.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()
	proxyCfg := &s.config.Proxy

	maxBody := proxyCfg.MaxBodyBytes
	mux.Handle(proxyCfg.ChatPath, handlers.NewChatHandler(s.deps.Relay, maxBody, s.deps.Metrics))

	health.Register(mux, s.deps.Checker, s.deps.Version)
	if s.deps.Provider != nil {
		mux.Handle("/health/provider", handlers.NewProviderHealthHandler(s.deps.Provider, s.deps.Metrics))
	}

	metricsCfg := s.config.Telemetry.Metrics
	if s.deps.Metrics != nil && metricsCfg.IsEnabled() && metricsCfg.Path != "" {
		mux.Handle(metricsCfg.Path, s.deps.Metrics.Handler())
	}

	var handler http.Handler = mux
	handler = middleware.CORSMiddleware(proxyCfg.CORS)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = tracing.HTTPMiddleware(handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.RecoveryMiddleware(handler)

	return handler
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Addr returns the address the server is listening on, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

// Handler returns the configured HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}
