package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/bigbuf/internal/config"
	apperrors "github.com/agbru/bigbuf/internal/errors"
	"github.com/agbru/bigbuf/internal/logging"
	"github.com/agbru/bigbuf/internal/service"
)

// DefaultMaxBuffers is the default limit on registered buffers when the
// caller does not configure one.
const DefaultMaxBuffers = 1024

// Server represents the HTTP server for the bigbuf API.
// It wraps the standard http.Server and adds application-specific
// configuration and graceful shutdown capabilities.
type Server struct {
	service        service.Service
	cfg            config.AppConfig
	httpServer     *http.Server
	logger         logging.Logger
	shutdownSignal chan os.Signal
	metrics        *Metrics
	timeouts       Timeouts
	maxBuffers     int
}

// NewServer creates a new Server instance with the given configuration.
// It initializes the HTTP server with timeouts and a request multiplexer.
//
// Parameters:
//   - cfg: The application configuration (port, default capacity, etc.).
//   - opts: Optional functional options for customizing the server
//     (e.g., WithLogger).
//
// Returns:
//   - *Server: A pointer to the initialized Server.
func NewServer(cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		cfg:            cfg,
		logger:         logging.NewLogger(os.Stdout, "server"), // Default unified logger
		shutdownSignal: make(chan os.Signal, 1),
		metrics:        NewMetrics(),
		timeouts:       DefaultServerTimeouts(),
		maxBuffers:     DefaultMaxBuffers,
	}

	// Apply any provided options
	for _, opt := range opts {
		opt(s)
	}

	// Initialize service if not provided
	if s.service == nil {
		s.service = service.NewBufferService(s.maxBuffers)
	}

	mux := http.NewServeMux()

	// Apply middleware chain: Logging -> Metrics -> Handler
	mux.HandleFunc("/buffer/create", s.wrapWithMiddleware(s.handleCreate))
	mux.HandleFunc("/buffer/op", s.wrapWithMiddleware(s.handleOp))
	mux.HandleFunc("/buffer/format", s.wrapWithMiddleware(s.handleFormat))
	mux.HandleFunc("/buffer/list", s.wrapWithMiddleware(s.handleList))
	mux.HandleFunc("/buffer/drop", s.wrapWithMiddleware(s.handleDrop))
	mux.HandleFunc("/health", s.wrapWithMiddleware(s.handleHealth))
	mux.HandleFunc("/metrics", s.wrapWithMiddleware(s.handleMetrics))

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}

	return s
}

// wrapWithMiddleware applies the full middleware chain to a handler.
func (s *Server) wrapWithMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	// Apply in reverse order: Logging -> Metrics -> Handler
	wrapped := s.metricsMiddleware(handler)
	wrapped = s.loggingMiddleware(wrapped)
	return wrapped
}

// Start initializes and starts the HTTP server.
// It listens for incoming requests on the configured port and handles system
// signals (SIGINT, SIGTERM) to ensure a graceful shutdown.
//
// Returns:
//   - error: An error if the server fails to start or shuts down unexpectedly.
func (s *Server) Start() error {
	// Setup signal handling for graceful shutdown
	signal.Notify(s.shutdownSignal, os.Interrupt, syscall.SIGTERM)

	// Channel for server startup errors
	errCh := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		s.logger.Printf("Starting server on %s\n", s.httpServer.Addr)
		s.logger.Printf("Default buffer capacity: %d digits\n", s.cfg.Capacity)
		s.logger.Println("Available endpoints:")
		s.logger.Println("  GET /buffer/create?name=<name>&capacity=<digits>&from=<decimal>")
		s.logger.Println("  GET /buffer/op?name=<name>&op=<operation>&d=<digit>&i=<index>&n=<value>")
		s.logger.Println("  GET /buffer/format?name=<name>")
		s.logger.Println("  GET /buffer/list")
		s.logger.Println("  DELETE /buffer/drop?name=<name>")
		s.logger.Println("  GET /health")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case <-s.shutdownSignal:
		s.logger.Println("Shutdown signal received, initiating graceful shutdown...")
	case err := <-errCh:
		return apperrors.NewServerError("server failed to start", err)
	}

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return apperrors.NewServerError("failed to gracefully shutdown server", err)
	}

	s.logger.Println("Server stopped gracefully")
	return nil
}
