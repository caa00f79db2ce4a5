package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/txlens/base-tx-analyzer/internal/config"
	"github.com/txlens/base-tx-analyzer/pkg/interfaces"
	"github.com/txlens/base-tx-analyzer/pkg/metrics"
	"github.com/txlens/base-tx-analyzer/pkg/registry"
)

const (
	rateLimiterSweepInterval = time.Minute
	rateLimiterIdleTimeout   = 10 * time.Minute
)

// Server exposes the analysis pipeline over HTTP
type Server struct {
	config      *config.Config
	server      *http.Server
	handlers    *Handlers
	rateLimiter *RateLimiter
	stream      *StreamServer
	cancel      context.CancelFunc
	logger      *zap.Logger
}

// NewServer creates the API server
func NewServer(
	cfg *config.Config,
	analyzer interfaces.Analyzer,
	reg *registry.Registry,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	stream := NewStreamServer(logger)
	handlers := NewHandlers(analyzer, reg, stream, cfg.Analyzer.MaxBatchSize, logger)

	s := &Server{
		config:      cfg,
		handlers:    handlers,
		rateLimiter: NewRateLimiter(cfg.Server.RateLimitRPS),
		stream:      stream,
		logger:      logger,
	}
	s.setupServer()
	return s
}

// Start begins serving. It returns once the listener goroutine is running.
// The stream hub and the rate limiter sweeper run on a server-owned context
// that lives until Stop; the start context only bounds startup itself.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting api server",
		zap.String("host", s.config.Server.Host),
		zap.Int("port", s.config.Server.Port))

	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.stream.Run(runCtx)
	go s.rateLimiterCleanup(runCtx)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("api server error", zap.Error(err))
		}
	}()
	return nil
}

// Stop shuts the server down gracefully
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping api server")
	if s.cancel != nil {
		s.cancel()
	}
	s.stream.Shutdown()
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown api server: %w", err)
	}
	return nil
}

// rateLimiterCleanup periodically drops idle client buckets so the per-IP
// map does not grow without bound
func (s *Server) rateLimiterCleanup(ctx context.Context) {
	ticker := time.NewTicker(rateLimiterSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.rateLimiter.Cleanup(rateLimiterIdleTimeout)
		}
	}
}

// Router returns the configured HTTP handler, used by tests
func (s *Server) Router() http.Handler {
	return s.server.Handler
}

func (s *Server) setupServer() {
	router := mux.NewRouter()

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	router.Use(s.loggingMiddleware)
	router.Use(s.rateLimiter.Middleware)

	router.HandleFunc("/health", s.handlers.Health).Methods("GET")
	router.Handle("/metrics", metrics.PrometheusHandler()).Methods("GET")
	router.HandleFunc("/ws", s.stream.HandleWebSocket)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/transactions/{hash}", s.handlers.GetTransactionAnalysis).Methods("GET")
	api.HandleFunc("/transactions/batch", s.handlers.PostBatchAnalysis).Methods("POST")
	api.HandleFunc("/registry/{category}", s.handlers.GetRegistryEntries).Methods("GET")

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		Handler:      c.Handler(router),
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}
