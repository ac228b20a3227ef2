// Package server wires configuration into the function registry, the
// configured backend and the HTTP routes, and runs the listener with
// graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"function-server/api/handlers"
	"function-server/config"
	"function-server/llm/backends"
	"function-server/llm/backends/ollama"
	"function-server/llm/backends/openaiapi"
	"function-server/llm/backends/vllm"
	"function-server/llm/functions"
	"function-server/llm/toolfmt"
)

// Server hosts the function-calling HTTP service.
type Server struct {
	cfg       *config.Config
	handler   http.Handler
	Backends  *backends.Registry
	Functions *functions.Registry
}

// New creates a server from configuration: the function registry is
// populated and frozen, the backend selected by config is registered, and
// routes plus middleware are assembled.
func New(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	registry := functions.NewRegistry()
	specs, err := cfg.Specs()
	if err != nil {
		return nil, fmt.Errorf("failed to load function specs: %w", err)
	}
	for _, spec := range specs {
		if err := registry.Register(spec); err != nil {
			return nil, fmt.Errorf("failed to register function: %w", err)
		}
	}
	registry.Freeze()

	backend, err := buildBackend(cfg.Backend)
	if err != nil {
		return nil, err
	}
	backendRegistry := backends.NewRegistry()
	backendRegistry.Register(backend)

	s := &Server{
		cfg:       cfg,
		Backends:  backendRegistry,
		Functions: registry,
	}
	s.handler = s.routes()
	return s, nil
}

// buildBackend instantiates the backend variant selected by configuration.
func buildBackend(cfg config.BackendConfig) (backends.Backend, error) {
	style := toolfmt.Style(cfg.ToolFormat)
	switch cfg.Name {
	case "ollama":
		return ollama.New(ollama.Config{
			BaseURL:   cfg.BaseURL,
			Model:     cfg.Model,
			ToolStyle: style,
			Timeout:   cfg.Timeout(),
			RetryMax:  cfg.RetryMax,
		}), nil
	case "vllm":
		return vllm.New(vllm.Config{
			BaseURL:   cfg.BaseURL,
			Model:     cfg.Model,
			APIKey:    cfg.APIKey,
			ToolStyle: style,
			Timeout:   cfg.Timeout(),
			RetryMax:  cfg.RetryMax,
		}), nil
	case "openai":
		return openaiapi.New(openaiapi.Config{
			APIKey:    cfg.APIKey,
			BaseURL:   cfg.BaseURL,
			Model:     cfg.Model,
			ToolStyle: style,
			Timeout:   cfg.Timeout(),
		}), nil
	default:
		return nil, fmt.Errorf("unsupported backend: %s", cfg.Name)
	}
}

func (s *Server) routes() http.Handler {
	healthHandler := handlers.NewHealthHandler()
	functionsHandler := handlers.NewFunctionsHandler(s.Functions)
	modelsHandler := handlers.NewModelsHandler(s.Backends)
	chatHandler := handlers.NewChatHandler(s.Backends, s.Functions)

	r := mux.NewRouter()
	r.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	r.HandleFunc("/health/ready", healthHandler.Ready).Methods(http.MethodGet)
	r.HandleFunc("/health/live", healthHandler.Live).Methods(http.MethodGet)
	r.HandleFunc("/v1/functions", functionsHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/v1/models", modelsHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/v1/chat/completions", chatHandler.ChatCompletions).Methods(http.MethodPost)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         86400,
	})

	return corsHandler.Handler(loggingMiddleware(r))
}

// loggingMiddleware logs one line per request with method, path, status and
// duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Handler returns the assembled HTTP handler (for tests and embedding).
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start runs the HTTP server and blocks until a shutdown signal or server
// error. Outstanding requests get the configured drain window.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Address,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting function-calling server", "address", s.cfg.Server.Address, "backend", s.cfg.Backend.Name)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-quit:
		slog.Info("shutting down", "signal", sig.String())
	}

	drain := time.Duration(s.cfg.Server.ShutdownSeconds) * time.Second
	if drain == 0 {
		drain = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), drain)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	slog.Info("server exited")
	return nil
}
