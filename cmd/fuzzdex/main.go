package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/fuzzdex/internal/config"
	logpkg "github.com/kailas-cloud/fuzzdex/internal/logger"
	"github.com/kailas-cloud/fuzzdex/internal/metrics"
	chiTransport "github.com/kailas-cloud/fuzzdex/internal/transport/chi"
	"github.com/kailas-cloud/fuzzdex/internal/transport/googlebooks"
	"github.com/kailas-cloud/fuzzdex/internal/transport/openlibrary"
	healthuc "github.com/kailas-cloud/fuzzdex/internal/usecase/health"
	matchuc "github.com/kailas-cloud/fuzzdex/internal/usecase/match"
	searchuc "github.com/kailas-cloud/fuzzdex/internal/usecase/search"
	"github.com/kailas-cloud/fuzzdex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting fuzzdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
	)

	// Register provider metrics explicitly (no init())
	metrics.RegisterProviderMetrics()

	// Build provider registry — composition root
	providers := make(map[string]searchuc.Provider, len(cfg.Providers))
	checkers := make(map[string]healthuc.ProviderChecker, len(cfg.Providers))
	for name, provCfg := range cfg.Providers {
		switch name {
		case config.ProviderOpenLibrary:
			client := openlibrary.NewClient(&openlibrary.Config{
				BaseURL: provCfg.BaseURL,
				Timeout: time.Duration(provCfg.TimeoutSec) * time.Second,
				Logger:  logger,
			})
			providers[name] = client
			checkers[name] = client
		case config.ProviderGoogleBooks:
			client := googlebooks.NewClient(&googlebooks.Config{
				BaseURL: provCfg.BaseURL,
				APIKey:  provCfg.APIKey,
				Timeout: time.Duration(provCfg.TimeoutSec) * time.Second,
				Logger:  logger,
			})
			providers[name] = client
			checkers[name] = client
		default:
			logger.Fatal("Unknown provider", zap.String("provider", name))
		}
	}

	// Create use case services
	searchSvc := searchuc.New(providers).
		WithAlias("books", config.ProviderOpenLibrary)
	matchSvc := matchuc.New()
	healthSvc := healthuc.New(checkers)

	logger.Info("Providers registered", zap.Strings("sources", searchSvc.Sources()))

	// Create chi server
	server := chiTransport.NewServer(searchSvc, matchSvc, healthSvc, cfg.Search.MatchField, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
