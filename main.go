package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	appLogger "github.com/FACorreiaa/go-travel-recommendations/app/logger"
	"github.com/FACorreiaa/go-travel-recommendations/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-recommendations/app/tracer"
	"github.com/FACorreiaa/go-travel-recommendations/config"
	"github.com/FACorreiaa/go-travel-recommendations/internal/container"
	"github.com/FACorreiaa/go-travel-recommendations/internal/router"
)

// @title           Travel Recommendations API
// @version         1.0
// @description     Travel recommendations backed by Gemini, Unsplash and OpenCage with a JSON-lines travel log.
// @host            localhost:8000
// @BasePath        /
func main() {
	// Use standard log until slog is configured
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Observability ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	providers, err := tracer.InitTracingAndMetrics(registry)
	if err != nil {
		logger.Error("Failed to initialize tracing and metrics", slog.Any("error", err))
		os.Exit(1)
	}
	metrics.InitAppMetrics()

	// --- Dependencies ---
	c, err := container.NewContainer(ctx, &cfg, logger)
	if err != nil {
		logger.Error("Failed to build application container", slog.Any("error", err))
		os.Exit(1)
	}
	defer c.Close()

	mainRouter := router.SetupRouter(&router.Config{
		TravelHandler: c.TravelHandler,
		WebHandler:    c.WebHandler,
	})

	timeout := cfg.Server.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:    serverAddress,
		Handler: newHTTPHandler(mainRouter, logger, timeout),
		// LLM calls dominate request latency
		ReadTimeout:  10 * time.Second,
		WriteTimeout: timeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	var metricsSrv *http.Server
	if cfg.Handlers.Prometheus.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", providers.MetricsHandler)
		metricsSrv = &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.Handlers.Prometheus.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("Starting metrics server", slog.String("address", metricsSrv.Addr))
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics server error", slog.Any("error", err))
			}
		}()
	}

	go func() {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Metrics server shutdown failed", slog.Any("error", err))
		}
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		logger.Error("Telemetry shutdown failed", slog.Any("error", err))
	}

	logger.Info("Application shut down complete.")
}

// newHTTPHandler wraps the application routes in the server-wide middleware stack.
func newHTTPHandler(routes http.Handler, logger *slog.Logger, timeout time.Duration) http.Handler {
	r := chi.NewMux()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appLogger.StructuredLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Compress(5, "application/json", "text/html"))
	r.Mount("/", routes)
	return r
}

// setupLogger configures and returns the application logger.
func setupLogger() *slog.Logger {
	env := os.Getenv("APP_ENV")
	if env == "development" || env == "" {
		return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
