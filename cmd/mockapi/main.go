package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/boddenberg/digtecnico-client-go/internal/config"
	"github.com/boddenberg/digtecnico-client-go/internal/handler"
	"github.com/boddenberg/digtecnico-client-go/internal/infra/observability"

	"go.uber.org/zap"
)

func main() {
	// --- Config ---
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Mock.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("login_shape", cfg.Mock.LoginShape),
		zap.Duration("access_ttl", cfg.Mock.AccessTTL),
		zap.Duration("refresh_ttl", cfg.Mock.RefreshTTL),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "digtecnico-mockapi")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Backend ---
	backend, err := handler.NewBackend(cfg.Mock, logger)
	if err != nil {
		logger.Fatal("failed to seed mock backend", zap.Error(err))
	}
	defer backend.Close()

	router := handler.NewRouter(backend, observability.NewMetrics(), logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Mock.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("mock backend starting",
			zap.Int("port", cfg.Mock.Port),
			zap.String("base_url", fmt.Sprintf("http://localhost:%d/api/mobile", cfg.Mock.Port)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
