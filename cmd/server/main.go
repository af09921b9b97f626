// Package main starts the phrase-sort exercise HTTP service.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/phrase-sort-service/internal/cache"
	"github.com/SAP-F-2025/phrase-sort-service/internal/config"
	"github.com/SAP-F-2025/phrase-sort-service/internal/handlers"
	"github.com/SAP-F-2025/phrase-sort-service/internal/services"
	"github.com/SAP-F-2025/phrase-sort-service/internal/utils"
	"github.com/SAP-F-2025/phrase-sort-service/internal/validator"
	"github.com/SAP-F-2025/phrase-sort-service/pkg"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := utils.NewLogger(cfg.Environment)

	sessionCache, closeCache, err := newSessionCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	publisher, err := cfg.Events.CreateEventPublisher(logger.Slog())
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", "error", err)
		}
	}()

	v := validator.New()
	serviceManager := services.NewServiceManager(sessionCache, publisher, logger.Slog(), v, services.SessionServiceConfig{
		TTL: cfg.SessionTTL,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), utils.LoggerMiddleware(logger), utils.ContextLogger(logger))
	handlers.NewHandlerManager(serviceManager, v, logger).SetupRoutes(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment, "session_store", cfg.SessionStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newSessionCache(ctx context.Context, cfg *config.Config, logger utils.Logger) (cache.CacheService, func(), error) {
	if cfg.SessionStore != config.SessionStoreRedis {
		logger.Info("Using in-memory session store")
		return cache.NewMemoryCache(), func() {}, nil
	}

	client, err := pkg.NewRedisClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Using redis session store", "ttl", cfg.SessionTTL.String())

	return cache.NewRedisCache(client, logger.Slog()), func() {
		if err := client.Close(); err != nil {
			logger.Error("Failed to close redis client", "error", err)
		}
	}, nil
}
