package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"intake_gateway/internal/catalog"
	"intake_gateway/internal/events"
	apphttp "intake_gateway/internal/http"
	"intake_gateway/internal/http/router"
	"intake_gateway/internal/upstream"
	"intake_gateway/internal/wizard"
	"intake_gateway/platform/config"
	"intake_gateway/platform/logger"
	"intake_gateway/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting gateway", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	opts, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		log.Error("invalid REDIS_URL", "error", err)
		panic("invalid REDIS_URL: " + err.Error())
	}
	rdb := redis.NewClient(opts)
	defer rdb.Close()

	if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return rdb.Ping(pingCtx).Err()
	}); err != nil {
		log.Error("failed to connect to redis", "error", err)
		panic("failed to connect to redis: " + err.Error())
	}
	log.Info("redis connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// Tracker backend client
	client := upstream.New(cfg, log)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	catalogModule := catalog.NewModule(client, rdb, cfg, log)
	wizardModule := wizard.NewModule(client, rdb, cfg, catalogModule.Service(), eventBus, val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   redisHealth{rdb},
		EventBus: eventBus,
		Modules: []apphttp.Module{
			wizardModule,
			catalogModule,
		},
	}

	engine := router.New(app)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("gateway listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// redisHealth adapts the Redis client to the router's readiness check.
type redisHealth struct {
	rdb *redis.Client
}

func (h redisHealth) Ping(ctx context.Context) error {
	return h.rdb.Ping(ctx).Err()
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return fmt.Errorf("%s: %w", name, lastErr)
}
