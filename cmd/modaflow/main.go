package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/modaflow/backend/internal/adapter/gemini"
	mfhttp "github.com/modaflow/backend/internal/adapter/http"
	mfnats "github.com/modaflow/backend/internal/adapter/nats"
	"github.com/modaflow/backend/internal/adapter/otel"
	"github.com/modaflow/backend/internal/adapter/postgres"
	"github.com/modaflow/backend/internal/adapter/redis"
	"github.com/modaflow/backend/internal/adapter/ristretto"
	"github.com/modaflow/backend/internal/adapter/ws"
	"github.com/modaflow/backend/internal/config"
	"github.com/modaflow/backend/internal/logger"
	"github.com/modaflow/backend/internal/middleware"
	"github.com/modaflow/backend/internal/port/idempotency"
	"github.com/modaflow/backend/internal/port/messagequeue"
	"github.com/modaflow/backend/internal/service"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "admin" {
		if err := runAdmin(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	slog.SetDefault(logger.New(cfg.Logging))
	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"pg_max_conns", cfg.Postgres.MaxConns,
	)

	ctx := context.Background()

	// --- Telemetry ---
	otelShutdown, err := otel.Setup(ctx, cfg.Otel, cfg.Logging.Service)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = otelShutdown(shutdownCtx)
	}()

	var metrics *otel.Metrics
	if cfg.Otel.Endpoint != "" {
		metrics, err = otel.NewMetrics()
		if err != nil {
			return fmt.Errorf("otel metrics: %w", err)
		}
	}

	// --- Infrastructure ---

	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()
	slog.Info("postgres connected")

	if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	slog.Info("migrations applied")

	store := postgres.NewStore(pool)

	// Storefront cache
	l1, err := ristretto.New(cfg.Cache.MaxSizeMB << 20)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer l1.Close()
	storefrontCache := service.NewStorefrontCache(l1, cfg.Cache.TTL)

	// Redis idempotency store. Checkout works without it; retried
	// submissions just lose dedup.
	var idemStore idempotency.Store
	if cfg.Redis.Addr != "" {
		rs, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			slog.Warn("redis unavailable, checkout idempotency disabled", "error", err)
		} else {
			defer func() { _ = rs.Close() }()
			idemStore = rs
		}
	}

	// NATS order event bus. Orders persist without it; the live feed
	// just stays quiet.
	var queue messagequeue.Queue
	if cfg.NATS.URL != "" {
		q, err := mfnats.Connect(ctx, cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable, order events disabled", "error", err)
		} else {
			defer func() { _ = q.Close() }()
			queue = q
		}
	}

	// --- Services ---
	hub := ws.NewHub()
	tenantSvc := service.NewTenantService(store, storefrontCache)
	catalogSvc := service.NewCatalogService(store, storefrontCache)
	orderSvc := service.NewOrderService(store, queue, metrics)
	authSvc := service.NewAuthService(store, cfg.Auth)
	copySvc := service.NewCopyService(store, gemini.NewClient(cfg.Gemini), metrics)

	if err := authSvc.SeedDefaultAdmin(ctx); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	// Bridge order events onto the dashboard live feed.
	var stopFeed func()
	if queue != nil {
		stopFeed, err = queue.Subscribe(ctx, messagequeue.SubjectOrdersAll, func(subject string, data []byte) error {
			var ev service.OrderEvent
			if err := json.Unmarshal(data, &ev); err != nil {
				return fmt.Errorf("decode order event: %w", err)
			}
			hub.BroadcastEvent(ctx, ev.Type, ev.Order)
			return nil
		})
		if err != nil {
			return fmt.Errorf("order feed subscriber: %w", err)
		}
		defer stopFeed()
	}

	// --- HTTP ---
	handlers := mfhttp.NewHandlers(tenantSvc, catalogSvc, orderSvc, authSvc, copySvc, hub, pool)

	r := chi.NewRouter()
	r.Use(mfhttp.CORS(cfg.Server.CORSOrigin))
	r.Use(mfhttp.SecurityHeaders)
	r.Use(middleware.RequestID)
	r.Use(mfhttp.Logger)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	if cfg.Otel.Endpoint != "" {
		r.Use(otel.HTTPMiddleware(cfg.Logging.Service))
	}
	r.Use(middleware.Auth(authSvc))

	mfhttp.MountRoutes(r, handlers, idemStore, cfg.Idempotency.TTL)

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
