// Package main is the entry point for the ScoreLive API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/pkordes/scorelive/internal/auth"
	"github.com/pkordes/scorelive/internal/config"
	"github.com/pkordes/scorelive/internal/handler"
	"github.com/pkordes/scorelive/internal/metrics"
	"github.com/pkordes/scorelive/internal/middleware"
	"github.com/pkordes/scorelive/internal/repo"
	"github.com/pkordes/scorelive/internal/service"
	"github.com/pkordes/scorelive/migrations"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// run wires the server and blocks until it stops. Every exit path returns
// through here so deferred cleanup (the store pool) always runs.
func run() error {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	// --- Logger -----------------------------------------------------------
	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	// --- Metrics ----------------------------------------------------------
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// --- Store ------------------------------------------------------------
	matchRepo, closeStore, err := openStore(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("open %s match store: %w", cfg.StoreBackend, err)
	}
	defer closeStore()

	// --- Services ---------------------------------------------------------
	tokens := auth.NewTokenService(cfg.JWTSecret, auth.WithTTL(cfg.TokenTTL))
	matches := service.NewMatchService(matchRepo, m, logger)
	server := handler.NewServer(matches, tokens, m, logger)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Metrics →
	// Recoverer → CORS → body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(middleware.NewMetricsHandler(m))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Mount("/", server.Routes(tokens))

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	return serve(srv, stop)
}

// serve runs srv until it fails or stop fires, then gives in-flight
// requests up to 15 seconds to complete. Errors are returned, never
// exited on, so the caller's deferred cleanup runs.
func serve(srv *http.Server, stop <-chan os.Signal) error {
	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("serve: %w", err)
	case <-stop:
	}
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

// newLogger returns a JSON slog logger at level; unknown levels mean info.
func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// openStore builds the match store selected by cfg. The returned func
// releases it and is safe to defer.
func openStore(ctx context.Context, cfg config.Config) (repo.MatchRepo, func(), error) {
	if cfg.StoreBackend == config.StoreMemory {
		slog.Info("using in-memory match store")
		return repo.NewMemoryMatchRepo(), func() {}, nil
	}

	// pgxpool.New does not open connections immediately; the first query does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("connect: %w", err)
	}
	slog.Info("database connection established")

	if cfg.MigrateOnStart {
		if err := migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
	}

	return repo.NewMatchRepo(pool), pool.Close, nil
}

// migrate applies pending goose migrations through a database/sql handle
// borrowed from pool.
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("migration provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	for _, res := range results {
		slog.Info("migration applied", "version", res.Source.Version, "duration", res.Duration)
	}
	return nil
}
