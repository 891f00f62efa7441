// Package main is the entry point for the Route 66 planner API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/pkordes/route66/internal/cache"
	"github.com/pkordes/route66/internal/config"
	"github.com/pkordes/route66/internal/distance"
	"github.com/pkordes/route66/internal/domain"
	"github.com/pkordes/route66/internal/handler"
	"github.com/pkordes/route66/internal/middleware"
	"github.com/pkordes/route66/internal/planner"
	"github.com/pkordes/route66/internal/repo"
	"github.com/pkordes/route66/internal/service"
	"github.com/pkordes/route66/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// --- Database ---------------------------------------------------------
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Migrations -------------------------------------------------------
	// goose works on database/sql; OpenDBFromPool shares the pgx pool.
	sqlDB := stdlib.OpenDBFromPool(pool)
	migrator, err := goose.NewProvider(goose.DialectPostgres, sqlDB, migrations.FS)
	if err != nil {
		slog.Error("failed to create migration provider", "error", err)
		os.Exit(1)
	}
	results, err := migrator.Up(ctx)
	if err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	_ = sqlDB.Close()
	slog.Info("migrations applied", "count", len(results))

	// --- Planner ----------------------------------------------------------
	limits, err := domain.LimitsPreset(cfg.PlanningLimits)
	if err != nil {
		slog.Error("invalid planning limits", "error", err)
		os.Exit(1)
	}

	opts := []planner.Option{planner.WithLogger(logger)}
	if cfg.GoogleMapsAPIKey != "" {
		var legCache planner.DistanceCache = planner.NewMemoryCache()
		if cfg.RedisURL != "" {
			rdb, err := cache.NewClient(ctx, cfg.RedisURL)
			if err != nil {
				slog.Error("failed to connect to redis", "error", err)
				os.Exit(1)
			}
			defer rdb.Close()
			legCache = cache.NewRedisDistanceCache(rdb, cache.DefaultTTL, logger)
			slog.Info("redis distance cache enabled")
		}
		burst := int(math.Ceil(cfg.DistanceRPS))
		google := distance.NewGoogleProvider(cfg.GoogleMapsAPIKey, cfg.DistanceRPS, burst)
		opts = append(opts, planner.WithDistanceProvider(planner.NewCachedProvider(google, legCache)))
		slog.Info("road distances enabled", "rps", cfg.DistanceRPS)
	} else {
		slog.Info("no distance provider configured; distances are estimated")
	}

	tripPlanner, err := planner.New(limits, opts...)
	if err != nil {
		slog.Error("failed to create planner", "error", err)
		os.Exit(1)
	}

	// --- Services ---------------------------------------------------------
	waypointRepo := repo.NewWaypointRepo(pool)
	planSvc := service.NewPlanService(
		tripPlanner,
		waypointRepo,
		repo.NewAttractionRepo(pool),
		repo.NewPlanRepo(pool),
		cfg.AttractionConcurrency,
		logger,
	)
	waypointSvc := service.NewWaypointService(waypointRepo)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → CORS → body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(middleware.DefaultMaxBodyBytes))

	handler.NewServer(planSvc, waypointSvc, logger).Register(r)

	// --- HTTP Server ------------------------------------------------------
	// Planning may wait on the distance provider, so writes get more room
	// than reads.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
