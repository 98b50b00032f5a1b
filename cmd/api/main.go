// Package main is the entry point for the travel-planner API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
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
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/pkordes/travel-planner/backend/internal/auth"
	"github.com/pkordes/travel-planner/backend/internal/cache"
	"github.com/pkordes/travel-planner/backend/internal/config"
	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/geo"
	"github.com/pkordes/travel-planner/backend/internal/handler"
	"github.com/pkordes/travel-planner/backend/internal/middleware"
	"github.com/pkordes/travel-planner/backend/internal/realtime"
	"github.com/pkordes/travel-planner/backend/internal/repo"
	"github.com/pkordes/travel-planner/backend/internal/service"
	"github.com/pkordes/travel-planner/backend/migrations"
	"github.com/pkordes/travel-planner/backend/spec"
)

// maxRequestBody caps request bodies. The largest legitimate payload is a
// full itinerary update; 1 MiB leaves generous headroom.
const maxRequestBody = 1 << 20

func main() {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately — the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if err := migrate(pool); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// --- Upstream clients -------------------------------------------------
	// Geocoding and the feature source have no API keys and are always on.
	// The keyed clients stay nil when unconfigured; the services degrade to
	// per-item error annotations (weather, POIs) or placeholders (images)
	// instead of refusing to start.
	httpClient := &http.Client{Timeout: 30 * time.Second}
	nominatim := geo.NewNominatimClient(cfg.NominatimBaseURL, httpClient)
	overpass := geo.NewOverpassClient(cfg.OverpassBaseURL, httpClient)

	var weather service.WeatherFetcher
	if cfg.OpenWeatherAPIKey != "" {
		weather = geo.NewWeatherClient(cfg.OpenWeatherBaseURL, cfg.OpenWeatherAPIKey, httpClient)
	} else {
		slog.Warn("OPENWEATHER_API_KEY not set; weather lookups disabled")
	}

	var pois service.POIFetcher
	if cfg.OpenTripMapAPIKey != "" {
		pois = geo.NewPOIClient(cfg.OpenTripMapBaseURL, cfg.OpenTripMapAPIKey, httpClient)
	} else {
		slog.Warn("OPENTRIPMAP_API_KEY not set; points of interest disabled")
	}

	var photos service.PhotoSearcher
	if cfg.UnsplashAccessKey != "" {
		photos = geo.NewUnsplashClient(cfg.UnsplashBaseURL, cfg.UnsplashAccessKey, httpClient)
	} else {
		slog.Warn("UNSPLASH_ACCESS_KEY not set; image lookups serve placeholders")
	}

	// --- Services ---------------------------------------------------------
	tokens := auth.NewTokens([]byte(cfg.JWTSecret))
	hub := realtime.NewHub()

	users := repo.NewUserRepo(pool)
	trips := repo.NewTripRepo(pool)
	messages := repo.NewMessageRepo(pool)
	activities := repo.NewActivityRepo(pool)
	images := repo.NewImageRepo(pool)

	activityLog := service.NewActivityLogger(activities, trips, hub, logger)
	authService := service.NewAuthService(users, tokens, service.NewLogMailer(logger))
	tripService := service.NewTripService(trips, hub, activityLog)
	chatService := service.NewChatService(messages, trips, hub, activityLog)
	destService := service.NewDestinationService(nominatim, overpass,
		cache.NewTTL[[]domain.Destination](cfg.DestinationCacheTTL))
	enrichService := service.NewEnrichmentService(weather, pois)
	imageService := service.NewImageService(images, photos, logger)

	server := handler.NewServer(handler.Deps{
		Auth:         authService,
		Trips:        tripService,
		Chat:         chatService,
		Destinations: destService,
		Enrich:       enrichService,
		Activities:   activityLog,
		Images:       imageService,
		Hub:          hub,
		Tokens:       tokens,
		Log:          logger,
	})

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxRequestBody))

	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(spec.OpenAPI)
	})

	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout stays zero: the SSE stream endpoints hold their response
	// open indefinitely and a write deadline would sever them mid-stream.
	// Slowloris protection comes from ReadTimeout and the body-size cap.
	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     r,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
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

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies any pending schema migrations from the embedded FS.
// goose needs database/sql, so the pool is bridged through pgx's stdlib
// adapter; the *sql.DB is closed again once migrations finish.
func migrate(pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}
	results, err := provider.Up(context.Background())
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	for _, res := range results {
		slog.Info("applied migration", "source", res.Source.Path)
	}
	return nil
}
