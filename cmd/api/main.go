package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "booksim/docs" // swagger docs

	"booksim/internal/cache"
	"booksim/internal/config"
	"booksim/internal/dataset"
	"booksim/internal/db"
	"booksim/internal/handler"
	"booksim/internal/logging"
	"booksim/internal/repository"
	"booksim/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// @title Book Similarity API
// @version 1.0
// @description Similarity and nearest-neighbor queries over the book ratings dataset
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	cfg.LogNotices()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// dataset (csv or mongo) and Redis
	st, stats, err := dataset.FromConfig(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load dataset")
	}
	defer db.Close(context.Background())

	if err := cache.InitRedis(ctx, cfg); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, running without cache")
	}
	defer cache.Close()

	// services
	querySvc := service.NewQueryService(st, stats, cfg.DataSource, cfg.CacheTTLSeconds)
	if cfg.DataSource == dataset.SourceMongo {
		querySvc.WithSnapshots(repository.NewSimilarityRepository())
	}
	authSvc := service.NewAuthService(cfg.APIKeyHash, cfg.JWTSecret)
	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET not set, query routes are public")
	}

	// handlers
	queryH := handler.NewQueryHandler(querySvc)
	authH := handler.NewAuthHandler(authSvc)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(handler.RequestLogger())
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	if cfg.RateLimitRPM > 0 {
		r.Use(httprate.LimitByIP(cfg.RateLimitRPM, time.Minute))
	}

	// public routes
	r.Get("/health", handler.Health)
	r.Post("/auth/token", authH.Token)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// JWT protected when JWT_SECRET is set
	r.Group(func(r chi.Router) {
		r.Use(handler.JWTAuth(cfg.JWTSecret))
		handler.MountQueryRoutes(r, queryH)
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.HTTPPort).Msg("HTTP listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
