package main

import (
	"context"
	"os"
	"os/signal"

	"booksim/internal/config"
	"booksim/internal/dataset"
	"booksim/internal/db"
	"booksim/internal/logging"
	"booksim/internal/service"
	"booksim/internal/shell"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	// logs go to stderr so they do not mix with the menu
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stderr})
	cfg.LogNotices()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	st, stats, err := dataset.FromConfig(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load dataset")
	}
	defer db.Close(context.Background())

	svc := service.NewQueryService(st, stats, cfg.DataSource, cfg.CacheTTLSeconds)
	if err := shell.New(svc, os.Stdin, os.Stdout).Run(ctx); err != nil {
		log.Error().Err(err).Msg("menu stopped")
		os.Exit(1)
	}
}
