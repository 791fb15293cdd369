package dataset

import (
	"context"
	"fmt"

	"booksim/internal/config"
	"booksim/internal/db"
	"booksim/internal/logging"
	"booksim/internal/repository"
	"booksim/internal/store"
)

const (
	SourceCSV   = "csv"
	SourceMongo = "mongo"
)

// FromConfig loads the store from the source named by cfg.DataSource. For
// mongo the connection opened here stays open for the snapshot repository.
func FromConfig(ctx context.Context, cfg *config.Config) (*store.Store, Stats, error) {
	logger := logging.Component("dataset")

	var (
		s     *store.Store
		stats Stats
		err   error
	)
	switch cfg.DataSource {
	case SourceCSV:
		s, stats, err = LoadCSV(cfg.BooksCSV, cfg.RatingsCSV, CSVOptions{
			Encoding: cfg.CSVEncoding,
			Header:   cfg.CSVHeader,
		})
	case SourceMongo:
		if err := db.InitMongo(ctx, cfg); err != nil {
			return nil, Stats{}, fmt.Errorf("mongo: %w", err)
		}
		s, stats, err = LoadMongo(ctx, repository.NewBookRepository(), repository.NewRatingRepository())
	default:
		return nil, Stats{}, fmt.Errorf("unknown DATA_SOURCE %q (want csv or mongo)", cfg.DataSource)
	}
	if err != nil {
		return nil, stats, err
	}

	logger.Info().
		Str("source", cfg.DataSource).
		Int("books", stats.Books).
		Int("users", stats.Users).
		Int("ratings", stats.Ratings).
		Int("skipped_books", stats.SkippedBooks).
		Int("skipped_ratings", stats.SkippedRatings).
		Int("orphan_ratings", stats.OrphanRatings).
		Msg("dataset loaded")
	return s, stats, nil
}
