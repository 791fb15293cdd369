package dataset

import (
	"context"
	"fmt"

	"booksim/internal/logging"
	"booksim/internal/models"
	"booksim/internal/store"
)

// BookSource streams book metadata rows.
type BookSource interface {
	EachBook(ctx context.Context, fn func(models.BookDoc) error) error
}

// RatingSource streams rating facts.
type RatingSource interface {
	EachRating(ctx context.Context, fn func(models.RatingDoc) error) error
}

// LoadMongo builds the store from the books and ratings collections.
// Ratings stored as text stay raw and are normalized when compared.
func LoadMongo(ctx context.Context, books BookSource, ratings RatingSource) (*store.Store, Stats, error) {
	logger := logging.Component("dataset")
	var stats Stats
	b := store.NewBuilder()
	known := make(map[string]struct{})

	err := books.EachBook(ctx, func(doc models.BookDoc) error {
		if doc.ISBN == "" {
			stats.SkippedBooks++
			return nil
		}
		b.AddBook(doc)
		known[doc.ISBN] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("load books: %w", err)
	}

	err = ratings.EachRating(ctx, func(doc models.RatingDoc) error {
		if doc.UserID == "" || doc.ISBN == "" {
			logger.Debug().Str("user", doc.UserID).Str("isbn", doc.ISBN).Msg("rating without user or ISBN, skipping")
			stats.SkippedRatings++
			return nil
		}
		if _, ok := known[doc.ISBN]; !ok {
			stats.OrphanRatings++
		}
		b.AddRating(doc.UserID, doc.ISBN, doc.Rating)
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("load ratings: %w", err)
	}

	s := b.Build()
	stats.Books = s.Books.Len()
	stats.Users = s.Users.Len()
	stats.Ratings = s.Ratings()
	return s, stats, nil
}
