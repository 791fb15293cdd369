package repository

import (
	"context"
	"strconv"

	"booksim/internal/db"
	"booksim/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type RatingRepository struct {
	col *mongo.Collection
}

func NewRatingRepository() *RatingRepository {
	return &RatingRepository{col: db.DB().Collection("ratings")}
}

// EachRating streams every (userId, isbn, rating) document. Numeric ratings
// come back numeric; ratings stored as text are kept raw.
func (r *RatingRepository) EachRating(ctx context.Context, fn func(models.RatingDoc) error) error {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return err
		}
		doc := models.RatingDoc{
			UserID: asString(raw["userId"]),
			ISBN:   asString(raw["isbn"]),
			Rating: asRating(raw["rating"]),
		}
		if err := fn(doc); err != nil {
			return err
		}
	}
	return cur.Err()
}

// asString accepts ids stored as text or as numbers.
func asString(v any) string {
	switch x := v.(type) {
	case string:
		return models.TrimQuotes(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return ""
	}
}

func asRating(v any) models.Rating {
	switch x := v.(type) {
	case int32:
		return models.NumericRating(float64(x))
	case int64:
		return models.NumericRating(float64(x))
	case float64:
		return models.NumericRating(x)
	case string:
		return models.RawRating(x)
	default:
		return models.RawRating("")
	}
}
