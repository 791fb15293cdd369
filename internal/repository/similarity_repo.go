package repository

import (
	"context"

	"booksim/internal/db"
	"booksim/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SimilarityRepository keeps neighbor query snapshots in the similarities
// collection, keyed by the same key as the Redis cache.
type SimilarityRepository struct {
	col *mongo.Collection
}

func NewSimilarityRepository() *SimilarityRepository {
	return &SimilarityRepository{col: db.DB().Collection("similarities")}
}

// FindSimilar returns nil, nil when no snapshot exists.
func (r *SimilarityRepository) FindSimilar(ctx context.Context, key string) (*models.SimilarityDoc, error) {
	var doc models.SimilarityDoc
	err := r.col.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *SimilarityRepository) SaveSimilar(ctx context.Context, key string, doc *models.SimilarityDoc) error {
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	return err
}
