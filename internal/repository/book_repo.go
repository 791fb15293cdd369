package repository

import (
	"context"

	"booksim/internal/db"
	"booksim/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BookRepository struct {
	col *mongo.Collection
}

func NewBookRepository() *BookRepository {
	return &BookRepository{col: db.DB().Collection("books")}
}

// EachBook streams every metadata document of the books collection.
func (r *BookRepository) EachBook(ctx context.Context, fn func(models.BookDoc) error) error {
	opts := options.Find().SetProjection(bson.M{"isbn": 1, "title": 1, "author": 1, "year": 1})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return err
		}
		doc := models.BookDoc{
			ISBN:   asString(raw["isbn"]),
			Title:  asString(raw["title"]),
			Author: asString(raw["author"]),
			Year:   asString(raw["year"]),
		}
		if err := fn(doc); err != nil {
			return err
		}
	}
	return cur.Err()
}
