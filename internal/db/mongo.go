package db

import (
	"context"
	"time"

	"booksim/internal/config"
	"booksim/internal/logging"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var mongoClient *mongo.Client
var mongoDB *mongo.Database

func InitMongo(ctx context.Context, cfg *config.Config) error {
	logger := logging.Component("mongo")

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return err
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return err
	}

	mongoClient = client
	mongoDB = client.Database(cfg.MongoDB)
	logger.Info().Str("db", cfg.MongoDB).Msg("connected")
	return nil
}

func DB() *mongo.Database {
	return mongoDB
}

// Close disconnects the client opened by InitMongo.
func Close(ctx context.Context) error {
	if mongoClient == nil {
		return nil
	}
	return mongoClient.Disconnect(ctx)
}
