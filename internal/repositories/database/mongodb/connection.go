// Package mongodb implements the repository ports on MongoDB collections.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkpad-app/inkpad-backend/internal/platform/config"
)

const connectTimeout = 10 * time.Second

// Collection names.
const (
	usersCollection         = "users"
	refreshTokensCollection = "refresh_tokens"
	otpsCollection          = "otps"
	storiesCollection       = "stories"
	videosCollection        = "videos"
	shotsCollection         = "shots"
	chaptersCollection      = "chapters"
	commentsCollection      = "comments"
)

// Connect opens a client, verifies it with a ping and returns the database handle.
func Connect(cfg *config.Config) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURL))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, client.Database(cfg.DatabaseName), nil
}

// EnsureIndexes creates the unique and query indexes the repositories rely on.
// Index creation is idempotent, so this runs at every startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	sparseUnique := options.Index().SetUnique(true).SetSparse(true)

	specs := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: sparseUnique},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
			{Keys: bson.D{{Key: "anonymous_name", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "referral_code", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
			{Keys: bson.D{{Key: "points", Value: -1}}},
		},
		refreshTokensCollection: {
			{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "username", Value: 1}}},
		},
		otpsCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
		storiesCollection: {
			{Keys: bson.D{{Key: "author_id", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "published_at", Value: -1}}},
		},
		videosCollection: {
			{Keys: bson.D{{Key: "author_id", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "published_at", Value: -1}}},
		},
		shotsCollection: {
			{Keys: bson.D{{Key: "author_id", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "published_at", Value: -1}}},
		},
		chaptersCollection: {
			{Keys: bson.D{{Key: "story_id", Value: 1}, {Key: "chapter_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		commentsCollection: {
			{Keys: bson.D{{Key: "story_id", Value: 1}}},
			{Keys: bson.D{{Key: "video_id", Value: 1}}},
			{Keys: bson.D{{Key: "chapter_id", Value: 1}}},
			{Keys: bson.D{{Key: "parent_comment_id", Value: 1}}},
		},
	}

	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}
