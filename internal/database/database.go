// Package database handles the MongoDB connection bootstrap and index creation.
package database

import (
	"context"
	"fmt"
	"time"

	"devconnector/internal/config"
	"devconnector/internal/middleware"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names used across the repositories.
const (
	UsersCollection    = "users"
	ProfilesCollection = "profiles"
	PostsCollection    = "posts"
)

const connectTimeout = 10 * time.Second

// Connect establishes the MongoDB connection, verifies it with a ping, and
// ensures the indexes the data model relies on. A failure here is fatal to
// process startup.
func Connect(cfg *config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.MongoDatabase)
	if err := ensureIndexes(ctx, db); err != nil {
		return nil, fmt.Errorf("mongo indexes: %w", err)
	}

	middleware.Logger.Info("MongoDB connected",
		"database", cfg.MongoDatabase)

	return db, nil
}

// Disconnect closes the underlying client connection.
func Disconnect(ctx context.Context, db *mongo.Database) error {
	if db == nil {
		return nil
	}
	return db.Client().Disconnect(ctx)
}

// ensureIndexes creates the indexes the data model depends on. Email
// uniqueness is a store-level invariant, not just an API-layer check.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	// One profile per user.
	_, err = db.Collection(ProfilesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	// Post feed reads sort by creation date descending.
	_, err = db.Collection(PostsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: -1}},
	})
	return err
}
