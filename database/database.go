package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store owns the MongoDB client and the two collections this service uses.
// It is constructed once at startup and handed to the services; there is no
// package-level connection state.
type Store struct {
	client *mongo.Client
	users  *mongo.Collection
	tweets *mongo.Collection
}

// Connect dials MongoDB, verifies the connection with a ping, and returns a
// Store bound to the named database.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(dbName)
	return &Store{
		client: client,
		users:  db.Collection("users"),
		tweets: db.Collection("tweets"),
	}, nil
}

// EnsureIndexes creates the unique index on users.username that backs the
// atomic find-or-create, and the descending createdAt index that backs the
// newest-first listing.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create username index: %w", err)
	}

	_, err = s.tweets.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create createdAt index: %w", err)
	}

	return nil
}

// Users returns the mongo-backed user store.
func (s *Store) Users() *UserStore {
	return &UserStore{coll: s.users}
}

// Tweets returns the mongo-backed tweet store.
func (s *Store) Tweets() *TweetStore {
	return &TweetStore{coll: s.tweets}
}

// Disconnect closes the underlying client.
func (s *Store) Disconnect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.client.Disconnect(ctx); err != nil {
		return err
	}

	log.Println("Disconnected from MongoDB")
	return nil
}
