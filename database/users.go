package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"silverback/models"
)

// UserStore implements models.UserStore on a MongoDB collection.
type UserStore struct {
	coll *mongo.Collection
}

// FindOrCreate resolves a username to its user record in a single
// FindOneAndUpdate upsert. $setOnInsert only takes effect when the document
// is being created, so an existing user is returned unchanged, and the
// unique index on username guarantees concurrent calls converge on one
// record instead of racing a separate find and insert.
func (s *UserStore) FindOrCreate(ctx context.Context, username string) (*models.User, error) {
	filter := bson.M{"username": username}
	update := bson.M{"$setOnInsert": bson.M{
		"username":  username,
		"createdAt": time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var user models.User
	err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&user)
	if err != nil {
		return nil, fmt.Errorf("find or create user %q: %w", username, err)
	}

	return &user, nil
}
