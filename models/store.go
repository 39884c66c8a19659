package models

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrTweetNotFound is returned by store operations referencing a tweet id
// that does not exist.
var ErrTweetNotFound = errors.New("tweet not found")

// UserStore defines persistence operations for users.
type UserStore interface {
	// FindOrCreate returns the user with the given username, creating it
	// atomically if absent. Concurrent calls for the same new username must
	// yield a single user record.
	FindOrCreate(ctx context.Context, username string) (*User, error)
}

// TweetStore defines persistence operations for tweets.
type TweetStore interface {
	Insert(ctx context.Context, tweet *Tweet) error

	// List returns every tweet ordered by createdAt descending. Each call is
	// a fresh query; results are never cached.
	List(ctx context.Context) ([]Tweet, error)

	// UpdateContent replaces the tweet's content, bumps updatedAt, and
	// returns the post-update document.
	UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*Tweet, error)

	Delete(ctx context.Context, id primitive.ObjectID) error

	// IncrementLikes and IncrementRetweets add exactly 1 to the respective
	// counter using the datastore's atomic increment, so concurrent calls
	// cannot lose updates. Both return the post-increment document.
	IncrementLikes(ctx context.Context, id primitive.ObjectID) (*Tweet, error)
	IncrementRetweets(ctx context.Context, id primitive.ObjectID) (*Tweet, error)
}
