package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"silverback/models"
)

// ErrEmptyContent is returned when a tweet is created with no content.
var ErrEmptyContent = errors.New("content must not be empty")

// TweetService owns the tweet lifecycle: creation (resolving the author
// first), newest-first listing, content updates, deletion, and counter
// increments. It holds no state of its own between calls.
type TweetService struct {
	tweets   models.TweetStore
	resolver *UserResolver
}

func NewTweetService(tweets models.TweetStore, resolver *UserResolver) *TweetService {
	return &TweetService{tweets: tweets, resolver: resolver}
}

// Create resolves the username (creating the user on first sight), then
// persists a tweet owned by that user with the username denormalized onto
// it. imagePath is the identifier handed back by whatever stored the media
// blob; nil means no media.
func (s *TweetService) Create(ctx context.Context, username, content string, imagePath *string) (*models.Tweet, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	user, err := s.resolver.Resolve(ctx, username)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tweet := &models.Tweet{
		ID:        primitive.NewObjectID(),
		UserID:    user.ID,
		Username:  user.Username,
		Content:   content,
		Image:     imagePath,
		Comments:  []models.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.tweets.Insert(ctx, tweet); err != nil {
		return nil, err
	}

	return tweet, nil
}

// List returns every tweet, most recent first.
func (s *TweetService) List(ctx context.Context) ([]models.Tweet, error) {
	return s.tweets.List(ctx)
}

// UpdateContent replaces a tweet's content and returns the updated tweet.
// Returns models.ErrTweetNotFound for absent ids.
func (s *TweetService) UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*models.Tweet, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	return s.tweets.UpdateContent(ctx, id, content)
}

// Delete removes a tweet. Embedded comments go with it; nothing else is
// touched. Returns models.ErrTweetNotFound for absent ids.
func (s *TweetService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.tweets.Delete(ctx, id)
}

// Like adds exactly one like and returns the updated tweet.
func (s *TweetService) Like(ctx context.Context, id primitive.ObjectID) (*models.Tweet, error) {
	return s.tweets.IncrementLikes(ctx, id)
}

// Retweet adds exactly one retweet and returns the updated tweet.
func (s *TweetService) Retweet(ctx context.Context, id primitive.ObjectID) (*models.Tweet, error) {
	return s.tweets.IncrementRetweets(ctx, id)
}
