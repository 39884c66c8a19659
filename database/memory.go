package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"silverback/models"
)

// MemUserStore and MemTweetStore are mutex-guarded in-memory implementations
// of the store contracts. They mirror the atomicity of the mongo stores
// (single-record find-or-create, lossless increments) and back the service
// and handler tests, where no MongoDB is available.

type MemUserStore struct {
	mu    sync.Mutex
	users map[string]models.User // keyed by username
}

func NewMemUserStore() *MemUserStore {
	return &MemUserStore{users: make(map[string]models.User)}
}

func (s *MemUserStore) FindOrCreate(ctx context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[username]; ok {
		return &u, nil
	}

	u := models.User{
		ID:        primitive.NewObjectID(),
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
	s.users[username] = u
	return &u, nil
}

// Count reports the number of user records, for test assertions.
func (s *MemUserStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

type MemTweetStore struct {
	mu     sync.Mutex
	tweets map[primitive.ObjectID]models.Tweet
}

func NewMemTweetStore() *MemTweetStore {
	return &MemTweetStore{tweets: make(map[primitive.ObjectID]models.Tweet)}
}

func (s *MemTweetStore) Insert(ctx context.Context, tweet *models.Tweet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tweets[tweet.ID] = *tweet
	return nil
}

func (s *MemTweetStore) List(ctx context.Context) ([]models.Tweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Tweet, 0, len(s.tweets))
	for _, t := range s.tweets {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemTweetStore) UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*models.Tweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tweets[id]
	if !ok {
		return nil, models.ErrTweetNotFound
	}
	t.Content = content
	t.UpdatedAt = time.Now().UTC()
	s.tweets[id] = t
	return &t, nil
}

func (s *MemTweetStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tweets[id]; !ok {
		return models.ErrTweetNotFound
	}
	delete(s.tweets, id)
	return nil
}

func (s *MemTweetStore) IncrementLikes(ctx context.Context, id primitive.ObjectID) (*models.Tweet, error) {
	return s.increment(id, func(t *models.Tweet) { t.Likes++ })
}

func (s *MemTweetStore) IncrementRetweets(ctx context.Context, id primitive.ObjectID) (*models.Tweet, error) {
	return s.increment(id, func(t *models.Tweet) { t.Retweets++ })
}

func (s *MemTweetStore) increment(id primitive.ObjectID, bump func(*models.Tweet)) (*models.Tweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tweets[id]
	if !ok {
		return nil, models.ErrTweetNotFound
	}
	bump(&t)
	t.UpdatedAt = time.Now().UTC()
	s.tweets[id] = t
	return &t, nil
}
