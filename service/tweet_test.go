package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"silverback/database"
	"silverback/models"
	"silverback/service"
)

func newTestService(t *testing.T) (*service.TweetService, *database.MemUserStore, *database.MemTweetStore) {
	t.Helper()
	users := database.NewMemUserStore()
	tweets := database.NewMemTweetStore()
	resolver := service.NewUserResolver(users)
	return service.NewTweetService(tweets, resolver), users, tweets
}

func TestCreate_SetsDefaults(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	tweet, err := svc.Create(ctx, "alice", "hello world", nil)
	require.NoError(t, err)

	assert.False(t, tweet.ID.IsZero(), "expected a generated id")
	assert.False(t, tweet.UserID.IsZero(), "expected a resolved user id")
	assert.Equal(t, "alice", tweet.Username)
	assert.Equal(t, "hello world", tweet.Content)
	assert.Nil(t, tweet.Image)
	assert.Equal(t, int64(0), tweet.Likes)
	assert.Equal(t, int64(0), tweet.Retweets)
	assert.Empty(t, tweet.Comments)
	assert.False(t, tweet.CreatedAt.IsZero())
	assert.Equal(t, tweet.CreatedAt, tweet.UpdatedAt)
}

func TestCreate_RecordsImagePath(t *testing.T) {
	svc, _, _ := newTestService(t)

	path := "uploads/1724976000000-cat.png"
	tweet, err := svc.Create(context.Background(), "alice", "look at this", &path)
	require.NoError(t, err)
	require.NotNil(t, tweet.Image)
	assert.Equal(t, path, *tweet.Image)
}

func TestCreate_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", "", nil)
	assert.ErrorIs(t, err, service.ErrEmptyContent)

	_, err = svc.Create(ctx, "alice", "   ", nil)
	assert.ErrorIs(t, err, service.ErrEmptyContent)

	_, err = svc.Create(ctx, "", "hello", nil)
	assert.ErrorIs(t, err, service.ErrEmptyUsername)
}

func TestCreate_FindOrCreateIdempotent(t *testing.T) {
	svc, users, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, "alice", "first tweet", nil)
	require.NoError(t, err)

	second, err := svc.Create(ctx, "alice", "second tweet", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, users.Count(), "expected exactly one user record for alice")
	assert.Equal(t, first.UserID, second.UserID, "both tweets should reference the same user")
}

func TestList_NewestFirst(t *testing.T) {
	svc, _, tweets := newTestService(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i, content := range []string{"oldest", "middle", "newest"} {
		tw := &models.Tweet{
			ID:        primitive.NewObjectID(),
			UserID:    primitive.NewObjectID(),
			Username:  "alice",
			Content:   content,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, tweets.Insert(ctx, tw))
	}

	got, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "newest", got[0].Content)
	assert.Equal(t, "middle", got[1].Content)
	assert.Equal(t, "oldest", got[2].Content)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].CreatedAt.After(got[i].CreatedAt),
			"createdAt must be strictly descending")
	}
}

func TestUpdateContent_ReadAfterWrite(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	tweet, err := svc.Create(ctx, "alice", "old text", nil)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	updated, err := svc.UpdateContent(ctx, tweet.ID, "new text")
	require.NoError(t, err)

	assert.Equal(t, "new text", updated.Content)
	assert.True(t, updated.UpdatedAt.After(tweet.UpdatedAt),
		"updatedAt must move forward on update")
	assert.Equal(t, tweet.CreatedAt, updated.CreatedAt)

	// A fresh read shows the new content too.
	got, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new text", got[0].Content)
}

func TestUpdateContent_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	absent, err := primitive.ObjectIDFromHex("000000000000000000000000")
	require.NoError(t, err)

	_, err = svc.UpdateContent(context.Background(), absent, "whatever")
	assert.ErrorIs(t, err, models.ErrTweetNotFound)
}

func TestDelete(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	tweet, err := svc.Create(ctx, "alice", "doomed", nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, tweet.ID))

	got, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	assert.ErrorIs(t, svc.Delete(ctx, tweet.ID), models.ErrTweetNotFound)
}

func TestDelete_NotFoundLeavesStateAlone(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", "survivor", nil)
	require.NoError(t, err)

	absent, err := primitive.ObjectIDFromHex("000000000000000000000000")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, absent), models.ErrTweetNotFound)

	got, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1, "a failed delete must not change anything")
}

func TestCounters_Monotonic(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	tweet, err := svc.Create(ctx, "alice", "count me", nil)
	require.NoError(t, err)

	const n = 7
	var last *models.Tweet
	for i := 0; i < n; i++ {
		last, err = svc.Like(ctx, tweet.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(n), last.Likes)
	assert.Equal(t, int64(0), last.Retweets)

	last, err = svc.Retweet(ctx, tweet.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), last.Retweets)
	assert.Equal(t, int64(n), last.Likes)
}

func TestCounters_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	absent, err := primitive.ObjectIDFromHex("000000000000000000000000")
	require.NoError(t, err)

	_, err = svc.Like(context.Background(), absent)
	assert.ErrorIs(t, err, models.ErrTweetNotFound)

	_, err = svc.Retweet(context.Background(), absent)
	assert.ErrorIs(t, err, models.ErrTweetNotFound)
}

func TestResolve_TrimsNothingButRejectsBlank(t *testing.T) {
	_, users, _ := newTestService(t)
	resolver := service.NewUserResolver(users)
	ctx := context.Background()

	_, err := resolver.Resolve(ctx, " ")
	assert.ErrorIs(t, err, service.ErrEmptyUsername)

	u1, err := resolver.Resolve(ctx, "bob")
	require.NoError(t, err)

	u2, err := resolver.Resolve(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, u1.ID, u2.ID)
	assert.Equal(t, 1, users.Count())
}
