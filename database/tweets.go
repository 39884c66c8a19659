package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"silverback/models"
)

// TweetStore implements models.TweetStore on a MongoDB collection.
type TweetStore struct {
	coll *mongo.Collection
}

func (s *TweetStore) Insert(ctx context.Context, tweet *models.Tweet) error {
	_, err := s.coll.InsertOne(ctx, tweet)
	if err != nil {
		return fmt.Errorf("insert tweet: %w", err)
	}
	return nil
}

func (s *TweetStore) List(ctx context.Context) ([]models.Tweet, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list tweets: %w", err)
	}
	defer cursor.Close(ctx)

	tweets := []models.Tweet{}
	if err := cursor.All(ctx, &tweets); err != nil {
		return nil, fmt.Errorf("decode tweets: %w", err)
	}

	return tweets, nil
}

func (s *TweetStore) UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*models.Tweet, error) {
	update := bson.M{"$set": bson.M{
		"content":   content,
		"updatedAt": time.Now().UTC(),
	}}
	return s.findOneAndUpdate(ctx, id, update)
}

func (s *TweetStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete tweet: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrTweetNotFound
	}
	return nil
}

func (s *TweetStore) IncrementLikes(ctx context.Context, id primitive.ObjectID) (*models.Tweet, error) {
	return s.incrementField(ctx, id, "likes")
}

func (s *TweetStore) IncrementRetweets(ctx context.Context, id primitive.ObjectID) (*models.Tweet, error) {
	return s.incrementField(ctx, id, "retweets")
}

// incrementField applies $inc so concurrent increments on the same tweet
// cannot lose updates.
func (s *TweetStore) incrementField(ctx context.Context, id primitive.ObjectID, field string) (*models.Tweet, error) {
	update := bson.M{
		"$inc": bson.M{field: 1},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	return s.findOneAndUpdate(ctx, id, update)
}

func (s *TweetStore) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Tweet, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var tweet models.Tweet
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&tweet)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrTweetNotFound
		}
		return nil, fmt.Errorf("update tweet: %w", err)
	}

	return &tweet, nil
}
