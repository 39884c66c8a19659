package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tweet is a single user-authored post. Username is denormalized from the
// owning User at creation time and is not kept in sync afterwards.
type Tweet struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Username  string             `bson:"username" json:"username"`
	Content   string             `bson:"content" json:"content"`
	Image     *string            `bson:"image" json:"image"` // nil when no media attached
	Likes     int64              `bson:"likes" json:"likes"`
	Retweets  int64              `bson:"retweets" json:"retweets"`
	Comments  []Comment          `bson:"comments" json:"comments"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Comment is embedded in its parent tweet and is deleted along with it.
type Comment struct {
	Username  string    `bson:"username" json:"username"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
