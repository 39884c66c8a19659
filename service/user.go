package service

import (
	"context"
	"errors"
	"strings"

	"silverback/models"
)

// ErrEmptyUsername is returned when a tweet is created without a username.
var ErrEmptyUsername = errors.New("username must not be empty")

// UserResolver maps usernames to persistent user records, creating one the
// first time a username is seen. The uniqueness guarantee lives in the
// store: the mongo implementation upserts against a unique username index,
// so concurrent resolves of the same new name yield a single record.
type UserResolver struct {
	users models.UserStore
}

func NewUserResolver(users models.UserStore) *UserResolver {
	return &UserResolver{users: users}
}

func (r *UserResolver) Resolve(ctx context.Context, username string) (*models.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrEmptyUsername
	}
	return r.users.FindOrCreate(ctx, username)
}
