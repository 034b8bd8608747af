package userctx

import (
	"context"

	"github.com/blogem/actionlog/models"
)

// Context key type
type contextKey string

const usernameKey contextKey = "username"
const userKey contextKey = "user"

// Anonymous is reported for requests without an authenticated user
const Anonymous = "anonymous"

// SetUser adds the authenticated user and their username to the request context
func SetUser(ctx context.Context, user *models.User) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, usernameKey, user.Username)
}

// GetUser retrieves the authenticated user from the request context
func GetUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok && user != nil
}

// GetUsername retrieves the acting username from the request context
func GetUsername(ctx context.Context) string {
	username, ok := ctx.Value(usernameKey).(string)
	if !ok {
		return Anonymous
	}
	return username
}
