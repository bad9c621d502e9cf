package utils

import (
	"context"

	"movie-catalog/internal/data/entity"

	"github.com/google/uuid"
)

type contextKey string

const (
	IdentityKey contextKey = "identity"
	TokenKey    contextKey = "token"
)

// SetIdentity stores the authenticated user for the rest of the request.
func SetIdentity(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, IdentityKey, user)
}

// GetIdentity returns the authenticated identity, if any.
func GetIdentity(ctx context.Context) (entity.Identity, bool) {
	user, ok := GetUser(ctx)
	if !ok {
		return nil, false
	}
	return user, true
}

func GetUser(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(IdentityKey).(*entity.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// GetTokenFromContext returns the session token the identity was loaded from.
func GetTokenFromContext(ctx context.Context) (uuid.UUID, bool) {
	token, ok := ctx.Value(TokenKey).(uuid.UUID)
	return token, ok
}

func SetTokenContext(ctx context.Context, token uuid.UUID) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}
