package authenticator

import (
	"context"
	"errors"
)

// ErrInvalidToken is returned when a bearer token fails verification
var ErrInvalidToken = errors.New("invalid token")

// Token represents an authentication token
type Token struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	Expiry       int64
}

// Claims represents user claims from a verified token
type Claims map[string]interface{}

// Username resolves the acting username from the claims.
// It prefers preferred_username, then nickname, then email, then sub.
func (c Claims) Username() string {
	for _, key := range []string{"preferred_username", "nickname", "email", "sub"} {
		if value, ok := c[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

// Provider interface abstracts OAuth provider operations
type Provider interface {
	GetAuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*Token, error)
	GetClaims(ctx context.Context, token *Token) (Claims, error)
}

// TokenVerifier verifies bearer tokens presented to the API
type TokenVerifier interface {
	VerifyToken(ctx context.Context, rawToken string) (Claims, error)
}
