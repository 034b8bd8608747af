package authenticator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// HMACConfig holds settings for HS256-signed tokens
type HMACConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// HMACProvider issues and verifies HS256 JWTs signed with a shared secret
type HMACProvider struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

type tokenClaims struct {
	PreferredUsername string `json:"preferred_username"`
	jwt.RegisteredClaims
}

// NewHMACProvider creates a new HMAC token provider
func NewHMACProvider(cfg HMACConfig) (*HMACProvider, error) {
	if cfg.Secret == "" {
		return nil, errors.New("secret is required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}

	return &HMACProvider{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    cfg.TTL,
		now:    time.Now,
	}, nil
}

// IssueToken signs a token for username and returns it with its expiry
func (p *HMACProvider) IssueToken(username string) (string, time.Time, error) {
	now := p.now()
	expiresAt := now.Add(p.ttl)

	claims := tokenClaims{
		PreferredUsername: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    p.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// VerifyToken validates signature, issuer and expiry and returns the claims
func (p *HMACProvider) VerifyToken(ctx context.Context, rawToken string) (Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	}
	if p.issuer != "" {
		opts = append(opts, jwt.WithIssuer(p.issuer))
	}

	token, err := jwt.Parse(rawToken, func(token *jwt.Token) (interface{}, error) {
		return p.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return Claims(mapClaims), nil
}
