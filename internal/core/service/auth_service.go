package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lifedrop/blood-donation-api/internal/core/domain"
	"github.com/lifedrop/blood-donation-api/internal/core/ports"
)

// AuthService issues and verifies HS256 session tokens. Session tokens are
// minted only for identities already verified by the external provider.
type AuthService struct {
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	return &AuthService{jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// IssueSession signs a session token for identity.
func (s *AuthService) IssueSession(_ context.Context, identity ports.Identity) (*ports.SessionToken, error) {
	if identity.Email == "" {
		return nil, fmt.Errorf("%w: identity has no email", domain.ErrUnauthenticated)
	}
	if s.jwtSecret == "" {
		return nil, errors.New("session tokens are disabled: JWT_SECRET is empty")
	}

	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)
	claims := jwt.MapClaims{
		"sub":   identity.Subject,
		"email": domain.NormalizeEmail(identity.Email),
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	return &ports.SessionToken{Token: signed, ExpiresAt: expiresAt}, nil
}

// Verify satisfies ports.CredentialVerifier for session tokens.
func (s *AuthService) Verify(_ context.Context, credential string) (*ports.Identity, error) {
	if s.jwtSecret == "" {
		return nil, domain.ErrUnauthenticated
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(credential, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, fmt.Errorf("%w: invalid session token", domain.ErrUnauthenticated)
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("%w: session token has no email", domain.ErrUnauthenticated)
	}
	sub, _ := claims["sub"].(string)
	return &ports.Identity{Subject: sub, Email: domain.NormalizeEmail(email)}, nil
}

// ChainVerifier tries each verifier in order and accepts the first success.
type ChainVerifier []ports.CredentialVerifier

func (c ChainVerifier) Verify(ctx context.Context, credential string) (*ports.Identity, error) {
	for _, v := range c {
		if v == nil {
			continue
		}
		if identity, err := v.Verify(ctx, credential); err == nil {
			return identity, nil
		}
	}
	return nil, domain.ErrUnauthenticated
}
