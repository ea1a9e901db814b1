package ports

import (
	"context"
	"time"
)

// Identity is the result of verifying a bearer credential.
type Identity struct {
	Subject string
	Email   string
}

// CredentialVerifier checks an opaque bearer credential against an identity
// provider. Any error means the caller is unauthenticated.
type CredentialVerifier interface {
	Verify(ctx context.Context, credential string) (*Identity, error)
}

// SessionToken is a signed session credential handed to the client.
type SessionToken struct {
	Token     string
	ExpiresAt time.Time
}

// AuthService exchanges a verified identity for a session token.
type AuthService interface {
	IssueSession(ctx context.Context, identity Identity) (*SessionToken, error)
}
