// Package firebase verifies Firebase ID tokens, the credential the web
// client obtains when a user signs in.
package firebase

import (
	"context"
	"encoding/base64"
	"fmt"

	fb "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/lifedrop/blood-donation-api/internal/core/domain"
	"github.com/lifedrop/blood-donation-api/internal/core/ports"
)

// Config selects the Firebase project and, optionally, a base64-encoded
// service account JSON. Without one, application default credentials apply.
type Config struct {
	ProjectID        string
	ServiceKeyBase64 string
}

// NewAuthClient initialises the Firebase app and returns its auth client.
func NewAuthClient(ctx context.Context, cfg Config) (*auth.Client, error) {
	var opts []option.ClientOption
	if cfg.ServiceKeyBase64 != "" {
		raw, err := base64.StdEncoding.DecodeString(cfg.ServiceKeyBase64)
		if err != nil {
			return nil, fmt.Errorf("decode firebase service key: %w", err)
		}
		opts = append(opts, option.WithCredentialsJSON(raw))
	}

	app, err := fb.NewApp(ctx, &fb.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	return client, nil
}

// IDTokenVerifier is the subset of *auth.Client the Verifier needs.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// Verifier implements ports.CredentialVerifier for Firebase ID tokens.
type Verifier struct {
	client IDTokenVerifier
}

func NewVerifier(client IDTokenVerifier) *Verifier {
	return &Verifier{client: client}
}

// Verify checks the ID token signature, audience and expiry, and returns the
// email it was issued for.
func (v *Verifier) Verify(ctx context.Context, credential string) (*ports.Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, credential)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid firebase token: %v", domain.ErrUnauthenticated, err)
	}

	email, _ := token.Claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("%w: firebase token has no email", domain.ErrUnauthenticated)
	}
	return &ports.Identity{Subject: token.UID, Email: domain.NormalizeEmail(email)}, nil
}
