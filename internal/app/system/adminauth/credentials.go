package adminauth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

var firebaseScopes = []string{
	"https://www.googleapis.com/auth/cloud-platform",
	"https://www.googleapis.com/auth/firebase",
	"https://www.googleapis.com/auth/identitytoolkit",
	"https://www.googleapis.com/auth/userinfo.email",
}

// Credentials is the service-account triple used to build the admin app.
type Credentials struct {
	ProjectID   string
	ClientEmail string
	PrivateKey  string
}

// DecodePrivateKey turns literal "\n" sequences, as found in single-line
// environment values, into newlines.
func DecodePrivateKey(raw string) string {
	return strings.ReplaceAll(raw, `\n`, "\n")
}

// JSON renders the triple as a service-account key file.
func (c Credentials) JSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"type":         "service_account",
		"project_id":   c.ProjectID,
		"client_email": c.ClientEmail,
		"private_key":  c.PrivateKey,
	})
}

// AppFactory builds the admin application context.
type AppFactory func(ctx context.Context, creds Credentials) (*firebase.App, error)

// AuthFactory builds the identity-verification handle bound to app.
type AuthFactory func(ctx context.Context, app *firebase.App) (AuthClient, error)

// DefaultAppFactory creates a Firebase app from a service-account credential.
func DefaultAppFactory(ctx context.Context, creds Credentials) (*firebase.App, error) {
	raw, err := creds.JSON()
	if err != nil {
		return nil, fmt.Errorf("encode service account: %w", err)
	}
	gcreds, err := google.CredentialsFromJSON(ctx, raw, firebaseScopes...)
	if err != nil {
		return nil, fmt.Errorf("parse service account: %w", err)
	}
	return firebase.NewApp(ctx, &firebase.Config{ProjectID: creds.ProjectID}, option.WithCredentials(gcreds))
}

// DefaultAuthFactory returns the Firebase Auth client for app.
func DefaultAuthFactory(ctx context.Context, app *firebase.App) (AuthClient, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// AuthClient is the identity-verification surface the app uses.
// *auth.Client satisfies it.
type AuthClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	GetUser(ctx context.Context, uid string) (*auth.UserRecord, error)
	SetCustomUserClaims(ctx context.Context, uid string, customClaims map[string]interface{}) error
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

var _ AuthClient = (*auth.Client)(nil)
