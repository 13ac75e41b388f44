package adminauth

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
)

// AuthProxy resolves the auth handle on every call, so it can be created
// before the manager is configured and still report AdminNotConfiguredError.
//
// Deprecated: call Manager.Auth.
type AuthProxy struct {
	m *Manager
}

// AdminAuth returns a proxy for the auth handle.
func (m *Manager) AdminAuth() AuthProxy {
	return AuthProxy{m: m}
}

var _ AuthClient = AuthProxy{}

func (p AuthProxy) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	c, err := p.m.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return c.VerifyIDToken(ctx, idToken)
}

func (p AuthProxy) GetUser(ctx context.Context, uid string) (*auth.UserRecord, error) {
	c, err := p.m.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return c.GetUser(ctx, uid)
}

func (p AuthProxy) SetCustomUserClaims(ctx context.Context, uid string, customClaims map[string]interface{}) error {
	c, err := p.m.Auth(ctx)
	if err != nil {
		return err
	}
	return c.SetCustomUserClaims(ctx, uid, customClaims)
}

func (p AuthProxy) RevokeRefreshTokens(ctx context.Context, uid string) error {
	c, err := p.m.Auth(ctx)
	if err != nil {
		return err
	}
	return c.RevokeRefreshTokens(ctx, uid)
}

// AppProxy resolves the admin app on every call.
//
// Deprecated: call Manager.App.
type AppProxy struct {
	m *Manager
}

// AdminApp returns a proxy for the admin app.
func (m *Manager) AdminApp() AppProxy {
	return AppProxy{m: m}
}

// App returns the admin app.
func (p AppProxy) App(ctx context.Context) (*firebase.App, error) {
	return p.m.App(ctx)
}

// Auth returns the auth handle bound to the admin app.
func (p AppProxy) Auth(ctx context.Context) (AuthClient, error) {
	return p.m.Auth(ctx)
}
