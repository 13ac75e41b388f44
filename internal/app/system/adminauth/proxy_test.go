package adminauth

import (
	"context"
	"sync/atomic"
	"testing"

	firebase "firebase.google.com/go/v4"
	"github.com/dalemusser/teamflags/internal/testutil"
	"go.uber.org/zap"
)

func TestAuthProxy_ForwardsToMemoizedHandle(t *testing.T) {
	fake := testutil.NewFakeAuth()
	fake.AddUser("tok-1", "uid-1", "a@example.com")

	var authCalls atomic.Int32
	m := New(validConfig(), zap.NewNop(),
		WithAppFactory(func(ctx context.Context, creds Credentials) (*firebase.App, error) {
			return &firebase.App{}, nil
		}),
		WithAuthFactory(func(ctx context.Context, app *firebase.App) (AuthClient, error) {
			authCalls.Add(1)
			return fake, nil
		}))

	proxy := m.AdminAuth()
	ctx := context.Background()

	tok, err := proxy.VerifyIDToken(ctx, "tok-1")
	if err != nil || tok.UID != "uid-1" {
		t.Fatalf("VerifyIDToken() = %v, %v", tok, err)
	}
	if _, err := proxy.GetUser(ctx, "uid-1"); err != nil {
		t.Errorf("GetUser() error: %v", err)
	}
	if err := proxy.SetCustomUserClaims(ctx, "uid-1", map[string]interface{}{"role": "coach"}); err != nil {
		t.Errorf("SetCustomUserClaims() error: %v", err)
	}
	if fake.Claims("uid-1")["role"] != "coach" {
		t.Error("claims were not forwarded")
	}
	if err := proxy.RevokeRefreshTokens(ctx, "uid-1"); err != nil {
		t.Errorf("RevokeRefreshTokens() error: %v", err)
	}
	if authCalls.Load() != 1 {
		t.Errorf("auth factory called %d times, want 1", authCalls.Load())
	}

	if _, err := m.AdminApp().App(ctx); err != nil {
		t.Errorf("AdminApp().App() error: %v", err)
	}
}

func TestProxies_FailWhenNotConfigured(t *testing.T) {
	m := New(Config{}, zap.NewNop())
	ctx := context.Background()

	_, err := m.AdminAuth().VerifyIDToken(ctx, "tok")
	assertNotConfigured(t, err, KeyProjectID, KeyClientEmail, KeyPrivateKey)

	err = m.AdminAuth().RevokeRefreshTokens(ctx, "uid")
	assertNotConfigured(t, err, KeyProjectID)

	_, err = m.AdminApp().App(ctx)
	assertNotConfigured(t, err, KeyProjectID)

	_, err = m.AdminApp().Auth(ctx)
	assertNotConfigured(t, err, KeyProjectID)
}
