package testutil

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"strings"
	"sync"
	"testing"

	"firebase.google.com/go/v4/auth"
)

// ErrInvalidToken is returned by FakeAuth for unknown ID tokens.
var ErrInvalidToken = errors.New("invalid ID token")

// FakeAuth is an in-memory identity-verification handle.
type FakeAuth struct {
	mu      sync.Mutex
	tokens  map[string]*auth.Token
	users   map[string]*auth.UserRecord
	claims  map[string]map[string]interface{}
	revoked []string
}

// NewFakeAuth returns an empty FakeAuth.
func NewFakeAuth() *FakeAuth {
	return &FakeAuth{
		tokens: map[string]*auth.Token{},
		users:  map[string]*auth.UserRecord{},
		claims: map[string]map[string]interface{}{},
	}
}

// AddUser registers a user and an ID token that verifies to it.
func (f *FakeAuth) AddUser(idToken, uid, email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[idToken] = &auth.Token{
		UID:     uid,
		Subject: uid,
		Claims:  map[string]interface{}{"email": email},
	}
	f.users[uid] = &auth.UserRecord{UserInfo: &auth.UserInfo{UID: uid, Email: email}}
}

func (f *FakeAuth) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tok, ok := f.tokens[idToken]
	if !ok {
		return nil, ErrInvalidToken
	}
	return tok, nil
}

func (f *FakeAuth) GetUser(ctx context.Context, uid string) (*auth.UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[uid]
	if !ok {
		return nil, errors.New("user not found: " + uid)
	}
	return u, nil
}

func (f *FakeAuth) SetCustomUserClaims(ctx context.Context, uid string, customClaims map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.claims[uid] = customClaims
	return nil
}

func (f *FakeAuth) RevokeRefreshTokens(ctx context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked = append(f.revoked, uid)
	return nil
}

// Claims returns the custom claims last set for uid.
func (f *FakeAuth) Claims(uid string) map[string]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.claims[uid]
}

// Revoked returns the uids whose refresh tokens were revoked.
func (f *FakeAuth) Revoked() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.revoked...)
}

// ServiceAccountKey returns a freshly generated PKCS#8 PEM private key with
// its newlines escaped, the way it appears in a single-line env value.
func ServiceAccountKey(t *testing.T) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate RSA key: %v", err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("marshal key: %v", err)
	}
	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	return strings.ReplaceAll(string(pemKey), "\n", `\n`)
}
