// Package routeguard decides whether a protected route may render.
//
// The policy is the one the client-side guard applies: block while auth
// state is loading, or while there is no user and the identity provider is
// configured. With no provider configured, nothing is blocked so the app can
// be inspected locally.
package routeguard

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/dalemusser/teamflags/internal/app/system/network"
	"go.uber.org/zap"
)

// ProviderConfigured reports whether both public identity-provider values are
// set.
func ProviderConfigured(apiKey, projectID string) bool {
	return apiKey != "" && projectID != ""
}

// User is the authenticated caller.
type User struct {
	UID   string
	Email string
}

// State is the auth hook's view of the caller.
type State struct {
	User    *User
	Loading bool
}

// Decision is the rendering outcome.
type Decision int

const (
	RenderChildren Decision = iota
	ShowLoading
)

func (d Decision) String() string {
	if d == ShowLoading {
		return "show-loading"
	}
	return "render-children"
}

// Decide applies the rendering policy.
func Decide(s State, providerConfigured bool) Decision {
	if s.Loading || (s.User == nil && providerConfigured) {
		return ShowLoading
	}
	return RenderChildren
}

// Verifier checks identity-provider ID tokens.
type Verifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type ctxKey struct{}

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFrom returns the user stored by Middleware, or nil.
func UserFrom(ctx context.Context) *User {
	u, _ := ctx.Value(ctxKey{}).(*User)
	return u
}

// Middleware is the server-side rendition of the guard. A Bearer ID token,
// when present, is verified and the user stored in the request context. A
// request is then allowed or refused with Decide; a server request is never
// "loading", so ShowLoading becomes 401.
func Middleware(v Verifier, providerConfigured bool, logger *zap.Logger) func(http.Handler) http.Handler {
	if !providerConfigured {
		logger.Warn("identity provider not configured; protected routes are open for local inspection")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var user *User
			if token := bearerToken(r); token != "" && providerConfigured {
				tok, err := v.VerifyIDToken(r.Context(), token)
				if err != nil {
					logger.Debug("ID token rejected",
						zap.String("path", r.URL.Path),
						zap.String("ip", network.ClientIP(r)),
						zap.Error(err))
				} else {
					user = userFromToken(tok)
				}
			}

			if Decide(State{User: user}, providerConfigured) == ShowLoading {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}

			if user != nil {
				r = r.WithContext(WithUser(r.Context(), user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func userFromToken(tok *auth.Token) *User {
	u := &User{UID: tok.UID}
	if email, ok := tok.Claims["email"].(string); ok {
		u.Email = email
	}
	return u
}
