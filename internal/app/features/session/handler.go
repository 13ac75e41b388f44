// Package session exposes identity-provider token checks to the UI.
//
// These endpoints fail closed: when the admin credentials are missing the
// caller gets a 503 carrying the remediation message, never a silent pass.
package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/teamflags/internal/app/system/adminauth"
	"github.com/dalemusser/teamflags/internal/app/system/jsonutil"
	"github.com/dalemusser/teamflags/internal/app/system/routeguard"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AuthSource yields the admin auth handle. *adminauth.Manager satisfies it.
type AuthSource interface {
	Auth(ctx context.Context) (adminauth.AuthClient, error)
}

// Handler serves /api/session.
type Handler struct {
	auth   AuthSource
	logger *zap.Logger
}

// NewHandler creates a session Handler.
func NewHandler(auth AuthSource, logger *zap.Logger) *Handler {
	return &Handler{auth: auth, logger: logger}
}

// Routes mounts the session endpoints. Revoke sits behind guard.
func Routes(h *Handler, guard func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/verify", h.Verify)
	r.With(guard).Post("/revoke", h.Revoke)
	r.With(guard).Get("/me", h.Me)
	return r
}

type verifyRequest struct {
	IDToken string `json:"idToken"`
}

type verifyResponse struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
}

// Verify handles POST /api/session/verify.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := jsonutil.Decode(w, r, &req); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	if req.IDToken == "" {
		jsonutil.BadRequest(w, "idToken is required")
		return
	}

	client, ok := h.client(w, r)
	if !ok {
		return
	}

	tok, err := client.VerifyIDToken(r.Context(), req.IDToken)
	if err != nil {
		h.logger.Debug("ID token verification failed", zap.Error(err))
		jsonutil.Unauthorized(w, "invalid ID token")
		return
	}

	resp := verifyResponse{UID: tok.UID}
	if email, ok := tok.Claims["email"].(string); ok {
		resp.Email = email
	}
	jsonutil.OK(w, resp)
}

// Revoke handles POST /api/session/revoke for the authenticated caller.
func (h *Handler) Revoke(w http.ResponseWriter, r *http.Request) {
	user := routeguard.UserFrom(r.Context())
	if user == nil {
		jsonutil.Unauthorized(w, "authentication required")
		return
	}

	client, ok := h.client(w, r)
	if !ok {
		return
	}
	if err := client.RevokeRefreshTokens(r.Context(), user.UID); err != nil {
		h.logger.Error("revoke refresh tokens failed", zap.String("uid", user.UID), zap.Error(err))
		jsonutil.InternalError(w, "could not revoke session")
		return
	}
	jsonutil.NoContent(w)
}

// Me handles GET /api/session/me. Without a configured provider the guard
// lets anonymous callers through, reported as inspection mode.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := routeguard.UserFrom(r.Context())
	if user == nil {
		jsonutil.OK(w, map[string]any{"user": nil, "inspection": true})
		return
	}
	jsonutil.OK(w, map[string]any{"user": verifyResponse{UID: user.UID, Email: user.Email}})
}

func (h *Handler) client(w http.ResponseWriter, r *http.Request) (adminauth.AuthClient, bool) {
	client, err := h.auth.Auth(r.Context())
	if err == nil {
		return client, true
	}
	if errors.Is(err, adminauth.ErrNotConfigured) {
		jsonutil.ServiceUnavailable(w, err.Error())
		return nil, false
	}
	h.logger.Error("identity admin unavailable", zap.Error(err))
	jsonutil.InternalError(w, "identity service unavailable")
	return nil, false
}
