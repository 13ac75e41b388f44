package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	firebase "firebase.google.com/go/v4"
	"github.com/dalemusser/teamflags/internal/app/system/adminauth"
	"github.com/dalemusser/teamflags/internal/app/system/dbhandle"
	"github.com/dalemusser/teamflags/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type fakeDB struct {
	state  dbhandle.State
	client *mongo.Client
}

func (f fakeDB) State() dbhandle.State { return f.state }
func (f fakeDB) Client() *mongo.Client { return f.client }

type fakeAdmin string

func (f fakeAdmin) Status() string { return string(f) }

func check(t *testing.T, h *Handler) (int, Response) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Check(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return rec.Code, resp
}

func TestHandler_Check_Unconfigured(t *testing.T) {
	h := NewHandler(fakeDB{state: dbhandle.StateDegraded}, fakeAdmin(adminauth.StatusUnconfigured), zap.NewNop())

	code, resp := check(t, h)
	if code != http.StatusOK {
		t.Errorf("Check() status = %d, want %d", code, http.StatusOK)
	}
	if resp.Status != "degraded" {
		t.Errorf("response status = %q, want %q", resp.Status, "degraded")
	}
	if resp.Services["mongodb"] != "unconfigured" || resp.Services["identity_admin"] != "unconfigured" {
		t.Errorf("services = %v", resp.Services)
	}
}

func TestHandler_Check_Failed(t *testing.T) {
	h := NewHandler(fakeDB{state: dbhandle.StateFailed}, fakeAdmin(adminauth.StatusOK), zap.NewNop())

	code, resp := check(t, h)
	if code != http.StatusServiceUnavailable {
		t.Errorf("Check() status = %d, want %d", code, http.StatusServiceUnavailable)
	}
	if resp.Services["mongodb"] != "unavailable" || resp.Services["identity_admin"] != "ok" {
		t.Errorf("services = %v", resp.Services)
	}
}

func TestHandler_Check_Live(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(fakeDB{state: dbhandle.StateReady, client: db.Client()}, fakeAdmin(adminauth.StatusOK), zap.NewNop())

	code, resp := check(t, h)
	if code != http.StatusOK || resp.Status != "ok" {
		t.Errorf("Check() = %d %+v", code, resp)
	}
}

func TestHandler_Ready(t *testing.T) {
	tests := []struct {
		state dbhandle.State
		want  int
	}{
		{dbhandle.StateDegraded, http.StatusOK},
		{dbhandle.StateInitializing, http.StatusServiceUnavailable},
		{dbhandle.StateUninitialized, http.StatusServiceUnavailable},
		{dbhandle.StateFailed, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		h := NewHandler(fakeDB{state: tt.state}, fakeAdmin(adminauth.StatusUnconfigured), zap.NewNop())
		rec := httptest.NewRecorder()
		h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
		if rec.Code != tt.want {
			t.Errorf("Ready() with %v status = %d, want %d", tt.state, rec.Code, tt.want)
		}
	}
}

func TestHandler_Live(t *testing.T) {
	h := NewHandler(nil, nil, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Live(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Live() status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRoutes(t *testing.T) {
	h := NewHandler(fakeDB{state: dbhandle.StateDegraded}, fakeAdmin(adminauth.StatusUnconfigured), zap.NewNop())
	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET /live status = %d", rec.Code)
	}
}

func TestHandler_Check_DoesNotInitializeAdmin(t *testing.T) {
	var calls atomic.Int32
	admin := adminauth.New(adminauth.Config{
		ProjectID:   "team-flags",
		ClientEmail: "svc@team-flags.iam.gserviceaccount.com",
		PrivateKey:  "key",
	}, zap.NewNop(), adminauth.WithAppFactory(func(ctx context.Context, creds adminauth.Credentials) (*firebase.App, error) {
		calls.Add(1)
		return &firebase.App{}, nil
	}))
	h := NewHandler(fakeDB{state: dbhandle.StateDegraded}, admin, zap.NewNop())

	_, resp := check(t, h)
	if got := resp.Services["identity_admin"]; got != adminauth.StatusPending {
		t.Errorf("identity_admin = %q, want %q", got, adminauth.StatusPending)
	}
	if calls.Load() != 0 {
		t.Errorf("app factory called %d times by /health, want 0", calls.Load())
	}

	if _, err := admin.App(context.Background()); err != nil {
		t.Fatalf("App() error: %v", err)
	}
	if _, resp := check(t, h); resp.Services["identity_admin"] != adminauth.StatusOK {
		t.Errorf("identity_admin after first use = %q, want ok", resp.Services["identity_admin"])
	}
}
