package health

import (
	"context"
	"net/http"

	"github.com/dalemusser/teamflags/internal/app/system/adminauth"
	"github.com/dalemusser/teamflags/internal/app/system/dbhandle"
	"github.com/dalemusser/teamflags/internal/app/system/jsonutil"
	"github.com/dalemusser/teamflags/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// DatabaseStatus is the part of *dbhandle.Manager the probes read.
type DatabaseStatus interface {
	State() dbhandle.State
	Client() *mongo.Client
}

// AdminStatus is the part of *adminauth.Manager the probes read. Status must
// not run admin initialization.
type AdminStatus interface {
	Status() string
}

// Handler provides health check endpoints.
type Handler struct {
	db     DatabaseStatus
	admin  AdminStatus
	logger *zap.Logger
}

// NewHandler creates a new health check Handler.
func NewHandler(db DatabaseStatus, admin AdminStatus, logger *zap.Logger) *Handler {
	return &Handler{db: db, admin: admin, logger: logger}
}

// Response represents the health check response.
type Response struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
}

// Routes returns a chi.Router with health check routes mounted.
// Provides /health (full check), /health/ready, and /health/live.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Check)
	r.Get("/ready", h.Ready)
	r.Get("/live", h.Live)
	return r
}

// MountRootEndpoints adds /ready, /readyz and /livez on the root router.
func MountRootEndpoints(r chi.Router, h *Handler) {
	r.Get("/ready", h.Ready)
	r.Get("/readyz", h.Ready)
	r.Get("/livez", h.Live)
}

// mongoStatus maps the manager state to a service status. An unconfigured
// database is reported but is not a failure: the app runs on the stand-in.
func (h *Handler) mongoStatus(ctx context.Context) (status string, failed bool) {
	switch h.db.State() {
	case dbhandle.StateDegraded:
		return "unconfigured", false
	case dbhandle.StateUninitialized, dbhandle.StateInitializing:
		return "connecting", false
	case dbhandle.StateFailed:
		return "unavailable", true
	}

	ctx, cancel := timeouts.WithPing(ctx)
	defer cancel()
	if err := h.db.Client().Ping(ctx, readpref.Primary()); err != nil {
		h.logger.Warn("health check: mongodb ping failed", zap.Error(err))
		return "unavailable", true
	}
	return "ok", false
}

// Check reports every backing service. It answers 503 only when a configured
// service has failed.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	resp := Response{Status: "ok", Services: map[string]string{}}

	mongoState, failed := h.mongoStatus(r.Context())
	resp.Services["mongodb"] = mongoState

	resp.Services["identity_admin"] = h.admin.Status()

	for _, s := range resp.Services {
		if s != "ok" && s != adminauth.StatusPending {
			resp.Status = "degraded"
		}
	}

	status := http.StatusOK
	if failed {
		status = http.StatusServiceUnavailable
	}
	jsonutil.JSON(w, status, resp)
}

// Ready checks if the service is ready to accept requests.
// Used by Kubernetes readiness probes.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	state, failed := h.mongoStatus(r.Context())
	if failed || state == "connecting" {
		jsonutil.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}
	jsonutil.OK(w, map[string]string{"status": "ready"})
}

// Live checks if the service is alive.
// Used by Kubernetes liveness probes.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	jsonutil.OK(w, map[string]string{"status": "alive"})
}
