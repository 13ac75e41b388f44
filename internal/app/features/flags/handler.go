package flags

import (
	"errors"
	"net/http"

	flagstore "github.com/dalemusser/teamflags/internal/app/store/flags"
	"github.com/dalemusser/teamflags/internal/app/system/jsonutil"
	"github.com/dalemusser/teamflags/internal/app/system/normalize"
	"github.com/dalemusser/teamflags/internal/app/system/routeguard"
	"github.com/dalemusser/teamflags/internal/app/system/timeouts"
	"github.com/dalemusser/teamflags/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the flags API. Every response says whether it was backed by
// the database so clients can tell stand-in results apart.
type Handler struct {
	store  *flagstore.Store
	logger *zap.Logger
}

// NewHandler creates a flags Handler reading through src.
func NewHandler(src flagstore.Source, logger *zap.Logger) *Handler {
	return &Handler{store: flagstore.New(src), logger: logger}
}

type listResponse struct {
	Flags     []models.Flag `json:"flags"`
	Persisted bool          `json:"persisted"`
}

type flagResponse struct {
	Flag      models.Flag `json:"flag"`
	Persisted bool        `json:"persisted"`
}

type createRequest struct {
	Team        string `json:"team"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

type patchRequest struct {
	Enabled *bool `json:"enabled"`
}

// List handles GET /api/flags?team=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithRead(r.Context())
	defer cancel()

	flags, persisted, err := h.store.List(ctx, normalize.QueryParam(r.URL.Query().Get("team")))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonutil.OK(w, listResponse{Flags: flags, Persisted: persisted})
}

// Get handles GET /api/flags/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithRead(r.Context())
	defer cancel()

	flag, err := h.store.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonutil.OK(w, flagResponse{Flag: flag, Persisted: true})
}

// Create handles POST /api/flags.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := jsonutil.Decode(w, r, &req); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}

	in := flagstore.CreateInput{
		Team:        req.Team,
		Key:         req.Key,
		Name:        req.Name,
		Description: req.Description,
		Enabled:     req.Enabled,
	}
	if u := routeguard.UserFrom(r.Context()); u != nil {
		in.CreatedBy = u.UID
	}

	ctx, cancel := timeouts.WithWrite(r.Context())
	defer cancel()

	flag, persisted, err := h.store.Create(ctx, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonutil.Created(w, flagResponse{Flag: flag, Persisted: persisted})
}

// Patch handles PATCH /api/flags/{id}.
func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	var req patchRequest
	if err := jsonutil.Decode(w, r, &req); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	if req.Enabled == nil {
		jsonutil.BadRequest(w, "enabled is required")
		return
	}
	ctx, cancel := timeouts.WithWrite(r.Context())
	defer cancel()

	if err := h.store.SetEnabled(ctx, chi.URLParam(r, "id"), *req.Enabled); err != nil {
		h.fail(w, r, err)
		return
	}
	jsonutil.NoContent(w)
}

// Delete handles DELETE /api/flags/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithWrite(r.Context())
	defer cancel()

	if err := h.store.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	jsonutil.NoContent(w)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, flagstore.ErrInvalid):
		jsonutil.BadRequest(w, err.Error())
	case errors.Is(err, flagstore.ErrNotFound):
		jsonutil.NotFound(w, err.Error())
	case mongo.IsDuplicateKeyError(err):
		jsonutil.Error(w, http.StatusConflict, "a flag with this key already exists for the team")
	default:
		h.logger.Error("flags request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		jsonutil.InternalError(w, "internal error")
	}
}
