package flags

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts the flags API behind guard.
func Routes(h *Handler, guard func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(guard)
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Patch)
	r.Delete("/{id}", h.Delete)
	return r
}
