// internal/app/features/users/routes.go
package users

import "github.com/go-chi/chi/v5"

// Routes returns the user subrouter; mounted under /api/users behind the
// bearer-token middleware.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	return r
}
