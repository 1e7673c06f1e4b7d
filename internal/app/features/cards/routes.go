// internal/app/features/cards/routes.go
package cards

import "github.com/go-chi/chi/v5"

// Routes returns the catalog subrouter; mounted under /api/cards.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	return r
}
