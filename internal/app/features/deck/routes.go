// internal/app/features/deck/routes.go
package deck

import "github.com/go-chi/chi/v5"

// Routes returns the per-card subrouter; mounted under /api/deck. The
// adopt and list endpoints are registered by the households router, which
// owns the /api/households/{id} prefix.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{cardID}", h.Get)
	r.Patch("/{cardID}", h.Update)
	r.Post("/{cardID}/assign", h.Assign)
	r.Delete("/{cardID}", h.Delete)
	return r
}
