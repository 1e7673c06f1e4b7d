// internal/app/features/households/routes.go
package households

import (
	"github.com/go-chi/chi/v5"

	"github.com/tandemhq/tandem/internal/app/features/deck"
)

// Routes returns the household subrouter; mounted under /api/households
// behind the bearer-token middleware. The deck handler's per-household
// endpoints live here because they share the {id} route parameter.
func Routes(h *Handler, d *deck.Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Get("/{id}/members", h.Members)
	r.Post("/{id}/members/{userID}", h.AddMember)
	r.Delete("/{id}/members/{userID}", h.RemoveMember)
	r.Get("/{id}/balance", h.Balance)
	r.Post("/{id}/deck", d.Adopt)
	r.Get("/{id}/deck", d.List)
	return r
}
