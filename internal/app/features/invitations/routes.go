// internal/app/features/invitations/routes.go
package invitations

import "github.com/go-chi/chi/v5"

// Routes returns the invitation subrouter; mounted under /api/invitations
// behind the bearer-token middleware. The literal /accept route is
// registered before the {code} wildcard so chi matches it first.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.ListForHousehold)
	r.Post("/accept", h.Accept)
	r.Get("/{code}", h.Get)
	r.Post("/{id}/decline", h.Decline)
	return r
}
