// internal/app/features/dashboard/routes.go
package dashboard

import "github.com/go-chi/chi/v5"

// Routes returns the member-scoped dashboard endpoints. Mounted inside
// the /api/members/{memberID} route.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/dashboard", h.ServeDashboard)
	r.Get("/memberships", h.ServeMemberships)
	return r
}
