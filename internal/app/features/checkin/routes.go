// internal/app/features/checkin/routes.go
package checkin

import "github.com/go-chi/chi/v5"

// Routes returns the visit write endpoints. Mounted under
// /api/members/{memberID}/visits.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/check-in", h.ServeCheckIn)
	r.Post("/check-out", h.ServeCheckOut)
	return r
}
