// internal/app/features/attendance/routes.go
package attendance

import "github.com/go-chi/chi/v5"

// Routes returns the attendance endpoints. Mounted under
// /api/members/{memberID}/attendance.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeHistory)
	r.Get("/status", h.ServeStatus)
	return r
}
