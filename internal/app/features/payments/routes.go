// internal/app/features/payments/routes.go
package payments

import "github.com/go-chi/chi/v5"

// Routes returns the payment endpoints. Mounted under
// /api/members/{memberID}/payments.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServePayments)
	r.Post("/notifications", h.ServeNotify)
	return r
}
