package testutil

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"memberdash/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// CheckIn builds an attendance record for tests.
func CheckIn(id string, ts time.Time) models.AttendanceRecord {
	return models.AttendanceRecord{
		ID:        id,
		Timestamp: ts,
		TimeOfDay: ts.Format("15:04"),
		Kind:      models.KindCheckIn,
	}
}

// PendingPayment builds a pending payment for tests.
func PendingPayment(id string, amount float64, due time.Time) models.PaymentRecord {
	return models.PaymentRecord{
		ID:      id,
		Amount:  amount,
		Status:  models.PaymentPending,
		DueDate: due,
	}
}

// PaidPayment builds a settled payment for tests.
func PaidPayment(id string, amount float64, due, paid time.Time) models.PaymentRecord {
	return models.PaymentRecord{
		ID:       id,
		Amount:   amount,
		Status:   models.PaymentPaid,
		DueDate:  due,
		PaidDate: &paid,
	}
}
