// internal/app/features/payments/handler.go
package payments

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"memberdash/internal/app/derive"
	"memberdash/internal/app/store/records"
	"memberdash/internal/app/system/timeouts"
	"memberdash/internal/domain/models"
)

// Handler serves the payments screen and the payment-notification write.
type Handler struct {
	Repo records.Repository
	Log  *zap.Logger
}

// NewHandler constructs a payments Handler.
func NewHandler(repo records.Repository, logger *zap.Logger) *Handler {
	return &Handler{Repo: repo, Log: logger}
}

// paymentView is one payment with its date-based classification applied.
// The stored status can lag reality (a pending payment whose due date has
// passed), so the classification is what the client displays.
type paymentView struct {
	models.PaymentRecord
	Classification derive.PaymentClassification `json:"classification"`
}

// paymentsResponse is the JSON shape of the payments screen.
type paymentsResponse struct {
	History []paymentView      `json:"history"` // newest due date first
	Pending []paymentView      `json:"pending"` // soonest due date first
	Debt    models.DebtSummary `json:"debt"`
}

// ServePayments handles GET /api/members/{memberID}/payments.
//
// Query parameters:
//   - membership: optional membership id to widen the record lookup
//
// A failed read degrades to empty lists and a zero debt summary.
func (h *Handler) ServePayments(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "memberID")
	if memberID == "" {
		http.Error(w, "member id required", http.StatusBadRequest)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "fetch payments")
	defer cancel()

	id := records.Identity{
		MemberID:     memberID,
		MembershipID: r.URL.Query().Get("membership"),
	}
	list, err := h.Repo.Payments(ctx, id)
	if err != nil {
		h.Log.Warn("payment fetch failed, rendering empty screen",
			zap.String("member_id", memberID), zap.Error(err))
		list = nil
	}

	now := time.Now().UTC()

	history := make([]paymentView, 0, len(list))
	pending := make([]paymentView, 0)
	for _, p := range list {
		v := paymentView{PaymentRecord: p, Classification: derive.Classify(p, now)}
		history = append(history, v)
		if p.Owed() {
			pending = append(pending, v)
		}
	}
	sort.Slice(history, func(i, j int) bool {
		return history[i].DueDate.After(history[j].DueDate)
	})
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].DueDate.Before(pending[j].DueDate)
	})

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(paymentsResponse{
		History: history,
		Pending: pending,
		Debt:    derive.SummarizeDebt(list, now),
	})
}

// notifyRequest is the body of a payment notification.
type notifyRequest struct {
	MembershipID string  `json:"membership_id"`
	Amount       float64 `json:"amount"`
	Concept      string  `json:"concept"`
	Method       string  `json:"method"`
	Reference    string  `json:"reference"`
}

// notifyResponse reports the outcome of a payment notification.
type notifyResponse struct {
	OK      bool   `json:"ok"`
	Receipt string `json:"receipt,omitempty"`
	Message string `json:"message,omitempty"`
}

// ServeNotify handles POST /api/members/{memberID}/payments/notifications.
//
// The member reports a payment made outside the app (cash at the desk,
// bank transfer); the back office verifies it later. Unlike reads, this
// write surfaces failure to the caller.
func (h *Handler) ServeNotify(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "memberID")
	if memberID == "" {
		http.Error(w, "member id required", http.StatusBadRequest)
		return
	}

	var req notifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Amount <= 0 {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "record payment notification")
	defer cancel()

	receipt, err := h.Repo.RecordPaymentNotification(ctx, records.PaymentNotification{
		MemberID:     memberID,
		MembershipID: req.MembershipID,
		Amount:       req.Amount,
		Concept:      req.Concept,
		Method:       req.Method,
		Reference:    req.Reference,
	})

	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		h.Log.Error("payment notification write failed",
			zap.String("member_id", memberID), zap.Error(err))
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(notifyResponse{
			OK:      false,
			Message: "could not record the payment, try again later",
		})
		return
	}

	_ = json.NewEncoder(w).Encode(notifyResponse{OK: true, Receipt: receipt})
}
