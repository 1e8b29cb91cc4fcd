// internal/app/features/dashboard/handler.go
package dashboard

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	agg "memberdash/internal/app/dashboard"
	"memberdash/internal/app/derive"
	"memberdash/internal/app/store/records"
	"memberdash/internal/app/system/timeouts"
	"memberdash/internal/domain/models"
)

// Handler serves the member dashboard and the memberships overview.
type Handler struct {
	Agg  *agg.Aggregator
	Repo records.Repository
	Log  *zap.Logger
}

// NewHandler constructs a dashboard Handler.
func NewHandler(aggregator *agg.Aggregator, repo records.Repository, logger *zap.Logger) *Handler {
	return &Handler{Agg: aggregator, Repo: repo, Log: logger}
}

// ServeDashboard handles GET /api/members/{memberID}/dashboard.
//
// The response is always a complete view-model: read failures upstream
// degrade to zeros and empty lists, never to an error body.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "memberID")
	if memberID == "" {
		http.Error(w, "member id required", http.StatusBadRequest)
		return
	}

	vm := h.Agg.Build(r.Context(), memberID)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(vm)
}

// membershipsResponse is the JSON shape of the memberships overview.
type membershipsResponse struct {
	Summary     derive.MembershipsSummary `json:"summary"`
	Memberships []membershipRow           `json:"memberships"`
}

// membershipRow is one membership with its derived state applied.
type membershipRow struct {
	models.Membership
	Status        string  `json:"status"`
	Debt          float64 `json:"debt"`
	DaysRemaining int     `json:"days_remaining"`
}

// ServeMemberships handles GET /api/members/{memberID}/memberships: every
// membership the member holds across gyms, each with derived status and
// debt, plus the cross-gym summary.
func (h *Handler) ServeMemberships(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "memberID")
	if memberID == "" {
		http.Error(w, "member id required", http.StatusBadRequest)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "fetch memberships")
	defer cancel()

	list, err := h.Repo.Memberships(ctx, memberID)
	if err != nil {
		h.Log.Warn("membership fetch failed, rendering empty overview",
			zap.String("member_id", memberID), zap.Error(err))
		list = nil
	}

	now := time.Now().UTC()
	rows := make([]membershipRow, 0, len(list))
	for _, m := range list {
		state := derive.DeriveState(m, m.TotalDebt, now)
		rows = append(rows, membershipRow{
			Membership:    m,
			Status:        state.Status,
			Debt:          state.Debt,
			DaysRemaining: derive.DaysRemaining(m, now),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(membershipsResponse{
		Summary:     derive.SummarizeMemberships(list),
		Memberships: rows,
	})
}
