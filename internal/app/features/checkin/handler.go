// internal/app/features/checkin/handler.go
package checkin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"memberdash/internal/app/store/records"
	"memberdash/internal/app/system/timeouts"
	"memberdash/internal/domain/models"
)

// Handler serves the check-in and check-out writes.
type Handler struct {
	Repo records.Repository
	Log  *zap.Logger
}

// NewHandler constructs a checkin Handler.
func NewHandler(repo records.Repository, logger *zap.Logger) *Handler {
	return &Handler{Repo: repo, Log: logger}
}

// checkInRequest is the body of a check-in.
type checkInRequest struct {
	MembershipID string `json:"membership_id"`
	GymID        string `json:"gym_id"`
}

// visitResponse reports the outcome of a check-in or check-out. These are
// the only operations whose failure the member sees; everything else on
// the mobile surface degrades silently.
type visitResponse struct {
	OK      bool                     `json:"ok"`
	Message string                   `json:"message,omitempty"`
	Record  *models.AttendanceRecord `json:"record,omitempty"`
}

// ServeCheckIn handles POST /api/members/{memberID}/visits/check-in.
//
// A check-in while an earlier visit is still open gets 409; a store failure
// gets 502. Both carry {ok:false, message}.
func (h *Handler) ServeCheckIn(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "memberID")
	if memberID == "" {
		http.Error(w, "member id required", http.StatusBadRequest)
		return
	}

	var req checkInRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "register check-in")
	defer cancel()

	rec, err := h.Repo.RegisterCheckIn(ctx, records.CheckInRequest{
		MemberID:     memberID,
		MembershipID: req.MembershipID,
		GymID:        req.GymID,
	})

	w.Header().Set("Content-Type", "application/json")
	switch {
	case errors.Is(err, records.ErrAlreadyCheckedIn):
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(visitResponse{
			OK:      false,
			Message: "already checked in",
		})
	case err != nil:
		h.Log.Error("check-in failed",
			zap.String("member_id", memberID), zap.Error(err))
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(visitResponse{
			OK:      false,
			Message: "could not register the visit, try again later",
		})
	default:
		_ = json.NewEncoder(w).Encode(visitResponse{OK: true, Record: &rec})
	}
}

// ServeCheckOut handles POST /api/members/{memberID}/visits/check-out.
//
// Closing a visit that was never opened gets 409.
func (h *Handler) ServeCheckOut(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "memberID")
	if memberID == "" {
		http.Error(w, "member id required", http.StatusBadRequest)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "register check-out")
	defer cancel()

	rec, err := h.Repo.RegisterCheckOut(ctx, memberID)

	w.Header().Set("Content-Type", "application/json")
	switch {
	case errors.Is(err, records.ErrNoOpenCheckIn):
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(visitResponse{
			OK:      false,
			Message: "no open check-in today",
		})
	case err != nil:
		h.Log.Error("check-out failed",
			zap.String("member_id", memberID), zap.Error(err))
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(visitResponse{
			OK:      false,
			Message: "could not close the visit, try again later",
		})
	default:
		_ = json.NewEncoder(w).Encode(visitResponse{OK: true, Record: &rec})
	}
}
