// internal/app/features/attendance/handler.go
package attendance

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"memberdash/internal/app/derive"
	"memberdash/internal/app/store/records"
	"memberdash/internal/app/system/timeouts"
	"memberdash/internal/domain/models"
)

// DefaultPageSize caps the record list on the attendance screen.
const DefaultPageSize = 50

// Handler serves the attendance history screen and the presence status.
type Handler struct {
	Repo records.Repository
	Log  *zap.Logger
}

// NewHandler constructs an attendance Handler.
func NewHandler(repo records.Repository, logger *zap.Logger) *Handler {
	return &Handler{Repo: repo, Log: logger}
}

// historyResponse is the JSON shape of the attendance screen.
type historyResponse struct {
	Stats   models.AttendanceStats    `json:"stats"`
	Records []models.AttendanceRecord `json:"records"`
}

// ServeHistory handles GET /api/members/{memberID}/attendance.
//
// Query parameters:
//   - membership: optional membership id to widen the record lookup
//   - limit: optional cap on returned records (default 50)
//
// A failed read degrades to zero stats and an empty list; the screen
// still renders.
func (h *Handler) ServeHistory(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "memberID")
	if memberID == "" {
		http.Error(w, "member id required", http.StatusBadRequest)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "fetch attendance")
	defer cancel()

	id := records.Identity{
		MemberID:     memberID,
		MembershipID: r.URL.Query().Get("membership"),
	}
	list, err := h.Repo.Attendance(ctx, id)
	if err != nil {
		h.Log.Warn("attendance fetch failed, rendering empty history",
			zap.String("member_id", memberID), zap.Error(err))
		list = nil
	}

	resp := historyResponse{
		Stats:   derive.ComputeStats(list, time.Now().UTC()),
		Records: capRecords(list, pageSize(r)),
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// ServeStatus handles GET /api/members/{memberID}/attendance/status: the
// check-in screen asks this before offering a check-out button.
func (h *Handler) ServeStatus(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "memberID")
	if memberID == "" {
		http.Error(w, "member id required", http.StatusBadRequest)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "presence status")
	defer cancel()

	status, err := h.Repo.CurrentStatus(ctx, memberID)
	if err != nil {
		// Treated as "not checked in": the worst case is the member taps
		// check-in and gets the same-day rejection.
		h.Log.Warn("presence status read failed",
			zap.String("member_id", memberID), zap.Error(err))
		status = records.PresenceStatus{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(status)
}

func pageSize(r *http.Request) int {
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return DefaultPageSize
}

func capRecords(list []models.AttendanceRecord, limit int) []models.AttendanceRecord {
	if list == nil {
		return []models.AttendanceRecord{}
	}
	if len(list) > limit {
		return list[:limit]
	}
	return list
}
