package attendance_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"memberdash/internal/app/features/attendance"
	"memberdash/internal/app/store/records"
	"memberdash/internal/domain/models"
	"memberdash/internal/testutil"
)

func TestServeHistory(t *testing.T) {
	now := time.Now().UTC()
	repo := &testutil.FakeRepo{
		AttendanceList: []models.AttendanceRecord{
			testutil.CheckIn("att-1", now.Add(-1*time.Hour)),
			testutil.CheckIn("att-2", now.AddDate(0, 0, -1)),
			testutil.CheckIn("att-3", now.AddDate(0, 0, -2)),
		},
	}
	handler := attendance.NewHandler(repo, zap.NewNop())

	req := httptest.NewRequest("GET", "/?membership=assign-1", nil)
	req = testutil.WithChiURLParam(req, "memberID", "m-1")
	rec := httptest.NewRecorder()

	handler.ServeHistory(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		Stats struct {
			TotalVisits   int `json:"total_visits"`
			CurrentStreak int `json:"current_streak"`
		} `json:"stats"`
		Records []struct {
			ID string `json:"id"`
		} `json:"records"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Stats.TotalVisits != 3 {
		t.Errorf("total visits: got %d, want 3", resp.Stats.TotalVisits)
	}
	if resp.Stats.CurrentStreak != 3 {
		t.Errorf("current streak: got %d, want 3", resp.Stats.CurrentStreak)
	}
	if len(resp.Records) != 3 {
		t.Errorf("records: got %d, want 3", len(resp.Records))
	}

	// The membership query parameter widened the lookup identity.
	if repo.AttendanceID.MembershipID != "assign-1" {
		t.Errorf("membership id: got %q, want %q", repo.AttendanceID.MembershipID, "assign-1")
	}
}

func TestServeHistory_LimitParam(t *testing.T) {
	now := time.Now().UTC()
	repo := &testutil.FakeRepo{}
	for i := 0; i < 10; i++ {
		repo.AttendanceList = append(repo.AttendanceList,
			testutil.CheckIn("att", now.AddDate(0, 0, -i)))
	}
	handler := attendance.NewHandler(repo, zap.NewNop())

	req := httptest.NewRequest("GET", "/?limit=4", nil)
	req = testutil.WithChiURLParam(req, "memberID", "m-1")
	rec := httptest.NewRecorder()

	handler.ServeHistory(rec, req)

	var resp struct {
		Records []json.RawMessage `json:"records"`
		Stats   struct {
			TotalVisits int `json:"total_visits"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp.Records) != 4 {
		t.Errorf("records: got %d, want 4", len(resp.Records))
	}
	// Stats always cover the full history, not the page.
	if resp.Stats.TotalVisits != 10 {
		t.Errorf("total visits: got %d, want 10", resp.Stats.TotalVisits)
	}
}

func TestServeHistory_FetchFailureDegrades(t *testing.T) {
	repo := &testutil.FakeRepo{AttendanceErr: errors.New("down")}
	handler := attendance.NewHandler(repo, zap.NewNop())

	req := httptest.NewRequest("GET", "/", nil)
	req = testutil.WithChiURLParam(req, "memberID", "m-1")
	rec := httptest.NewRecorder()

	handler.ServeHistory(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		Stats   models.AttendanceStats `json:"stats"`
		Records []json.RawMessage      `json:"records"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Stats.TotalVisits != 0 {
		t.Errorf("total visits: got %d, want 0", resp.Stats.TotalVisits)
	}
	if resp.Records == nil {
		t.Error("records must be present (empty, not null) on fetch failure")
	}
}

func TestServeStatus(t *testing.T) {
	open := testutil.CheckIn("att-1", time.Now().UTC().Add(-time.Hour))
	repo := &testutil.FakeRepo{
		Status: records.PresenceStatus{CheckedIn: true, CanCheckOut: true, Open: &open},
	}
	handler := attendance.NewHandler(repo, zap.NewNop())

	req := httptest.NewRequest("GET", "/status", nil)
	req = testutil.WithChiURLParam(req, "memberID", "m-1")
	rec := httptest.NewRecorder()

	handler.ServeStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		CheckedIn   bool `json:"checked_in"`
		CanCheckOut bool `json:"can_check_out"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !resp.CheckedIn || !resp.CanCheckOut {
		t.Errorf("response: got %+v, want checked in and able to check out", resp)
	}
}

func TestServeStatus_ReadFailureMeansNotCheckedIn(t *testing.T) {
	repo := &testutil.FakeRepo{StatusErr: errors.New("down")}
	handler := attendance.NewHandler(repo, zap.NewNop())

	req := httptest.NewRequest("GET", "/status", nil)
	req = testutil.WithChiURLParam(req, "memberID", "m-1")
	rec := httptest.NewRecorder()

	handler.ServeStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		CheckedIn bool `json:"checked_in"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.CheckedIn {
		t.Error("expected checked_in=false on read failure")
	}
}
