package payments_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"memberdash/internal/app/features/payments"
	"memberdash/internal/domain/models"
	"memberdash/internal/testutil"
)

func TestServePayments(t *testing.T) {
	now := time.Now().UTC()
	repo := &testutil.FakeRepo{
		PaymentList: []models.PaymentRecord{
			testutil.PendingPayment("late", 5000, now.AddDate(0, 0, -10)),
			testutil.PendingPayment("soon", 3000, now.AddDate(0, 0, 2)),
			testutil.PaidPayment("settled", 8000, now.AddDate(0, -1, 0), now.AddDate(0, 0, -20)),
		},
	}
	handler := payments.NewHandler(repo, zap.NewNop())

	req := httptest.NewRequest("GET", "/", nil)
	req = testutil.WithChiURLParam(req, "memberID", "m-1")
	rec := httptest.NewRecorder()

	handler.ServePayments(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		History []struct {
			ID             string `json:"id"`
			Classification struct {
				Status  string `json:"status"`
				Urgency string `json:"urgency"`
			} `json:"classification"`
		} `json:"history"`
		Pending []struct {
			ID string `json:"id"`
		} `json:"pending"`
		Debt struct {
			TotalDebt float64 `json:"total_debt"`
		} `json:"debt"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	// History newest due date first.
	if len(resp.History) != 3 {
		t.Fatalf("history: got %d entries, want 3", len(resp.History))
	}
	if resp.History[0].ID != "soon" {
		t.Errorf("history[0]: got %q, want %q", resp.History[0].ID, "soon")
	}

	// Pending soonest due date first: the overdue one leads.
	if len(resp.Pending) != 2 {
		t.Fatalf("pending: got %d entries, want 2", len(resp.Pending))
	}
	if resp.Pending[0].ID != "late" {
		t.Errorf("pending[0]: got %q, want %q", resp.Pending[0].ID, "late")
	}

	if resp.Debt.TotalDebt != 8000 {
		t.Errorf("total debt: got %v, want 8000", resp.Debt.TotalDebt)
	}

	// The overdue payment is reclassified by date regardless of its
	// stored status.
	if resp.History[1].Classification.Status != "overdue" {
		t.Errorf("classification: got %q, want %q", resp.History[1].Classification.Status, "overdue")
	}
	if resp.History[1].Classification.Urgency != "high" {
		t.Errorf("urgency: got %q, want %q", resp.History[1].Classification.Urgency, "high")
	}
}

func TestServePayments_FetchFailureDegrades(t *testing.T) {
	repo := &testutil.FakeRepo{PaymentsErr: errors.New("down")}
	handler := payments.NewHandler(repo, zap.NewNop())

	req := httptest.NewRequest("GET", "/", nil)
	req = testutil.WithChiURLParam(req, "memberID", "m-1")
	rec := httptest.NewRecorder()

	handler.ServePayments(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		History []json.RawMessage `json:"history"`
		Pending []json.RawMessage `json:"pending"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.History == nil || resp.Pending == nil {
		t.Error("lists must be present (empty, not null) on fetch failure")
	}
}

func TestServeNotify(t *testing.T) {
	repo := &testutil.FakeRepo{Receipt: "rcpt-42"}
	handler := payments.NewHandler(repo, zap.NewNop())

	body := strings.NewReader(`{"membership_id":"assign-1","amount":5000,"method":"transfer","reference":"B-123"}`)
	req := httptest.NewRequest("POST", "/notifications", body)
	req = testutil.WithChiURLParam(req, "memberID", "m-1")
	rec := httptest.NewRecorder()

	handler.ServeNotify(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		OK      bool   `json:"ok"`
		Receipt string `json:"receipt"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !resp.OK || resp.Receipt != "rcpt-42" {
		t.Errorf("response: got %+v, want ok with receipt rcpt-42", resp)
	}

	if repo.LastNotification.Amount != 5000 {
		t.Errorf("amount: got %v, want 5000", repo.LastNotification.Amount)
	}
	if repo.LastNotification.MemberID != "m-1" {
		t.Errorf("member: got %q, want %q", repo.LastNotification.MemberID, "m-1")
	}
}

func TestServeNotify_RejectsNonPositiveAmount(t *testing.T) {
	handler := payments.NewHandler(&testutil.FakeRepo{}, zap.NewNop())

	req := httptest.NewRequest("POST", "/notifications", strings.NewReader(`{"amount":0}`))
	req = testutil.WithChiURLParam(req, "memberID", "m-1")
	rec := httptest.NewRecorder()

	handler.ServeNotify(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestServeNotify_WriteFailureSurfaces(t *testing.T) {
	repo := &testutil.FakeRepo{NotifyErr: errors.New("down")}
	handler := payments.NewHandler(repo, zap.NewNop())

	req := httptest.NewRequest("POST", "/notifications", strings.NewReader(`{"amount":100}`))
	req = testutil.WithChiURLParam(req, "memberID", "m-1")
	rec := httptest.NewRecorder()

	handler.ServeNotify(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadGateway)
	}

	var resp struct {
		OK      bool   `json:"ok"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.OK || resp.Message == "" {
		t.Errorf("response: got %+v, want ok=false with message", resp)
	}
}
