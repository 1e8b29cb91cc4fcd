package testutil

import (
	"context"
	"time"

	"memberdash/internal/app/store/records"
	"memberdash/internal/domain/models"
)

// FakeRepo is an in-memory records.Repository for aggregator and handler
// tests. The zero value is usable: every read returns empty data and every
// write succeeds. Delay, when set, is applied to each call so tests can
// exercise per-fetch deadlines.
type FakeRepo struct {
	MemberDoc      models.Member
	MemberErr      error
	MembershipList []models.Membership
	MembershipsErr error
	AttendanceList []models.AttendanceRecord
	AttendanceErr  error
	PaymentList    []models.PaymentRecord
	PaymentsErr    error

	CheckInResult  models.AttendanceRecord
	CheckInErr     error
	CheckOutResult models.AttendanceRecord
	CheckOutErr    error
	Status         records.PresenceStatus
	StatusErr      error
	Receipt        string
	NotifyErr      error

	Delay time.Duration

	// Captured arguments, for assertions.
	LastCheckIn      records.CheckInRequest
	LastNotification records.PaymentNotification
	AttendanceID     records.Identity
	PaymentID        records.Identity
}

var _ records.Repository = (*FakeRepo)(nil)

// wait blocks for Delay or until ctx is done, mimicking a slow backend.
func (f *FakeRepo) wait(ctx context.Context) error {
	if f.Delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(f.Delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *FakeRepo) Member(ctx context.Context, memberID string) (models.Member, error) {
	if err := f.wait(ctx); err != nil {
		return models.Member{}, err
	}
	if f.MemberErr != nil {
		return models.Member{}, f.MemberErr
	}
	if f.MemberDoc.ID == "" {
		return models.Member{}, records.ErrMemberNotFound
	}
	return f.MemberDoc, nil
}

func (f *FakeRepo) Memberships(ctx context.Context, memberID string) ([]models.Membership, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.MembershipsErr != nil {
		return nil, f.MembershipsErr
	}
	return f.MembershipList, nil
}

func (f *FakeRepo) Attendance(ctx context.Context, id records.Identity) ([]models.AttendanceRecord, error) {
	f.AttendanceID = id
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.AttendanceErr != nil {
		return nil, f.AttendanceErr
	}
	return f.AttendanceList, nil
}

func (f *FakeRepo) Payments(ctx context.Context, id records.Identity) ([]models.PaymentRecord, error) {
	f.PaymentID = id
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.PaymentsErr != nil {
		return nil, f.PaymentsErr
	}
	return f.PaymentList, nil
}

func (f *FakeRepo) RegisterCheckIn(ctx context.Context, req records.CheckInRequest) (models.AttendanceRecord, error) {
	f.LastCheckIn = req
	if f.CheckInErr != nil {
		return models.AttendanceRecord{}, f.CheckInErr
	}
	return f.CheckInResult, nil
}

func (f *FakeRepo) RegisterCheckOut(ctx context.Context, memberID string) (models.AttendanceRecord, error) {
	if f.CheckOutErr != nil {
		return models.AttendanceRecord{}, f.CheckOutErr
	}
	return f.CheckOutResult, nil
}

func (f *FakeRepo) CurrentStatus(ctx context.Context, memberID string) (records.PresenceStatus, error) {
	if f.StatusErr != nil {
		return records.PresenceStatus{}, f.StatusErr
	}
	return f.Status, nil
}

func (f *FakeRepo) RecordPaymentNotification(ctx context.Context, n records.PaymentNotification) (string, error) {
	f.LastNotification = n
	if f.NotifyErr != nil {
		return "", f.NotifyErr
	}
	if f.Receipt != "" {
		return f.Receipt, nil
	}
	return "receipt-1", nil
}
