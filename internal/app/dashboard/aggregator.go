// internal/app/dashboard/aggregator.go

// Package dashboard assembles the member dashboard view-model from the
// record store and the derive calculators. Reads are best-effort: a source
// that fails or times out contributes empty data and the dashboard still
// renders.
package dashboard

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"memberdash/internal/app/derive"
	"memberdash/internal/app/store/records"
	"memberdash/internal/app/system/timeouts"
	"memberdash/internal/domain/models"
)

// DefaultRecentVisits caps the formatted attendance list on the dashboard.
const DefaultRecentVisits = 10

// Aggregator builds dashboard view-models.
type Aggregator struct {
	repo   records.Repository
	log    *zap.Logger
	recent int
}

func New(repo records.Repository, log *zap.Logger) *Aggregator {
	return &Aggregator{repo: repo, log: log, recent: DefaultRecentVisits}
}

// WithRecentVisits overrides how many formatted visits the view-model
// carries. Values below one keep the default.
func (a *Aggregator) WithRecentVisits(n int) *Aggregator {
	if n > 0 {
		a.recent = n
	}
	return a
}

// Build assembles the view-model for one member.
//
// The member profile and membership list are fetched concurrently first;
// the representative membership's id then widens the attendance and
// payment lookups, which also run concurrently. Every fetch gets its own
// deadline and its own failure absorption — a slow or broken source
// degrades to empty data without cancelling its siblings, and Build never
// returns a read error to the caller.
func (a *Aggregator) Build(ctx context.Context, memberID string) ViewModel {
	now := time.Now().UTC()

	var (
		wg          sync.WaitGroup
		member      models.Member
		memberships []models.Membership
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		member = a.fetchMember(ctx, memberID)
	}()
	go func() {
		defer wg.Done()
		memberships = a.fetchMemberships(ctx, memberID)
	}()
	wg.Wait()

	rep := derive.ActiveMembership(memberships)
	id := records.Identity{MemberID: memberID}
	if rep != nil {
		id.MembershipID = rep.ID
	}

	var (
		attendance []models.AttendanceRecord
		payments   []models.PaymentRecord
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		attendance = a.fetchAttendance(ctx, id)
	}()
	go func() {
		defer wg.Done()
		payments = a.fetchPayments(ctx, id)
	}()
	wg.Wait()

	vm := ViewModel{
		MemberID:     memberID,
		MemberName:   member.DisplayName(),
		Membership:   MembershipView{Plan: records.DefaultPlan, Status: models.MembershipActive},
		Memberships:  derive.SummarizeMemberships(memberships),
		Debt:         derive.SummarizeDebt(payments, now),
		Stats:        derive.ComputeStats(attendance, now),
		RecentVisits: formatRecent(attendance, a.recent),
		GeneratedAt:  now,
	}

	if rep != nil {
		state := derive.DeriveState(*rep, member.TotalDebt, now)
		vm.Membership = MembershipView{
			ID:            rep.ID,
			GymName:       rep.GymName,
			Plan:          rep.Plan,
			Status:        state.Status,
			Debt:          state.Debt,
			DaysRemaining: derive.DaysRemaining(*rep, now),
		}
		if !rep.EndDate.IsZero() {
			vm.Membership.ExpiresAt = rep.EndDate.Format("2006-01-02")
		}
	}

	if p := derive.NextPendingPayment(payments); p != nil {
		c := derive.Classify(*p, now)
		vm.NextPayment = &c
	}
	return vm
}

func (a *Aggregator) fetchMember(ctx context.Context, memberID string) models.Member {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Short(), a.log, "fetch member")
	defer cancel()

	m, err := a.repo.Member(ctx, memberID)
	if err != nil {
		a.log.Warn("member fetch failed, rendering without profile",
			zap.String("member_id", memberID), zap.Error(err))
		return models.Member{ID: memberID}
	}
	return m
}

func (a *Aggregator) fetchMemberships(ctx context.Context, memberID string) []models.Membership {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Fetch(), a.log, "fetch memberships")
	defer cancel()

	list, err := a.repo.Memberships(ctx, memberID)
	if err != nil {
		a.log.Warn("membership fetch failed, rendering without memberships",
			zap.String("member_id", memberID), zap.Error(err))
		return nil
	}
	return list
}

func (a *Aggregator) fetchAttendance(ctx context.Context, id records.Identity) []models.AttendanceRecord {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Fetch(), a.log, "fetch attendance")
	defer cancel()

	list, err := a.repo.Attendance(ctx, id)
	if err != nil {
		a.log.Warn("attendance fetch failed, rendering zero stats",
			zap.String("member_id", id.MemberID), zap.Error(err))
		return nil
	}
	return list
}

func (a *Aggregator) fetchPayments(ctx context.Context, id records.Identity) []models.PaymentRecord {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Fetch(), a.log, "fetch payments")
	defer cancel()

	list, err := a.repo.Payments(ctx, id)
	if err != nil {
		a.log.Warn("payment fetch failed, rendering zero debt",
			zap.String("member_id", id.MemberID), zap.Error(err))
		return nil
	}
	return list
}

// formatRecent renders the newest records for display, capped at limit.
func formatRecent(records []models.AttendanceRecord, limit int) []RecentVisit {
	sorted := make([]models.AttendanceRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	visits := make([]RecentVisit, 0, len(sorted))
	for _, r := range sorted {
		visits = append(visits, RecentVisit{
			ID:       r.ID,
			Date:     r.Timestamp.Format("2006-01-02"),
			Time:     r.TimeOfDay,
			Kind:     r.Kind,
			Duration: r.Duration,
		})
	}
	return visits
}
