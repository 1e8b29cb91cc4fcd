// internal/app/derive/membership.go

// Package derive holds the pure calculation layer: membership state, debt
// summaries, attendance statistics, and payment classification. Everything
// here is deterministic given an explicit "as of" time, performs no I/O,
// and is recomputed from scratch on every aggregation pass.
package derive

import (
	"time"

	"memberdash/internal/domain/models"
)

// MembershipState is the derived status/debt pair for one membership.
type MembershipState struct {
	Status string
	Debt   float64
}

// DeriveState derives a membership's display status and outstanding debt.
//
// Status rules, in order: an explicit "active" stays active; an end date in
// the past means expired; "suspended"/"inactive" map to suspended; anything
// else defaults to active, matching the back-office behavior for records
// whose status field predates the current vocabulary.
//
// Debt is cost minus paid amount (floored at zero) when the document carries
// both billing figures; otherwise the fallback debt — the member's stored
// total — is used.
func DeriveState(m models.Membership, fallbackDebt float64, asOf time.Time) MembershipState {
	st := MembershipState{Status: models.MembershipActive}

	switch {
	case m.RawStatus == "active":
		st.Status = models.MembershipActive
	case !m.EndDate.IsZero() && m.EndDate.Before(asOf):
		st.Status = models.MembershipExpired
	case m.RawStatus == "suspended" || m.RawStatus == "inactive":
		st.Status = models.MembershipSuspended
	}

	if m.Cost != nil && m.PaidAmount != nil {
		if d := *m.Cost - *m.PaidAmount; d > 0 {
			st.Debt = d
		}
	} else {
		st.Debt = fallbackDebt
	}
	return st
}

// ActiveMembership picks the membership the dashboard treats as "the"
// membership: the first with stored status active, else the first found.
// Returns nil for an empty list.
func ActiveMembership(list []models.Membership) *models.Membership {
	if len(list) == 0 {
		return nil
	}
	for i := range list {
		if list[i].RawStatus == "active" {
			return &list[i]
		}
	}
	return &list[0]
}

// DaysRemaining returns the whole days left until the membership expires,
// floored at zero.
func DaysRemaining(m models.Membership, asOf time.Time) int {
	if m.EndDate.IsZero() || m.EndDate.Before(asOf) {
		return 0
	}
	return int(m.EndDate.Sub(asOf).Hours() / 24)
}

// MembershipsSummary aggregates across every membership a member holds,
// for the multi-gym overview screen.
type MembershipsSummary struct {
	Total     int      `json:"total"`
	Active    int      `json:"active"`
	TotalDebt float64  `json:"total_debt"`
	Gyms      []string `json:"gyms"`
	Plans     []string `json:"plans"`
}

// SummarizeMemberships counts memberships, sums their stored debt, and
// collects the distinct gyms and plans, preserving first-seen order.
func SummarizeMemberships(list []models.Membership) MembershipsSummary {
	s := MembershipsSummary{Gyms: []string{}, Plans: []string{}}
	seenGym := map[string]bool{}
	seenPlan := map[string]bool{}
	for _, m := range list {
		s.Total++
		if m.RawStatus == "active" {
			s.Active++
		}
		s.TotalDebt += m.TotalDebt
		if m.GymName != "" && !seenGym[m.GymName] {
			seenGym[m.GymName] = true
			s.Gyms = append(s.Gyms, m.GymName)
		}
		if m.Plan != "" && !seenPlan[m.Plan] {
			seenPlan[m.Plan] = true
			s.Plans = append(s.Plans, m.Plan)
		}
	}
	return s
}
