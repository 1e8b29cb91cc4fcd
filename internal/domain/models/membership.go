// internal/domain/models/membership.go
package models

import "time"

// Membership statuses as derived by the state calculator. RawStatus keeps
// whatever string the store had; Status values are the closed set below.
const (
	MembershipActive    = "active"
	MembershipExpired   = "expired"
	MembershipSuspended = "suspended"
)

// Membership binds one member to one gym and one plan.
//
// Cost and PaidAmount are pointers because the backing documents only
// sometimes carry billing figures; the debt calculation falls back to the
// member's stored debt when either is absent.
type Membership struct {
	ID         string     `json:"id"`
	MemberID   string     `json:"member_id"`
	GymID      string     `json:"gym_id"`
	GymName    string     `json:"gym_name,omitempty"`
	Plan       string     `json:"plan"`
	MonthlyFee float64    `json:"monthly_fee"`
	Cost       *float64   `json:"cost,omitempty"`
	PaidAmount *float64   `json:"paid_amount,omitempty"`
	TotalDebt  float64    `json:"total_debt"`
	RawStatus  string     `json:"raw_status"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
}
