// internal/app/dashboard/viewmodel.go
package dashboard

import (
	"time"

	"memberdash/internal/app/derive"
	"memberdash/internal/domain/models"
)

// RecentVisit is one attendance row formatted for display.
type RecentVisit struct {
	ID       string `json:"id"`
	Date     string `json:"date"` // YYYY-MM-DD
	Time     string `json:"time"` // HH:MM
	Kind     string `json:"kind"`
	Duration int    `json:"duration_minutes,omitempty"`
}

// MembershipView is the representative membership on the dashboard.
type MembershipView struct {
	ID            string  `json:"id,omitempty"`
	GymName       string  `json:"gym_name,omitempty"`
	Plan          string  `json:"plan"`
	Status        string  `json:"status"`
	Debt          float64 `json:"debt"`
	ExpiresAt     string  `json:"expires_at,omitempty"` // YYYY-MM-DD
	DaysRemaining int     `json:"days_remaining"`
}

// ViewModel is the complete dashboard payload for one member. Every field
// is present even when a source failed; lists are never nil. The mobile
// client renders this as-is, so shapes here are the client contract.
type ViewModel struct {
	MemberID     string                        `json:"member_id"`
	MemberName   string                        `json:"member_name"`
	Membership   MembershipView                `json:"membership"`
	Memberships  derive.MembershipsSummary     `json:"memberships"`
	Debt         models.DebtSummary            `json:"debt"`
	Stats        models.AttendanceStats        `json:"attendance"`
	NextPayment  *derive.PaymentClassification `json:"next_payment,omitempty"`
	RecentVisits []RecentVisit                 `json:"recent_visits"`
	GeneratedAt  time.Time                     `json:"generated_at"`
}
