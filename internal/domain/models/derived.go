// internal/domain/models/derived.go
package models

import "time"

// DebtSummary is derived from a member's payment records on every
// aggregation pass. It is never persisted.
type DebtSummary struct {
	TotalDebt         float64    `json:"total_debt"`
	OverdueAmount     float64    `json:"overdue_amount"`
	PendingAmount     float64    `json:"pending_amount"`
	NextDueDate       *time.Time `json:"next_due_date,omitempty"`
	PaidThisMonth     float64    `json:"paid_this_month"`
	LastPaymentDate   *time.Time `json:"last_payment_date,omitempty"`
	LastPaymentAmount float64    `json:"last_payment_amount"`
}

// AttendanceStats is derived from a member's attendance records on every
// aggregation pass. It is never persisted.
type AttendanceStats struct {
	TotalVisits         int        `json:"total_visits"`
	ThisMonthVisits     int        `json:"this_month_visits"`
	ThisWeekVisits      int        `json:"this_week_visits"`
	AverageWeeklyVisits int        `json:"average_weekly_visits"`
	LastVisit           *time.Time `json:"last_visit,omitempty"`
	CurrentStreak       int        `json:"current_streak"`
	LongestStreak       int        `json:"longest_streak"`
}
