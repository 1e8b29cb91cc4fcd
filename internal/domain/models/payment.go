// internal/domain/models/payment.go
package models

import "time"

// Payment statuses as stored. The classifier additionally produces the
// display-only status "due_soon" which never appears in storage.
const (
	PaymentPaid    = "paid"
	PaymentPending = "pending"
	PaymentOverdue = "overdue"
	PaymentPartial = "partial"
	PaymentDueSoon = "due_soon"
)

// PaymentRecord is a billed or paid amount against a membership.
type PaymentRecord struct {
	ID           string     `json:"id"`
	MemberID     string     `json:"member_id"`
	MembershipID string     `json:"membership_id,omitempty"`
	GymID        string     `json:"gym_id,omitempty"`
	Amount       float64    `json:"amount"`
	Concept      string     `json:"concept"`
	DueDate      time.Time  `json:"due_date"`
	PaidDate     *time.Time `json:"paid_date,omitempty"`
	Status       string     `json:"status"` // paid | pending | overdue | partial
	Method       string     `json:"method,omitempty"`
}

// Owed reports whether the payment still contributes to the member's debt.
func (p PaymentRecord) Owed() bool {
	return p.Status == PaymentPending || p.Status == PaymentOverdue
}
