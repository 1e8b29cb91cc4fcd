// internal/app/derive/payment.go
package derive

import (
	"math"
	"time"

	"memberdash/internal/domain/models"
)

// Urgency tiers for payment attention.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// PaymentClassification is the display status and urgency for one payment.
type PaymentClassification struct {
	Status       string `json:"status"` // paid | pending | overdue | due_soon
	DaysUntilDue int    `json:"days_until_due"`
	Urgency      string `json:"urgency"` // low | medium | high
}

// Classify derives a payment's display status from its due date and the
// evaluation time. Paid settles everything; otherwise the day count until
// the due date picks the tier:
//
//	< 0    overdue  / high
//	0..3   due_soon / high
//	4..7   pending  / medium
//	> 7    pending  / low
//
// Pure and deterministic given asOf; callers re-evaluate on every read
// rather than caching across days.
func Classify(p models.PaymentRecord, asOf time.Time) PaymentClassification {
	if p.Status == models.PaymentPaid {
		return PaymentClassification{Status: models.PaymentPaid, Urgency: UrgencyLow}
	}

	days := DaysUntilDue(p.DueDate, asOf)
	switch {
	case days < 0:
		return PaymentClassification{models.PaymentOverdue, days, UrgencyHigh}
	case days <= 3:
		return PaymentClassification{models.PaymentDueSoon, days, UrgencyHigh}
	case days <= 7:
		return PaymentClassification{models.PaymentPending, days, UrgencyMedium}
	default:
		return PaymentClassification{models.PaymentPending, days, UrgencyLow}
	}
}

// DaysUntilDue is the number of days from asOf to due, rounded up: a due
// date later today reports 1, a due date this instant 0, and anything a
// full day or more in the past goes negative.
func DaysUntilDue(due, asOf time.Time) int {
	return int(math.Ceil(due.Sub(asOf).Hours() / 24))
}
