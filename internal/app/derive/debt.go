// internal/app/derive/debt.go
package derive

import (
	"time"

	"memberdash/internal/domain/models"
)

// SummarizeDebt folds a member's payment records into a DebtSummary.
//
// Owed records (pending or overdue) contribute to the total; the split into
// overdue vs pending portions is by due date against asOf, not the stored
// status string, since the store's status field lags reality. The next due
// date is the earliest not-yet-due owed payment. Paid records feed the
// this-month total and the last-payment fields.
//
// Pure: calling it twice on the same input yields identical output.
func SummarizeDebt(payments []models.PaymentRecord, asOf time.Time) models.DebtSummary {
	var s models.DebtSummary
	monthStart := StartOfMonth(asOf)

	for _, p := range payments {
		if p.Owed() {
			s.TotalDebt += p.Amount
			if p.DueDate.Before(asOf) {
				s.OverdueAmount += p.Amount
			} else {
				s.PendingAmount += p.Amount
				if s.NextDueDate == nil || p.DueDate.Before(*s.NextDueDate) {
					due := p.DueDate
					s.NextDueDate = &due
				}
			}
		}

		if p.Status == models.PaymentPaid && p.PaidDate != nil {
			if !p.PaidDate.Before(monthStart) {
				s.PaidThisMonth += p.Amount
			}
			if s.LastPaymentDate == nil || p.PaidDate.After(*s.LastPaymentDate) {
				paid := *p.PaidDate
				s.LastPaymentDate = &paid
				s.LastPaymentAmount = p.Amount
			}
		}
	}
	return s
}

// NextPendingPayment returns the owed payment with the earliest due date,
// or nil when the member owes nothing.
func NextPendingPayment(payments []models.PaymentRecord) *models.PaymentRecord {
	var next *models.PaymentRecord
	for i := range payments {
		if !payments[i].Owed() {
			continue
		}
		if next == nil || payments[i].DueDate.Before(next.DueDate) {
			next = &payments[i]
		}
	}
	return next
}
