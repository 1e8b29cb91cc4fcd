package derive_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memberdash/internal/app/derive"
	"memberdash/internal/domain/models"
)

func tptr(t time.Time) *time.Time { return &t }

func TestSummarizeDebt(t *testing.T) {
	payments := []models.PaymentRecord{
		// Overdue by date even though stored as pending.
		{Status: models.PaymentPending, Amount: 5000, DueDate: asOf.AddDate(0, 0, -10)},
		// Pending, due in the future.
		{Status: models.PaymentPending, Amount: 3000, DueDate: asOf.AddDate(0, 0, 5)},
		{Status: models.PaymentOverdue, Amount: 2000, DueDate: asOf.AddDate(0, 0, 12)},
		// Paid this month.
		{Status: models.PaymentPaid, Amount: 8000, DueDate: asOf.AddDate(0, 0, -40),
			PaidDate: tptr(asOf.AddDate(0, 0, -3))},
		// Paid long ago; should not touch the monthly total.
		{Status: models.PaymentPaid, Amount: 1000, DueDate: asOf.AddDate(0, -3, 0),
			PaidDate: tptr(asOf.AddDate(0, -2, 0))},
		// Paid but missing its paid date: ignored by payment bookkeeping.
		{Status: models.PaymentPaid, Amount: 700, DueDate: asOf.AddDate(0, 0, -60)},
	}

	s := derive.SummarizeDebt(payments, asOf)
	assert.Equal(t, 10000.0, s.TotalDebt)
	assert.Equal(t, 5000.0, s.OverdueAmount)
	assert.Equal(t, 5000.0, s.PendingAmount)
	require.NotNil(t, s.NextDueDate)
	assert.Equal(t, asOf.AddDate(0, 0, 5), *s.NextDueDate)
	assert.Equal(t, 8000.0, s.PaidThisMonth)
	require.NotNil(t, s.LastPaymentDate)
	assert.Equal(t, asOf.AddDate(0, 0, -3), *s.LastPaymentDate)
	assert.Equal(t, 8000.0, s.LastPaymentAmount)
}

func TestSummarizeDebt_Empty(t *testing.T) {
	s := derive.SummarizeDebt(nil, asOf)
	assert.Equal(t, models.DebtSummary{}, s)
}

func TestSummarizeDebt_Idempotent(t *testing.T) {
	payments := []models.PaymentRecord{
		{Status: models.PaymentPending, Amount: 1200, DueDate: asOf.AddDate(0, 0, 2)},
		{Status: models.PaymentPaid, Amount: 900, DueDate: asOf.AddDate(0, 0, -30),
			PaidDate: tptr(asOf.AddDate(0, 0, -8))},
	}

	first := derive.SummarizeDebt(payments, asOf)
	second := derive.SummarizeDebt(payments, asOf)
	assert.Equal(t, first, second)
}

func TestNextPendingPayment(t *testing.T) {
	t.Run("earliest owed due date wins", func(t *testing.T) {
		payments := []models.PaymentRecord{
			{ID: "late", Status: models.PaymentPending, DueDate: asOf.AddDate(0, 0, 20)},
			{ID: "soon", Status: models.PaymentOverdue, DueDate: asOf.AddDate(0, 0, -2)},
			{ID: "paid", Status: models.PaymentPaid, DueDate: asOf.AddDate(0, 0, -30)},
		}
		got := derive.NextPendingPayment(payments)
		require.NotNil(t, got)
		assert.Equal(t, "soon", got.ID)
	})

	t.Run("nothing owed", func(t *testing.T) {
		payments := []models.PaymentRecord{
			{Status: models.PaymentPaid, DueDate: asOf},
		}
		assert.Nil(t, derive.NextPendingPayment(payments))
	})
}
