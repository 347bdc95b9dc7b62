package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"billtrack/internal/core"
)

func TestNextInstallment(t *testing.T) {
	base := core.Transaction{
		ID:           "t1",
		Description:  "Notebook",
		Amount:       decimal.RequireFromString("350"),
		Category:     "Educação",
		AccountType:  core.AccountNonRecurring,
		Status:       core.StatusPaid,
		DueDate:      time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		PaymentDate:  time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC),
		Installments: core.Installments{Current: 1, Total: 3},
	}

	next, ok := NextInstallment(base)
	require.True(t, ok)
	require.Equal(t, "Notebook", next.Description)
	require.True(t, next.Amount.Equal(base.Amount))
	require.Equal(t, core.StatusPending, next.Status)
	require.True(t, next.PaymentDate.IsZero())
	require.Equal(t, core.Installments{Current: 2, Total: 3}, next.Installments)
	// Jan 31 advances to the clamped end of February.
	require.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), next.DueDate)
}

func TestNextInstallmentFinal(t *testing.T) {
	final := core.Transaction{
		Installments: core.Installments{Current: 3, Total: 3},
		Status:       core.StatusPaid,
	}
	_, ok := NextInstallment(final)
	require.False(t, ok)
}

func TestNextInstallmentNotChained(t *testing.T) {
	plain := core.Transaction{Status: core.StatusPaid}
	_, ok := NextInstallment(plain)
	require.False(t, ok)
}
