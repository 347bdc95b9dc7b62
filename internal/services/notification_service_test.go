package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"billtrack/internal/core"
)

func TestNotificationServiceRun(t *testing.T) {
	store := newMemStore()
	channel := &captureChannel{}
	svc := NewNotificationService(store, store, channel)
	ctx := context.Background()

	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	add := func(due time.Time) core.Transaction {
		tx, err := store.AddTransaction(ctx, core.NewTransaction{
			Description: "Conta",
			Amount:      decimal.RequireFromString("10"),
			Category:    "Moradia",
			AccountType: core.AccountNonRecurring,
			Status:      core.StatusPending,
			DueDate:     due,
		})
		require.NoError(t, err)
		return tx
	}

	overdue := add(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	upcoming := add(time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC))
	add(time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC))

	count, err := svc.Run(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 2, count)
	require.Len(t, channel.emitted(), 2)

	// Tiers were persisted.
	require.Equal(t, core.TierOverdue, store.tiers[overdue.ID])
	require.Equal(t, core.TierUpcoming, store.tiers[upcoming.ID])

	// A second pass over unchanged data is silent.
	count, err = svc.Run(ctx, now)
	require.NoError(t, err)
	require.Zero(t, count)
	require.Len(t, channel.emitted(), 2)
}

func TestNotificationServiceClearsStaleState(t *testing.T) {
	store := newMemStore()
	channel := &captureChannel{}
	svc := NewNotificationService(store, store, channel)
	ctx := context.Background()

	// Tier recorded for a transaction that no longer exists.
	store.tiers["ghost"] = core.TierOverdue

	_, err := svc.Run(ctx, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotContains(t, store.tiers, "ghost")
}

func TestNotificationServiceRunOverReusesSnapshot(t *testing.T) {
	store := newMemStore()
	channel := &captureChannel{}
	svc := NewNotificationService(store, store, channel)
	ctx := context.Background()
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	snapshot := []core.Transaction{{
		ID:          "s1",
		Description: "Conta",
		Amount:      decimal.RequireFromString("10"),
		Status:      core.StatusPending,
		DueDate:     time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	}}

	count, err := svc.RunOver(ctx, snapshot, now)
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.Equal(t, core.TierOverdue, store.tiers["s1"])
}
