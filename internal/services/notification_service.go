package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"billtrack/internal/core"
	"billtrack/internal/ports"
)

// NotificationService runs the due-date alert pass: load the persisted tier
// map, evaluate the gate over the current snapshot, persist the resulting
// tiers and push the new alerts to the channel. The gate itself is pure
// (core.EvaluateNotifications); this service is only its stateful boundary.
type NotificationService struct {
	transactions ports.TransactionStore
	state        ports.NotificationStateStore
	channel      ports.NotificationChannel
}

func NewNotificationService(transactions ports.TransactionStore, state ports.NotificationStateStore, channel ports.NotificationChannel) *NotificationService {
	return &NotificationService{
		transactions: transactions,
		state:        state,
		channel:      channel,
	}
}

// Run executes one pass as of now and returns the number of alerts emitted.
// It is called synchronously after every mutation and periodically by the
// notify worker; repeated passes over unchanged data emit nothing.
func (s *NotificationService) Run(ctx context.Context, now time.Time) (int, error) {
	snapshot, err := s.transactions.ListTransactions(ctx)
	if err != nil {
		return 0, fmt.Errorf("load transactions: %w", err)
	}
	return s.RunOver(ctx, snapshot, now)
}

// RunOver is Run against an already fetched snapshot, so a caller that just
// mutated the store can reuse its own read.
func (s *NotificationService) RunOver(ctx context.Context, snapshot []core.Transaction, now time.Time) (int, error) {
	prev, err := s.state.LoadNotificationTiers(ctx)
	if err != nil {
		return 0, fmt.Errorf("load notification tiers: %w", err)
	}

	next, alerts := core.EvaluateNotifications(snapshot, prev, now)

	// Persist tier escalations first: a crash after emitting but before
	// recording would re-alert, recording first only risks a lost alert.
	for id, tier := range next {
		if prev[id] != tier {
			if err := s.state.SetNotificationTier(ctx, id, tier); err != nil {
				return 0, fmt.Errorf("persist tier for %s: %w", id, err)
			}
		}
	}
	// Entries that dropped out of the map belong to deleted or settled
	// transactions; their suppression state must not linger.
	for id := range prev {
		if _, ok := next[id]; !ok {
			if err := s.state.ClearNotificationStatus(ctx, id); err != nil {
				slog.WarnContext(ctx, "Failed to clear stale notification state",
					"id", id, "error", err)
			}
		}
	}

	for _, a := range alerts {
		if err := s.channel.Emit(ctx, a); err != nil {
			// Fire-and-forget: a delivery failure never fails the pass.
			slog.WarnContext(ctx, "Alert emission failed",
				"transaction_id", a.TransactionID,
				"tier", string(a.Tier),
				"error", err)
		}
	}

	if len(alerts) > 0 {
		slog.InfoContext(ctx, "Notification pass complete",
			"alerts", len(alerts),
			"tracked", len(next))
	}

	return len(alerts), nil
}

// ClearNotificationStatus drops the recorded tier for one transaction, so
// the next pass can re-alert what is conceptually a new obligation state.
func (s *NotificationService) ClearNotificationStatus(ctx context.Context, transactionID string) error {
	return s.state.ClearNotificationStatus(ctx, transactionID)
}
