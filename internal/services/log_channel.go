package services

import (
	"context"
	"log/slog"

	"billtrack/internal/core"
)

// LogChannel writes alerts to the structured log. It is the notification
// channel when AMQP is not configured, so the app keeps working in a
// degraded, log-only mode.
type LogChannel struct{}

// Emit implements ports.NotificationChannel.
func (LogChannel) Emit(ctx context.Context, a core.Alert) error {
	slog.InfoContext(ctx, "Alert",
		"transaction_id", a.TransactionID,
		"tier", string(a.Tier),
		"severity", string(a.Severity),
		"title", a.Title,
		"body", a.Body)
	return nil
}
