package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"billtrack/internal/core"
)

// Ports for outbound adapters. The services operate on snapshots obtained
// through these interfaces and never cache transaction state across calls.
type (
	TransactionStore interface {
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
		GetTransaction(ctx context.Context, id string) (core.Transaction, error)
		AddTransaction(ctx context.Context, n core.NewTransaction) (core.Transaction, error)
		UpdateTransaction(ctx context.Context, id string, p core.TransactionPatch) (core.Transaction, error)
		DeleteTransaction(ctx context.Context, id string) error
	}

	CategoryStore interface {
		ListCategories(ctx context.Context) ([]string, error)
		AddCategory(ctx context.Context, name string) error
		DeleteCategory(ctx context.Context, name string) error
	}

	BudgetStore interface {
		GetBudget(ctx context.Context) (decimal.Decimal, error)
		SetBudget(ctx context.Context, amount decimal.Decimal) error
	}

	// NotificationStateStore persists the per-transaction alert tier map so
	// duplicate-alert suppression survives process restarts.
	NotificationStateStore interface {
		LoadNotificationTiers(ctx context.Context) (map[string]core.AlertTier, error)
		SetNotificationTier(ctx context.Context, transactionID string, tier core.AlertTier) error
		ClearNotificationStatus(ctx context.Context, transactionID string) error
	}

	UserStore interface {
		GetUserByEmail(ctx context.Context, email string) (core.User, error)
	}

	// NotificationChannel receives the alerts the gate decides to emit.
	// Emission is fire-and-forget; delivery failures must not fail the
	// mutation that triggered the pass.
	NotificationChannel interface {
		Emit(ctx context.Context, alert core.Alert) error
	}
)
