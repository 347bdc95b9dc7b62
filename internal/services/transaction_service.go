package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"billtrack/internal/core"
	"billtrack/internal/ports"
)

// TransactionService orchestrates transaction mutations: validation, the
// installment chain on pending-to-paid transitions, notification state
// invalidation and the synchronous alert pass after every change.
type TransactionService struct {
	store    ports.TransactionStore
	notifier *NotificationService
}

func NewTransactionService(store ports.TransactionStore, notifier *NotificationService) *TransactionService {
	return &TransactionService{
		store:    store,
		notifier: notifier,
	}
}

// List returns the current transaction snapshot.
func (s *TransactionService) List(ctx context.Context) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx)
}

// Create validates and persists a single new transaction.
func (s *TransactionService) Create(ctx context.Context, n core.NewTransaction) (core.Transaction, error) {
	if err := n.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if n.Status == core.StatusPaid && n.PaymentDate.IsZero() {
		n.PaymentDate = n.DueDate
	}

	t, err := s.store.AddTransaction(ctx, n)
	if err != nil {
		return core.Transaction{}, err
	}

	s.notifyPass(ctx)
	return t, nil
}

// CreateBatch persists several transactions, used when the caller
// pre-generates a whole installment plan upfront. All entries are validated
// before any is written; a persistence failure midway returns the
// transactions created so far along with the error.
func (s *TransactionService) CreateBatch(ctx context.Context, ns []core.NewTransaction) ([]core.Transaction, error) {
	for i, n := range ns {
		if err := n.Validate(); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i+1, err)
		}
	}

	created := make([]core.Transaction, 0, len(ns))
	for i, n := range ns {
		t, err := s.store.AddTransaction(ctx, n)
		if err != nil {
			return created, fmt.Errorf("transaction %d: %w", i+1, err)
		}
		created = append(created, t)
	}

	s.notifyPass(ctx)
	return created, nil
}

// Update applies a patch to a stored transaction. When the stored status
// was pending and the patch makes it paid, the next installment of a
// parceled bill is generated exactly once; the before/after comparison is
// the guard, so re-saving an already paid transaction never duplicates the
// chain. A failure to persist the successor is returned as a
// *core.ChainBreakError wrapping the updated transaction's id: the update
// itself stands and the caller surfaces the gap as a warning.
func (s *TransactionService) Update(ctx context.Context, id string, p core.TransactionPatch) (core.Transaction, error) {
	before, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		return core.Transaction{}, err
	}

	// A transaction marked paid without an explicit payment date is taken
	// as paid on its due date.
	if p.Status != nil && *p.Status == core.StatusPaid && p.PaymentDate == nil && before.PaymentDate.IsZero() {
		d := before.DueDate
		if p.DueDate != nil {
			d = *p.DueDate
		}
		p.PaymentDate = &d
	}

	if err := p.Apply(before).Validate(); err != nil {
		return core.Transaction{}, err
	}

	updated, err := s.store.UpdateTransaction(ctx, id, p)
	if err != nil {
		return core.Transaction{}, err
	}

	if p.TouchesNotificationState() {
		if err := s.notifier.ClearNotificationStatus(ctx, id); err != nil {
			slog.WarnContext(ctx, "Failed to clear notification status",
				"id", id, "error", err)
		}
	}

	var chainErr error
	if before.Status == core.StatusPending && updated.Status == core.StatusPaid {
		if next, ok := NextInstallment(updated); ok {
			if _, err := s.store.AddTransaction(ctx, next); err != nil {
				chainErr = &core.ChainBreakError{TransactionID: id, Err: err}
				slog.WarnContext(ctx, "Next installment could not be created",
					"id", id,
					"installment", fmt.Sprintf("%d/%d", next.Installments.Current, next.Installments.Total),
					"error", err)
			} else {
				slog.InfoContext(ctx, "Next installment created",
					"id", id,
					"installment", fmt.Sprintf("%d/%d", next.Installments.Current, next.Installments.Total),
					"due_date", next.DueDate.Format("2006-01-02"))
			}
		}
	}

	s.notifyPass(ctx)
	return updated, chainErr
}

// Delete removes a transaction and its notification state.
func (s *TransactionService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	if err := s.notifier.ClearNotificationStatus(ctx, id); err != nil {
		slog.WarnContext(ctx, "Failed to clear notification status",
			"id", id, "error", err)
	}
	s.notifyPass(ctx)
	return nil
}

// notifyPass runs the alert pass after a mutation. Failures are logged and
// swallowed: alerting must never fail the user's action.
func (s *TransactionService) notifyPass(ctx context.Context) {
	if s.notifier == nil {
		return
	}
	if _, err := s.notifier.Run(ctx, time.Now()); err != nil {
		slog.WarnContext(ctx, "Notification pass failed", "error", err)
	}
}
