package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPaid    Status = "Pago"
	StatusPending Status = "Pendente"

	AccountRecurring    AccountType = "Recorrente"
	AccountNonRecurring AccountType = "Não Recorrente"
)

type (
	Status      string
	AccountType string

	// Installments tracks the position of a transaction inside a parceled
	// bill: Current is 1-based and never exceeds Total. The zero value means
	// the transaction is not part of an installment chain.
	Installments struct {
		Current int
		Total   int
	}

	// Transaction is the central entity: a single payment obligation,
	// either already paid or still pending. DueDate is always set;
	// PaymentDate is set once the transaction is paid.
	Transaction struct {
		ID           string
		Description  string
		Amount       decimal.Decimal
		Category     string
		AccountType  AccountType
		Status       Status
		DueDate      time.Time
		PaymentDate  time.Time // zero while pending
		Installments Installments
		CreatedAt    time.Time
	}

	// NewTransaction carries the fields required to create a transaction.
	// The store assigns the ID.
	NewTransaction struct {
		Description  string
		Amount       decimal.Decimal
		Category     string
		AccountType  AccountType
		Status       Status
		DueDate      time.Time
		PaymentDate  time.Time
		Installments Installments
	}

	// TransactionPatch holds the fields an update may change. Nil pointers
	// leave the stored value untouched, so an edit carries only what it
	// actually modifies.
	TransactionPatch struct {
		Description  *string
		Amount       *decimal.Decimal
		Category     *string
		AccountType  *AccountType
		Status       *Status
		DueDate      *time.Time
		PaymentDate  *time.Time
		Installments *Installments
	}
)

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrEmptyDescription    = errors.New("empty description")
	ErrDescriptionTooLong  = errors.New("description too long (max 200 characters)")
	ErrEmptyCategory       = errors.New("empty category")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidAccountType  = errors.New("invalid account type")
	ErrInvalidDueDate      = errors.New("invalid due date")
	ErrInvalidInstallments = errors.New("invalid installments")
	ErrMissingPaymentDate  = errors.New("paid transaction requires a payment date")

	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ChainBreakError reports that the successor of a paid installment could not
// be persisted. The original status change stands; the missing installment is
// a recoverable data-entry gap, not corruption.
type ChainBreakError struct {
	TransactionID string
	Err           error
}

func (e *ChainBreakError) Error() string {
	return "installment chain break for " + e.TransactionID + ": " + e.Err.Error()
}

func (e *ChainBreakError) Unwrap() error { return e.Err }

// IsInstallment reports whether the transaction belongs to a parceled bill.
func (i Installments) IsInstallment() bool {
	return i.Total > 0
}

// IsFinal reports whether this is the last installment of its chain.
func (i Installments) IsFinal() bool {
	return i.IsInstallment() && i.Current >= i.Total
}

func (i Installments) Validate() error {
	if !i.IsInstallment() {
		if i.Current != 0 {
			return ErrInvalidInstallments
		}
		return nil
	}
	if i.Current < 1 || i.Current > i.Total {
		return ErrInvalidInstallments
	}
	return nil
}

func (s Status) Valid() bool {
	return s == StatusPaid || s == StatusPending
}

func (a AccountType) Valid() bool {
	return a == AccountRecurring || a == AccountNonRecurring
}

func (n NewTransaction) Validate() error {
	if len(strings.TrimSpace(n.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(n.Description) > 200 {
		return ErrDescriptionTooLong
	}
	if !n.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(n.Category) == "" {
		return ErrEmptyCategory
	}
	if !n.Status.Valid() {
		return ErrInvalidStatus
	}
	if !n.AccountType.Valid() {
		return ErrInvalidAccountType
	}
	if n.DueDate.IsZero() {
		return ErrInvalidDueDate
	}
	if err := n.Installments.Validate(); err != nil {
		return err
	}
	if n.Status == StatusPaid && n.PaymentDate.IsZero() {
		return ErrMissingPaymentDate
	}
	return nil
}

func (t Transaction) Validate() error {
	n := NewTransaction{
		Description:  t.Description,
		Amount:       t.Amount,
		Category:     t.Category,
		AccountType:  t.AccountType,
		Status:       t.Status,
		DueDate:      t.DueDate,
		PaymentDate:  t.PaymentDate,
		Installments: t.Installments,
	}
	return n.Validate()
}

// EffectiveDate is the transaction's primary date: the payment date once
// paid, the due date while pending. Recent-activity ordering and the paid
// monthly rollups bucket on this.
func (t Transaction) EffectiveDate() time.Time {
	if t.Status == StatusPaid && !t.PaymentDate.IsZero() {
		return t.PaymentDate
	}
	return t.DueDate
}

// Apply returns a copy of the transaction with the patch applied.
func (p TransactionPatch) Apply(t Transaction) Transaction {
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.AccountType != nil {
		t.AccountType = *p.AccountType
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.PaymentDate != nil {
		t.PaymentDate = *p.PaymentDate
	}
	if p.Installments != nil {
		t.Installments = *p.Installments
	}
	return t
}

// TouchesNotificationState reports whether the patch changes status or
// dates, the mutations that invalidate any alert tier already raised for
// the transaction.
func (p TransactionPatch) TouchesNotificationState() bool {
	return p.Status != nil || p.DueDate != nil || p.PaymentDate != nil
}
