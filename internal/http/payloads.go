package http

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"billtrack/internal/core"
)

const dateLayout = "2006-01-02"

// amountValue decodes the amount field of incoming payloads. JSON numbers
// pass through decimal; JSON strings go through core.ParseAmount, so a
// client may send "12,34" as well as 12.34.
type amountValue struct {
	decimal.Decimal
}

func (a *amountValue) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		d, err := core.ParseAmount(s)
		if err != nil {
			return fmt.Errorf("%w: %q", err, s)
		}
		a.Decimal = d
		return nil
	}
	return a.Decimal.UnmarshalJSON(data)
}

// transactionPayload is the wire form of a transaction. Installments travel
// as a "current/total" string, empty for one-off bills; the payment date is
// omitted while pending.
type transactionPayload struct {
	ID           string          `json:"id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category"`
	AccountType  string          `json:"accountType"`
	Status       string          `json:"status"`
	DueDate      string          `json:"dueDate"`
	PaymentDate  string          `json:"paymentDate,omitempty"`
	Installments string          `json:"installments,omitempty"`
}

func transactionToPayload(t core.Transaction) transactionPayload {
	p := transactionPayload{
		ID:          t.ID,
		Description: t.Description,
		Amount:      t.Amount,
		Category:    t.Category,
		AccountType: string(t.AccountType),
		Status:      string(t.Status),
		DueDate:     t.DueDate.Format(dateLayout),
	}
	if !t.PaymentDate.IsZero() {
		p.PaymentDate = t.PaymentDate.Format(dateLayout)
	}
	if t.Installments.IsInstallment() {
		p.Installments = fmt.Sprintf("%d/%d", t.Installments.Current, t.Installments.Total)
	}
	return p
}

// payloadSlice converts a slice, always returning a non-nil value so empty
// lists encode as [] rather than null.
func payloadSlice(ts []core.Transaction) []transactionPayload {
	out := make([]transactionPayload, 0, len(ts))
	for _, t := range ts {
		out = append(out, transactionToPayload(t))
	}
	return out
}

// createTransactionPayload is the POST body for one new transaction.
type createTransactionPayload struct {
	Description  string      `json:"description"`
	Amount       amountValue `json:"amount"`
	Category     string          `json:"category"`
	AccountType  string          `json:"accountType"`
	Status       string          `json:"status"`
	DueDate      string          `json:"dueDate"`
	PaymentDate  string          `json:"paymentDate"`
	Installments string          `json:"installments"`
}

func (p createTransactionPayload) toNewTransaction() (core.NewTransaction, error) {
	n := core.NewTransaction{
		Description: strings.TrimSpace(p.Description),
		Amount:      p.Amount.Decimal,
		Category:    strings.TrimSpace(p.Category),
		AccountType: core.AccountType(p.AccountType),
		Status:      core.Status(p.Status),
	}
	if n.Status == "" {
		n.Status = core.StatusPending
	}
	if n.AccountType == "" {
		n.AccountType = core.AccountNonRecurring
	}

	due, err := parseDate(p.DueDate)
	if err != nil {
		return core.NewTransaction{}, fmt.Errorf("%w: %q", core.ErrInvalidDueDate, p.DueDate)
	}
	n.DueDate = due

	if p.PaymentDate != "" {
		paid, err := parseDate(p.PaymentDate)
		if err != nil {
			return core.NewTransaction{}, fmt.Errorf("invalid payment date %q: %w", p.PaymentDate, core.ErrInvalidDueDate)
		}
		n.PaymentDate = paid
	}

	inst, err := parseInstallments(p.Installments)
	if err != nil {
		return core.NewTransaction{}, err
	}
	n.Installments = inst

	return n, nil
}

// updateTransactionPayload is the PUT body; absent fields leave the stored
// value untouched, an empty installments string clears the chain position.
type updateTransactionPayload struct {
	Description  *string      `json:"description"`
	Amount       *amountValue `json:"amount"`
	Category     *string      `json:"category"`
	AccountType  *string      `json:"accountType"`
	Status       *string      `json:"status"`
	DueDate      *string      `json:"dueDate"`
	PaymentDate  *string      `json:"paymentDate"`
	Installments *string      `json:"installments"`
}

func (p updateTransactionPayload) toPatch() (core.TransactionPatch, error) {
	patch := core.TransactionPatch{
		Description: p.Description,
	}
	if p.Amount != nil {
		patch.Amount = &p.Amount.Decimal
	}
	if p.Category != nil {
		c := strings.TrimSpace(*p.Category)
		patch.Category = &c
	}
	if p.AccountType != nil {
		at := core.AccountType(*p.AccountType)
		patch.AccountType = &at
	}
	if p.Status != nil {
		st := core.Status(*p.Status)
		patch.Status = &st
	}
	if p.DueDate != nil {
		due, err := parseDate(*p.DueDate)
		if err != nil {
			return core.TransactionPatch{}, fmt.Errorf("%w: %q", core.ErrInvalidDueDate, *p.DueDate)
		}
		patch.DueDate = &due
	}
	if p.PaymentDate != nil {
		paid, err := parseDate(*p.PaymentDate)
		if err != nil {
			return core.TransactionPatch{}, fmt.Errorf("invalid payment date %q: %w", *p.PaymentDate, core.ErrInvalidDueDate)
		}
		patch.PaymentDate = &paid
	}
	if p.Installments != nil {
		inst, err := parseInstallments(*p.Installments)
		if err != nil {
			return core.TransactionPatch{}, err
		}
		patch.Installments = &inst
	}
	return patch, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return core.DayStart(t), nil
}

// parseInstallments parses the "current/total" wire form. Empty means not
// part of a chain.
func parseInstallments(s string) (core.Installments, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return core.Installments{}, nil
	}
	cur, total, ok := strings.Cut(s, "/")
	if !ok {
		return core.Installments{}, fmt.Errorf("%w: %q", core.ErrInvalidInstallments, s)
	}
	c, err := strconv.Atoi(strings.TrimSpace(cur))
	if err != nil {
		return core.Installments{}, fmt.Errorf("%w: %q", core.ErrInvalidInstallments, s)
	}
	t, err := strconv.Atoi(strings.TrimSpace(total))
	if err != nil {
		return core.Installments{}, fmt.Errorf("%w: %q", core.ErrInvalidInstallments, s)
	}
	inst := core.Installments{Current: c, Total: t}
	if err := inst.Validate(); err != nil {
		return core.Installments{}, fmt.Errorf("%w: %q", err, s)
	}
	return inst, nil
}
