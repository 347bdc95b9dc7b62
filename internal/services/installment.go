package services

import "billtrack/internal/core"

// NextInstallment derives the successor of a just-paid installment: same
// description, amount, category and account type, due one calendar month
// later (day-of-month clamped to the target month's length), position
// advanced by one, status pending. The second return is false when the
// transaction is not an installment or is the final one of its chain.
func NextInstallment(t core.Transaction) (core.NewTransaction, bool) {
	if !t.Installments.IsInstallment() || t.Installments.IsFinal() {
		return core.NewTransaction{}, false
	}
	return core.NewTransaction{
		Description: t.Description,
		Amount:      t.Amount,
		Category:    t.Category,
		AccountType: t.AccountType,
		Status:      core.StatusPending,
		DueDate:     core.AddMonthClamped(t.DueDate),
		Installments: core.Installments{
			Current: t.Installments.Current + 1,
			Total:   t.Installments.Total,
		},
	}, true
}
