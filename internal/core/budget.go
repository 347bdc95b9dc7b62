package core

import "github.com/shopspring/decimal"

const (
	BudgetNormal   BudgetTier = "normal"
	BudgetWarning  BudgetTier = "warning"
	BudgetExceeded BudgetTier = "exceeded"
)

// BudgetTier classifies committed spend against the monthly ceiling.
type BudgetTier string

// BudgetStatus is the result of comparing the month's committed spend (the
// paid total from the dashboard rollup) against the configured ceiling.
type BudgetStatus struct {
	Active      bool
	Budget      decimal.Decimal
	Committed   decimal.Decimal
	PercentUsed decimal.Decimal // 0-100, capped
	Tier        BudgetTier
}

var (
	hundred          = decimal.NewFromInt(100)
	warningThreshold = decimal.NewFromInt(75)
)

// EvaluateBudget derives the budget status. A ceiling of zero or less means
// tracking is disabled: the status is inactive and no percentage is computed.
func EvaluateBudget(budget, committed decimal.Decimal) BudgetStatus {
	if !budget.IsPositive() {
		return BudgetStatus{Budget: budget, Committed: committed}
	}

	pct := committed.Div(budget).Mul(hundred)
	if pct.GreaterThan(hundred) {
		pct = hundred
	}

	tier := BudgetNormal
	switch {
	case pct.GreaterThanOrEqual(hundred):
		tier = BudgetExceeded
	case pct.GreaterThanOrEqual(warningThreshold):
		tier = BudgetWarning
	}

	return BudgetStatus{
		Active:      true,
		Budget:      budget,
		Committed:   committed,
		PercentUsed: pct,
		Tier:        tier,
	}
}
