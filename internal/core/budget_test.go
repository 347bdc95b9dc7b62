package core

import "testing"

func TestEvaluateBudget(t *testing.T) {
	tests := []struct {
		name      string
		budget    string
		committed string
		active    bool
		tier      BudgetTier
		pct       string
	}{
		{
			name:   "zero budget disables tracking",
			budget: "0", committed: "500",
			active: false, tier: "",
		},
		{
			name:   "negative budget disables tracking",
			budget: "-10", committed: "500",
			active: false, tier: "",
		},
		{
			name:   "well under budget",
			budget: "1000", committed: "500",
			active: true, tier: BudgetNormal, pct: "50",
		},
		{
			name:   "just under warning threshold",
			budget: "1000", committed: "749.99",
			active: true, tier: BudgetNormal, pct: "74.999",
		},
		{
			name:   "at warning threshold",
			budget: "1000", committed: "750",
			active: true, tier: BudgetWarning, pct: "75",
		},
		{
			name:   "just below ceiling",
			budget: "1000", committed: "999.99",
			active: true, tier: BudgetWarning, pct: "99.999",
		},
		{
			name:   "exactly at ceiling",
			budget: "1000", committed: "1000",
			active: true, tier: BudgetExceeded, pct: "100",
		},
		{
			name:   "over ceiling caps at 100",
			budget: "1000", committed: "1500",
			active: true, tier: BudgetExceeded, pct: "100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateBudget(dec(tt.budget), dec(tt.committed))
			if got.Active != tt.active {
				t.Fatalf("Active = %v, want %v", got.Active, tt.active)
			}
			if got.Tier != tt.tier {
				t.Errorf("Tier = %q, want %q", got.Tier, tt.tier)
			}
			if tt.pct != "" && !got.PercentUsed.Equal(dec(tt.pct)) {
				t.Errorf("PercentUsed = %s, want %s", got.PercentUsed, tt.pct)
			}
		})
	}
}
