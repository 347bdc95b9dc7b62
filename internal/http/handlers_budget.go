package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"billtrack/internal/core"
)

// handleGetBudget returns the configured ceiling together with the derived
// status for the current month.
func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	budget, err := s.budget.GetBudget(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	ts, err := s.transactions.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	committed := core.Summarize(ts, time.Now()).PaidThisMonth
	status := core.EvaluateBudget(budget, committed)

	writeJSON(w, http.StatusOK, budgetPayload{
		Active:      status.Active,
		Budget:      status.Budget,
		Committed:   status.Committed,
		PercentUsed: status.PercentUsed,
		Tier:        string(status.Tier),
	})
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		MonthlyBudget decimal.Decimal `json:"monthlyBudget"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if payload.MonthlyBudget.IsNegative() {
		writeError(w, http.StatusUnprocessableEntity, "budget cannot be negative")
		return
	}

	if err := s.budget.SetBudget(r.Context(), payload.MonthlyBudget); err != nil {
		writeDomainError(w, err)
		return
	}
	s.invalidate()
	writeJSON(w, http.StatusOK, map[string]any{"monthlyBudget": payload.MonthlyBudget})
}
