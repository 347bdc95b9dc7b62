package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"billtrack/internal/core"
	"billtrack/internal/report"
)

type reportResponse struct {
	Period     string                  `json:"period,omitempty"`
	Monthly    []monthlyAmountPayload  `json:"monthly"`
	Categories []categoryAmountPayload `json:"categories"`
}

type monthlyAmountPayload struct {
	Period string `json:"period"`
	Amount string `json:"amount"`
}

type categoryAmountPayload struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")

	ts, err := s.transactions.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	scoped, err := core.FilterByPeriod(ts, period)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period, expected YYYY-MM")
		return
	}

	resp := reportResponse{
		Period:     period,
		Monthly:    make([]monthlyAmountPayload, 0),
		Categories: make([]categoryAmountPayload, 0),
	}
	for _, m := range core.MonthlyTotals(scoped) {
		resp.Monthly = append(resp.Monthly, monthlyAmountPayload{Period: m.Period, Amount: core.FormatBRL(m.Amount)})
	}
	for _, c := range core.CategoryBreakdown(scoped) {
		resp.Categories = append(resp.Categories, categoryAmountPayload{Name: c.Name, Amount: core.FormatBRL(c.Amount)})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReportExport(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")

	ts, err := s.transactions.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	scoped, err := core.FilterByPeriod(ts, period)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period, expected YYYY-MM")
		return
	}

	data, err := report.WriteCSV(scoped)
	if errors.Is(err, report.ErrNoData) {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Não há dados de relatório para exportar.",
		})
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	// The mirror rides on the explicit export action, never on plain reads,
	// so browsing reports does not grow the sheet. Failures are logged, not
	// surfaced: the sheet is a copy, not the source of truth.
	if s.reportMirror != nil {
		if err := s.reportMirror.AppendReport(r.Context(), period,
			core.MonthlyTotals(scoped), core.CategoryBreakdown(scoped)); err != nil {
			slog.WarnContext(r.Context(), "Failed to mirror report to sheet", "error", err)
		}
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(period)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write csv response", "error", err)
	}
}
