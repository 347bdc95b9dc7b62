// Package report renders the two-section CSV export of the reports view:
// a monthly-totals table followed by a category-totals table. Both tables
// come from the same core aggregation functions the dashboard charts use,
// so exported and displayed totals cannot drift.
package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"

	"billtrack/internal/core"
)

// ErrNoData is returned when the filtered set is empty; callers surface it
// as a "nothing to export" notice, not a failure.
var ErrNoData = errors.New("no report data to export")

// Filename returns the download name for a period's export.
func Filename(period string) string {
	if period == "" {
		period = "all"
	}
	return fmt.Sprintf("relatorio_pagamentos_%s.csv", period)
}

// WriteCSV renders the export for the transactions in the active filter
// scope. Rows are ;-separated with decimal-comma amounts, and the output
// starts with a UTF-8 BOM so spreadsheet imports pick the right encoding.
func WriteCSV(ts []core.Transaction) ([]byte, error) {
	if len(ts) == 0 {
		return nil, ErrNoData
	}

	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM

	w := csv.NewWriter(&buf)
	w.Comma = ';'

	write := func(record ...string) error { return w.Write(record) }

	if err := write("Balanço Mensal"); err != nil {
		return nil, err
	}
	if err := write("Mês", "Despesa"); err != nil {
		return nil, err
	}
	for _, m := range core.MonthlyTotals(ts) {
		if err := write(m.Period, core.FormatBRL(m.Amount)); err != nil {
			return nil, err
		}
	}

	if err := write(); err != nil {
		return nil, err
	}

	if err := write("Despesas por Categoria"); err != nil {
		return nil, err
	}
	if err := write("Categoria", "Valor"); err != nil {
		return nil, err
	}
	for _, c := range core.CategoryBreakdown(ts) {
		if err := write(c.Name, core.FormatBRL(c.Amount)); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}
