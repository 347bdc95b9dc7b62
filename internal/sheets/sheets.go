// Package sheets mirrors the report aggregates into a Google Sheets tab.
// The mirror is optional: without a spreadsheet ID the server simply skips
// it. The rows appended here come from the same core aggregation functions
// as the CSV export.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"billtrack/internal/core"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	reportSheet   string
}

// New creates a Sheets client for the given spreadsheet. Credentials come
// from GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_APPLICATION_CREDENTIALS, with
// application default credentials as the fallback.
func New(ctx context.Context, spreadsheetID, reportSheet string) (*Client, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet ID")
	}

	var opts []goption.ClientOption
	credFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if credFile == "" {
		credFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if credFile != "" {
		opts = append(opts, goption.WithCredentialsFile(credFile))
	}

	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		reportSheet:   reportSheet,
	}, nil
}

// AppendReport appends one snapshot of the period's report: a row per month
// bucket and a row per category, tagged with the export period.
func (c *Client) AppendReport(ctx context.Context, period string, monthly []core.PeriodAmount, categories []core.CategoryAmount) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	var rows [][]any
	for _, m := range monthly {
		rows = append(rows, []any{period, "mes", m.Period, m.Amount.StringFixed(2)})
	}
	for _, cat := range categories {
		rows = append(rows, []any{period, "categoria", cat.Name, cat.Amount.StringFixed(2)})
	}
	if len(rows) == 0 {
		return nil
	}

	rng := fmt.Sprintf("%s!A:D", c.reportSheet)
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, &gsheet.ValueRange{
		Values: rows,
	}).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append report rows to %s: %w", c.reportSheet, err)
	}

	slog.InfoContext(ctx, "Report mirrored to Google Sheets",
		"period", period,
		"rows", len(rows),
		"sheet", c.reportSheet)

	return nil
}
