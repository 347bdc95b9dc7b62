package core

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
}

// PeriodAmount represents an amount aggregated under a "YYYY-MM" bucket.
type PeriodAmount struct {
	Period string
	Amount decimal.Decimal
}

// DashboardSummary is the current-period rollup shown on the dashboard.
type DashboardSummary struct {
	PaidThisMonth  decimal.Decimal
	UpcomingTotal  decimal.Decimal
	OverdueTotal   decimal.Decimal
	NextDue        []Transaction // 5 soonest pending bills due today or later
	RecentActivity []Transaction // 5 most recently dated transactions overall
}

// PeriodSummary is the historical rollup for one selected "YYYY-MM" period.
type PeriodSummary struct {
	Period      string
	TotalPaid   decimal.Decimal
	TotalDue    decimal.Decimal
	TopCategory string
}

// TrendPoint is one month bucket of the 6-month paid-spend series.
type TrendPoint struct {
	Period string
	Paid   decimal.Decimal
}

// Summarize computes the dashboard rollup from a full transaction snapshot.
// Every pending transaction lands in exactly one of the upcoming or overdue
// totals, so the two always add up to the pending total.
func Summarize(ts []Transaction, today time.Time) DashboardSummary {
	s := DashboardSummary{
		PaidThisMonth: decimal.Zero,
		UpcomingTotal: decimal.Zero,
		OverdueTotal:  decimal.Zero,
	}
	day := DayStart(today)

	for _, t := range ts {
		switch {
		case t.Status == StatusPaid:
			if SameMonth(t.EffectiveDate(), day) {
				s.PaidThisMonth = s.PaidThisMonth.Add(t.Amount)
			}
		case IsOverdue(t, day):
			s.OverdueTotal = s.OverdueTotal.Add(t.Amount)
		default:
			s.UpcomingTotal = s.UpcomingTotal.Add(t.Amount)
			s.NextDue = append(s.NextDue, t)
		}
	}

	// Soonest due first; the sort is stable so insertion order breaks ties.
	sort.SliceStable(s.NextDue, func(i, j int) bool {
		return s.NextDue[i].DueDate.Before(s.NextDue[j].DueDate)
	})
	if len(s.NextDue) > 5 {
		s.NextDue = s.NextDue[:5]
	}

	recent := make([]Transaction, len(ts))
	copy(recent, ts)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].EffectiveDate().After(recent[j].EffectiveDate())
	})
	if len(recent) > 5 {
		recent = recent[:5]
	}
	s.RecentActivity = recent

	return s
}

// SummarizePeriod computes the rollup for an arbitrary "YYYY-MM" period.
func SummarizePeriod(ts []Transaction, period string) (PeriodSummary, error) {
	year, month, err := ParsePeriodKey(period)
	if err != nil {
		return PeriodSummary{}, err
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	s := PeriodSummary{
		Period:    period,
		TotalPaid: decimal.Zero,
		TotalDue:  decimal.Zero,
	}

	var dueInPeriod []Transaction
	for _, t := range ts {
		if t.Status == StatusPaid && inDayRange(t.EffectiveDate(), start, end) {
			s.TotalPaid = s.TotalPaid.Add(t.Amount)
		}
		if inDayRange(t.DueDate, start, end) {
			s.TotalDue = s.TotalDue.Add(t.Amount)
			dueInPeriod = append(dueInPeriod, t)
		}
	}

	byCat := CategoryBreakdown(dueInPeriod)
	top := decimal.Zero
	for _, c := range byCat {
		if c.Amount.GreaterThan(top) {
			top = c.Amount
			s.TopCategory = c.Name
		}
	}

	return s, nil
}

// TrendSeries returns the trailing 6-month paid-spend series ending at the
// month containing today, oldest bucket first. Months with no paid
// transactions report zero; the series is always exactly 6 points.
func TrendSeries(ts []Transaction, today time.Time) []TrendPoint {
	start, _ := PeriodBounds(today)
	points := make([]TrendPoint, 6)
	index := make(map[string]int, 6)
	for i := 0; i < 6; i++ {
		key := PeriodKey(start.AddDate(0, i-5, 0))
		points[i] = TrendPoint{Period: key, Paid: decimal.Zero}
		index[key] = i
	}

	for _, t := range ts {
		if t.Status != StatusPaid {
			continue
		}
		if i, ok := index[PeriodKey(t.EffectiveDate())]; ok {
			points[i].Paid = points[i].Paid.Add(t.Amount)
		}
	}

	return points
}

// CategoryBreakdown groups the given transactions by category, summing
// amounts. Categories appear in first-encountered order, which also settles
// top-category ties. The dashboard charts and the CSV export both consume
// this exact function, so the displayed and exported totals cannot drift.
func CategoryBreakdown(ts []Transaction) []CategoryAmount {
	var out []CategoryAmount
	index := make(map[string]int)
	for _, t := range ts {
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i
			out = append(out, CategoryAmount{Name: t.Category, Amount: decimal.Zero})
		}
		out[i].Amount = out[i].Amount.Add(t.Amount)
	}
	return out
}

// MonthlyTotals groups the given transactions into "YYYY-MM" buckets by due
// date, summing amounts, sorted ascending by period.
func MonthlyTotals(ts []Transaction) []PeriodAmount {
	var out []PeriodAmount
	index := make(map[string]int)
	for _, t := range ts {
		key := PeriodKey(t.DueDate)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, PeriodAmount{Period: key, Amount: decimal.Zero})
		}
		out[i].Amount = out[i].Amount.Add(t.Amount)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

// FilterByPeriod returns the transactions whose due date falls inside the
// "YYYY-MM" period. An empty period selects everything.
func FilterByPeriod(ts []Transaction, period string) ([]Transaction, error) {
	if period == "" {
		return ts, nil
	}
	year, month, err := ParsePeriodKey(period)
	if err != nil {
		return nil, err
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	var out []Transaction
	for _, t := range ts {
		if inDayRange(t.DueDate, start, end) {
			out = append(out, t)
		}
	}
	return out, nil
}

// CalendarDays groups the transactions due in a given month by day of
// month, for the calendar view.
func CalendarDays(ts []Transaction, year int, month time.Month) map[int][]Transaction {
	out := make(map[int][]Transaction)
	for _, t := range ts {
		due := DayStart(t.DueDate)
		if due.Year() == year && due.Month() == month {
			out[due.Day()] = append(out[due.Day()], t)
		}
	}
	return out
}

func inDayRange(t, start, end time.Time) bool {
	d := DayStart(t)
	return !d.Before(start) && !d.After(end)
}
