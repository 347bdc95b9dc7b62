package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"billtrack/internal/core"
)

type summaryPayload struct {
	PaidThisMonth  decimal.Decimal      `json:"paidThisMonth"`
	UpcomingTotal  decimal.Decimal      `json:"upcomingTotal"`
	OverdueTotal   decimal.Decimal      `json:"overdueTotal"`
	NextDue        []transactionPayload `json:"nextDue"`
	RecentActivity []transactionPayload `json:"recentActivity"`
}

type trendPayload struct {
	Period string          `json:"period"`
	Paid   decimal.Decimal `json:"paid"`
}

type budgetPayload struct {
	Active      bool            `json:"active"`
	Budget      decimal.Decimal `json:"budget"`
	Committed   decimal.Decimal `json:"committed"`
	PercentUsed decimal.Decimal `json:"percentUsed"`
	Tier        string          `json:"tier,omitempty"`
}

type periodPayload struct {
	Period      string          `json:"period"`
	TotalPaid   decimal.Decimal `json:"totalPaid"`
	TotalDue    decimal.Decimal `json:"totalDue"`
	TopCategory string          `json:"topCategory,omitempty"`
}

// dashboardResponse is the full dashboard view; it is what the response
// cache stores between mutations.
type dashboardResponse struct {
	Summary summaryPayload `json:"summary"`
	Trend   []trendPayload `json:"trend"`
	Budget  budgetPayload  `json:"budget"`
	Period  *periodPayload `json:"period,omitempty"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	now := time.Now()

	// Day-qualified key: due-today classification shifts at midnight even
	// without a mutation.
	cacheKey := now.UTC().Format(dateLayout) + ":" + period
	if cached, ok := s.dashboardCache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	ts, err := s.transactions.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	summary := core.Summarize(ts, now)

	budget, err := s.budget.GetBudget(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	status := core.EvaluateBudget(budget, summary.PaidThisMonth)

	resp := dashboardResponse{
		Summary: summaryPayload{
			PaidThisMonth:  summary.PaidThisMonth,
			UpcomingTotal:  summary.UpcomingTotal,
			OverdueTotal:   summary.OverdueTotal,
			NextDue:        payloadSlice(summary.NextDue),
			RecentActivity: payloadSlice(summary.RecentActivity),
		},
		Budget: budgetPayload{
			Active:      status.Active,
			Budget:      status.Budget,
			Committed:   status.Committed,
			PercentUsed: status.PercentUsed,
			Tier:        string(status.Tier),
		},
	}

	for _, p := range core.TrendSeries(ts, now) {
		resp.Trend = append(resp.Trend, trendPayload{Period: p.Period, Paid: p.Paid})
	}

	if period != "" {
		ps, err := core.SummarizePeriod(ts, period)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid period, expected YYYY-MM")
			return
		}
		resp.Period = &periodPayload{
			Period:      ps.Period,
			TotalPaid:   ps.TotalPaid,
			TotalDue:    ps.TotalDue,
			TopCategory: ps.TopCategory,
		}
	}

	s.dashboardCache.Set(cacheKey, resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	year := now.Year()
	month := now.Month()

	q := r.URL.Query()
	if v := q.Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1970 || y > 9999 {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = y
	}
	if v := q.Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			writeError(w, http.StatusBadRequest, "invalid month")
			return
		}
		month = time.Month(m)
	}

	ts, err := s.transactions.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	days := make(map[int][]transactionPayload)
	for day, dayTs := range core.CalendarDays(ts, year, month) {
		days[day] = payloadSlice(dayTs)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"year":  year,
		"month": int(month),
		"days":  days,
	})
}
