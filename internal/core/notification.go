package core

import (
	"fmt"
	"time"
)

const (
	// TierNone is the absence of an entry in the tier map.
	TierNone     AlertTier = ""
	TierUpcoming AlertTier = "upcoming"
	TierOverdue  AlertTier = "overdue"

	// UpcomingHorizonDays is how far ahead the gate looks when deciding a
	// bill is close enough to its due date to warrant an alert.
	UpcomingHorizonDays = 3

	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

type (
	// AlertTier is the highest-severity alert already raised for a
	// transaction. Tiers only escalate while the transaction stays pending;
	// an overdue bill is never re-announced as upcoming.
	AlertTier string

	Severity string

	// Alert is one notification to emit. Delivery is the channel's concern.
	Alert struct {
		TransactionID string
		Tier          AlertTier
		Title         string
		Body          string
		Severity      Severity
	}
)

func (t AlertTier) rank() int {
	switch t {
	case TierOverdue:
		return 2
	case TierUpcoming:
		return 1
	default:
		return 0
	}
}

// EvaluateNotifications runs one gate pass over a transaction snapshot.
// Given the previously raised tier per transaction id, it returns the new
// tier map and the alerts to emit, without side effects. Each pending
// transaction is classified against asOf; an alert is emitted only when the
// classification escalates past the recorded tier, so repeated passes over
// unchanged data emit nothing.
//
// The returned map is freshly allocated and only carries entries for ids
// present in the snapshot, which drops state left behind by deletions.
func EvaluateNotifications(ts []Transaction, prev map[string]AlertTier, asOf time.Time) (map[string]AlertTier, []Alert) {
	next := make(map[string]AlertTier, len(prev))
	var alerts []Alert

	for _, t := range ts {
		if t.Status != StatusPending {
			continue
		}

		tier := TierNone
		switch {
		case IsOverdue(t, asOf):
			tier = TierOverdue
		case IsUpcoming(t, asOf, UpcomingHorizonDays):
			tier = TierUpcoming
		}

		recorded := prev[t.ID]
		if tier.rank() > recorded.rank() {
			alerts = append(alerts, newAlert(t, tier, asOf))
			next[t.ID] = tier
		} else if recorded != TierNone {
			next[t.ID] = recorded
		}
	}

	return next, alerts
}

func newAlert(t Transaction, tier AlertTier, asOf time.Time) Alert {
	a := Alert{
		TransactionID: t.ID,
		Tier:          tier,
	}
	switch tier {
	case TierOverdue:
		days := int(DayStart(asOf).Sub(DayStart(t.DueDate)).Hours() / 24)
		a.Title = "Conta vencida"
		a.Body = fmt.Sprintf("%s (%s) venceu há %d dia(s).", t.Description, FormatBRL(t.Amount), days)
		a.Severity = SeverityError
	default:
		a.Title = "Conta a vencer"
		if IsOverdue(t, asOf.AddDate(0, 0, 1)) {
			a.Body = fmt.Sprintf("%s (%s) vence hoje.", t.Description, FormatBRL(t.Amount))
		} else {
			a.Body = fmt.Sprintf("%s (%s) vence em %s.", t.Description, FormatBRL(t.Amount), DayStart(t.DueDate).Format("02/01/2006"))
		}
		a.Severity = SeverityInfo
	}
	return a
}
