package core

import (
	"strings"
	"testing"
)

func TestEvaluateNotificationsEscalation(t *testing.T) {
	asOf := day(2026, 3, 15)
	upcoming := pending("up", "50", 17)
	overdue := pending("over", "80", 10)
	far := pending("far", "10", 30)
	settled := paid("done", "30", 14)

	ts := []Transaction{upcoming, overdue, far, settled}

	// First pass from a clean slate.
	next, alerts := EvaluateNotifications(ts, nil, asOf)
	if len(alerts) != 2 {
		t.Fatalf("first pass emitted %d alerts, want 2", len(alerts))
	}
	if next["up"] != TierUpcoming || next["over"] != TierOverdue {
		t.Errorf("tier map = %v", next)
	}
	if _, ok := next["far"]; ok {
		t.Error("far-future bill should carry no tier")
	}
	if _, ok := next["done"]; ok {
		t.Error("paid bill should carry no tier")
	}

	// Second pass over unchanged data is silent.
	next2, alerts2 := EvaluateNotifications(ts, next, asOf)
	if len(alerts2) != 0 {
		t.Fatalf("repeat pass emitted %d alerts, want 0", len(alerts2))
	}
	if next2["up"] != TierUpcoming || next2["over"] != TierOverdue {
		t.Errorf("repeat pass tier map = %v", next2)
	}

	// Days later the upcoming bill lapses into overdue: one escalation.
	later := day(2026, 3, 18)
	next3, alerts3 := EvaluateNotifications(ts, next2, later)
	_ = next3
	count := 0
	for _, a := range alerts3 {
		if a.TransactionID == "up" && a.Tier == TierOverdue {
			count++
		}
	}
	if count != 1 {
		t.Errorf("escalation emitted %d overdue alerts for up, want 1", count)
	}
	for _, a := range alerts3 {
		if a.TransactionID == "over" {
			t.Error("already-overdue bill re-alerted")
		}
	}
}

func TestEvaluateNotificationsNeverDowngrades(t *testing.T) {
	asOf := day(2026, 3, 15)
	// Recorded overdue but currently classified upcoming (due date was
	// pushed without clearing state). The tier must not regress or re-fire.
	tx := pending("x", "10", 16)
	prev := map[string]AlertTier{"x": TierOverdue}

	next, alerts := EvaluateNotifications([]Transaction{tx}, prev, asOf)
	if len(alerts) != 0 {
		t.Fatalf("emitted %d alerts, want 0", len(alerts))
	}
	if next["x"] != TierOverdue {
		t.Errorf("tier = %q, want overdue retained", next["x"])
	}
}

func TestEvaluateNotificationsDropsDeleted(t *testing.T) {
	asOf := day(2026, 3, 15)
	prev := map[string]AlertTier{
		"gone":  TierOverdue,
		"alive": TierUpcoming,
	}
	ts := []Transaction{pending("alive", "10", 16)}

	next, _ := EvaluateNotifications(ts, prev, asOf)
	if _, ok := next["gone"]; ok {
		t.Error("state for deleted transaction survived the pass")
	}
	if next["alive"] != TierUpcoming {
		t.Errorf("alive tier = %q", next["alive"])
	}
}

func TestEvaluateNotificationsClearedStateReemits(t *testing.T) {
	asOf := day(2026, 3, 15)
	tx := pending("x", "10", 10)

	// State cleared after an edit: the next pass treats it as new.
	next, alerts := EvaluateNotifications([]Transaction{tx}, map[string]AlertTier{}, asOf)
	if len(alerts) != 1 || alerts[0].Tier != TierOverdue {
		t.Fatalf("alerts = %v", alerts)
	}
	if next["x"] != TierOverdue {
		t.Errorf("tier = %q", next["x"])
	}
}

func TestAlertWording(t *testing.T) {
	asOf := day(2026, 3, 15)

	dueToday := pending("t", "99.90", 15)
	dueToday.Description = "Internet"
	_, alerts := EvaluateNotifications([]Transaction{dueToday}, nil, asOf)
	if len(alerts) != 1 {
		t.Fatalf("alerts = %d, want 1", len(alerts))
	}
	a := alerts[0]
	if a.Title != "Conta a vencer" || a.Severity != SeverityInfo {
		t.Errorf("alert = %q/%q", a.Title, a.Severity)
	}
	if !strings.Contains(a.Body, "vence hoje") || !strings.Contains(a.Body, "R$ 99,90") {
		t.Errorf("body = %q", a.Body)
	}

	over := pending("o", "50", 12)
	over.Description = "Luz"
	_, alerts = EvaluateNotifications([]Transaction{over}, nil, asOf)
	a = alerts[0]
	if a.Title != "Conta vencida" || a.Severity != SeverityError {
		t.Errorf("alert = %q/%q", a.Title, a.Severity)
	}
	if !strings.Contains(a.Body, "venceu há 3 dia(s)") {
		t.Errorf("body = %q", a.Body)
	}
}
