package core

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDayStart(t *testing.T) {
	in := time.Date(2026, 3, 15, 23, 45, 12, 999, time.FixedZone("BRT", -3*3600))
	got := DayStart(in)
	want := day(2026, 3, 16) // 23:45 BRT is already the 16th in UTC
	if !got.Equal(want) {
		t.Errorf("DayStart() = %v, want %v", got, want)
	}
}

func TestIsOverdue(t *testing.T) {
	asOf := day(2026, 3, 15)

	tests := []struct {
		name string
		tx   Transaction
		want bool
	}{
		{
			name: "due yesterday - overdue",
			tx:   Transaction{Status: StatusPending, DueDate: day(2026, 3, 14)},
			want: true,
		},
		{
			name: "due today - not overdue",
			tx:   Transaction{Status: StatusPending, DueDate: day(2026, 3, 15)},
			want: false,
		},
		{
			name: "due today with late timestamp - not overdue",
			tx:   Transaction{Status: StatusPending, DueDate: time.Date(2026, 3, 15, 22, 0, 0, 0, time.UTC)},
			want: false,
		},
		{
			name: "due tomorrow - not overdue",
			tx:   Transaction{Status: StatusPending, DueDate: day(2026, 3, 16)},
			want: false,
		},
		{
			name: "paid long past its date - never overdue",
			tx:   Transaction{Status: StatusPaid, DueDate: day(2025, 1, 1), PaymentDate: day(2026, 1, 1)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOverdue(tt.tx, asOf); got != tt.want {
				t.Errorf("IsOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsUpcoming(t *testing.T) {
	asOf := day(2026, 3, 15)

	tests := []struct {
		name string
		tx   Transaction
		want bool
	}{
		{
			name: "due today - upcoming",
			tx:   Transaction{Status: StatusPending, DueDate: day(2026, 3, 15)},
			want: true,
		},
		{
			name: "due at horizon edge - upcoming",
			tx:   Transaction{Status: StatusPending, DueDate: day(2026, 3, 18)},
			want: true,
		},
		{
			name: "due past the horizon - not upcoming",
			tx:   Transaction{Status: StatusPending, DueDate: day(2026, 3, 19)},
			want: false,
		},
		{
			name: "due yesterday - not upcoming",
			tx:   Transaction{Status: StatusPending, DueDate: day(2026, 3, 14)},
			want: false,
		},
		{
			name: "paid - never upcoming",
			tx:   Transaction{Status: StatusPaid, DueDate: day(2026, 3, 16), PaymentDate: day(2026, 3, 10)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUpcoming(tt.tx, asOf, UpcomingHorizonDays); got != tt.want {
				t.Errorf("IsUpcoming() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAddMonthClamped(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "mid-month keeps day",
			in:   day(2026, 3, 15),
			want: day(2026, 4, 15),
		},
		{
			name: "jan 31 clamps to feb 28",
			in:   day(2026, 1, 31),
			want: day(2026, 2, 28),
		},
		{
			name: "jan 31 clamps to feb 29 in leap year",
			in:   day(2028, 1, 31),
			want: day(2028, 2, 29),
		},
		{
			name: "mar 31 clamps to apr 30",
			in:   day(2026, 3, 31),
			want: day(2026, 4, 30),
		},
		{
			name: "dec rolls into next year",
			in:   day(2026, 12, 31),
			want: day(2027, 1, 31),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddMonthClamped(tt.in); !got.Equal(tt.want) {
				t.Errorf("AddMonthClamped(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPeriodKeyRoundtrip(t *testing.T) {
	key := PeriodKey(day(2026, 3, 15))
	if key != "2026-03" {
		t.Fatalf("PeriodKey() = %q, want %q", key, "2026-03")
	}
	year, month, err := ParsePeriodKey(key)
	if err != nil {
		t.Fatalf("ParsePeriodKey() error = %v", err)
	}
	if year != 2026 || month != time.March {
		t.Errorf("ParsePeriodKey() = %d, %v", year, month)
	}

	if _, _, err := ParsePeriodKey("03/2026"); err == nil {
		t.Error("ParsePeriodKey() accepted malformed key")
	}
}

func TestPeriodBounds(t *testing.T) {
	start, end := PeriodBounds(day(2026, 2, 10))
	if !start.Equal(day(2026, 2, 1)) || !end.Equal(day(2026, 2, 28)) {
		t.Errorf("PeriodBounds() = %v, %v", start, end)
	}
}

func TestSameMonth(t *testing.T) {
	if !SameMonth(day(2026, 3, 1), day(2026, 3, 31)) {
		t.Error("SameMonth() = false for same month")
	}
	if SameMonth(day(2026, 3, 31), day(2026, 4, 1)) {
		t.Error("SameMonth() = true across month boundary")
	}
	if SameMonth(day(2025, 3, 15), day(2026, 3, 15)) {
		t.Error("SameMonth() = true across years")
	}
}
