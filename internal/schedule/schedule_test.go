package schedule

import (
	"context"
	"testing"
	"time"

	"importpipe/internal/config"
)

func intPtr(n int) *int { return &n }

func at(day, hour, min int) time.Time {
	return time.Date(2026, time.March, day, hour, min, 0, 0, time.UTC)
}

func TestNextSyncTimeManual(t *testing.T) {
	_, ok := NextSyncTime(context.Background(), config.Schedule{Frequency: config.FreqManual}, at(10, 9, 0))
	if ok {
		t.Fatalf("manual schedule must have no next run")
	}
}

func TestNextSyncTimeHourly(t *testing.T) {
	s := config.Schedule{Frequency: config.FreqHourly}
	cases := []struct {
		from, want time.Time
	}{
		{at(10, 9, 15), at(10, 10, 0)},
		{at(10, 9, 0), at(10, 10, 0)}, // exactly on the hour still advances
		{at(10, 23, 59), at(11, 0, 0)},
	}
	for _, tc := range cases {
		got, ok := NextSyncTime(context.Background(), s, tc.from)
		if !ok || !got.Equal(tc.want) {
			t.Fatalf("hourly from %v: got %v ok=%v, want %v", tc.from, got, ok, tc.want)
		}
	}
}

func TestNextSyncTimeDaily(t *testing.T) {
	s := config.Schedule{Frequency: config.FreqDaily, Time: "09:00"}

	// Slot already passed today: rolls to tomorrow.
	got, ok := NextSyncTime(context.Background(), s, at(10, 10, 0))
	if !ok || !got.Equal(at(11, 9, 0)) {
		t.Fatalf("after slot: got %v ok=%v, want %v", got, ok, at(11, 9, 0))
	}

	// Slot still ahead today.
	got, ok = NextSyncTime(context.Background(), s, at(10, 8, 0))
	if !ok || !got.Equal(at(10, 9, 0)) {
		t.Fatalf("before slot: got %v, want %v", got, at(10, 9, 0))
	}

	// Exactly at the slot: strictly after means tomorrow.
	got, _ = NextSyncTime(context.Background(), s, at(10, 9, 0))
	if !got.Equal(at(11, 9, 0)) {
		t.Fatalf("at slot: got %v, want %v", got, at(11, 9, 0))
	}

	// Missing time falls back to 02:00.
	got, _ = NextSyncTime(context.Background(), config.Schedule{Frequency: config.FreqDaily}, at(10, 1, 0))
	if !got.Equal(at(10, 2, 0)) {
		t.Fatalf("default time: got %v, want %v", got, at(10, 2, 0))
	}
}

func TestNextSyncTimeWeekly(t *testing.T) {
	// 2026-03-10 is a Tuesday (weekday 2).
	s := config.Schedule{Frequency: config.FreqWeekly, Time: "09:00", DayOfWeek: intPtr(4)}

	got, ok := NextSyncTime(context.Background(), s, at(10, 12, 0))
	if !ok || !got.Equal(at(12, 9, 0)) {
		t.Fatalf("later this week: got %v, want Thursday %v", got, at(12, 9, 0))
	}

	// Same weekday with the slot passed rolls a full week.
	s.DayOfWeek = intPtr(2)
	got, _ = NextSyncTime(context.Background(), s, at(10, 12, 0))
	if !got.Equal(at(17, 9, 0)) {
		t.Fatalf("slot passed: got %v, want next Tuesday %v", got, at(17, 9, 0))
	}

	// Same weekday with the slot still ahead runs today.
	got, _ = NextSyncTime(context.Background(), s, at(10, 8, 0))
	if !got.Equal(at(10, 9, 0)) {
		t.Fatalf("slot ahead: got %v, want today %v", got, at(10, 9, 0))
	}
}

func TestNextSyncTimeMonthly(t *testing.T) {
	s := config.Schedule{Frequency: config.FreqMonthly, Time: "09:00", DayOfMonth: intPtr(15)}

	got, ok := NextSyncTime(context.Background(), s, at(10, 12, 0))
	if !ok || !got.Equal(at(15, 9, 0)) {
		t.Fatalf("this month: got %v, want %v", got, at(15, 9, 0))
	}

	got, _ = NextSyncTime(context.Background(), s, at(20, 12, 0))
	want := time.Date(2026, time.April, 15, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("next month: got %v, want %v", got, want)
	}
}

func TestNextSyncTimeMonthlyShortMonthClamps(t *testing.T) {
	// Day 31 from late January lands on the last day of February rather
	// than normalizing into March.
	s := config.Schedule{Frequency: config.FreqMonthly, Time: "09:00", DayOfMonth: intPtr(31)}
	from := time.Date(2026, time.January, 31, 10, 0, 0, 0, time.UTC)
	got, ok := NextSyncTime(context.Background(), s, from)
	want := time.Date(2026, time.February, 28, 9, 0, 0, 0, time.UTC)
	if !ok || !got.Equal(want) {
		t.Fatalf("short month: got %v, want %v", got, want)
	}
}

func TestNextSyncTimeUnknownFrequency(t *testing.T) {
	_, ok := NextSyncTime(context.Background(), config.Schedule{Frequency: "fortnightly"}, at(10, 9, 0))
	if ok {
		t.Fatalf("unknown frequency must yield no next run")
	}
}
