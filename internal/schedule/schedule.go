// Package schedule computes when an import should next run: recurrence
// arithmetic for the fixed frequencies, a minimal cron evaluator, and retry
// backoff for failed runs. Everything is pure computation over time values;
// callers own persisting the results.
//
// Civil-time arithmetic operates in the location of the reference time the
// caller passes in. The Timezone field of the schedule configuration is
// carried and validated but not applied here, preserving the behavior of the
// system this engine replaces; see NextSyncTime.
package schedule

import (
	"context"
	"strconv"
	"time"

	"importpipe/internal/config"
)

// NextSyncTime computes the next run instant strictly after from, or
// ok=false when no next run exists. Manual schedules and malformed cron
// expressions both legitimately yield ok=false; callers distinguish them by
// inspecting Frequency or by validating the config first.
//
// Arithmetic is civil time in from's location; config.Schedule.Timezone is
// intentionally not consulted.
func NextSyncTime(ctx context.Context, s config.Schedule, from time.Time) (time.Time, bool) {
	switch s.Frequency {
	case config.FreqManual:
		return time.Time{}, false

	case config.FreqHourly:
		// Next exact hour boundary strictly after from.
		top := time.Date(from.Year(), from.Month(), from.Day(), from.Hour(), 0, 0, 0, from.Location())
		return top.Add(time.Hour), true

	case config.FreqDaily:
		h, m := runTime(s)
		next := time.Date(from.Year(), from.Month(), from.Day(), h, m, 0, 0, from.Location())
		if !next.After(from) {
			next = next.AddDate(0, 0, 1)
		}
		return next, true

	case config.FreqWeekly:
		h, m := runTime(s)
		target := 0
		if s.DayOfWeek != nil {
			target = *s.DayOfWeek
		}
		ahead := (target - int(from.Weekday()) + 7) % 7
		next := time.Date(from.Year(), from.Month(), from.Day(), h, m, 0, 0, from.Location())
		next = next.AddDate(0, 0, ahead)
		if !next.After(from) {
			// Same day but the slot has passed: roll a full week.
			next = next.AddDate(0, 0, 7)
		}
		return next, true

	case config.FreqMonthly:
		h, m := runTime(s)
		day := 1
		if s.DayOfMonth != nil {
			day = *s.DayOfMonth
		}
		next := dayOfMonthClamped(from.Year(), from.Month(), day, h, m, from.Location())
		if !next.After(from) {
			next = dayOfMonthClamped(from.Year(), from.Month()+1, day, h, m, from.Location())
		}
		return next, true

	case config.FreqCron:
		return NextCron(ctx, s.CronExpression, from)

	default:
		return time.Time{}, false
	}
}

// runTime parses the schedule's HH:MM run time, falling back to the default
// when empty or malformed.
func runTime(s config.Schedule) (hour, minute int) {
	t := s.Time
	if t == "" {
		t = config.DefaultTime
	}
	if len(t) == 5 && t[2] == ':' {
		h, err1 := strconv.Atoi(t[:2])
		m, err2 := strconv.Atoi(t[3:])
		if err1 == nil && err2 == nil && h >= 0 && h <= 23 && m >= 0 && m <= 59 {
			return h, m
		}
	}
	return 2, 0
}

// dayOfMonthClamped builds the instant at day/hour/minute of the given
// month. Configuration restricts the day to 1-28, but a wider day that would
// normalize into the following month is treated as a short month and
// re-clamped to the last day of the intended one.
func dayOfMonthClamped(year int, month time.Month, day, hour, minute int, loc *time.Location) time.Time {
	t := time.Date(year, month, day, hour, minute, 0, 0, loc)
	want := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	if t.Month() != want.Month() || t.Year() != want.Year() {
		// Day 0 of the next month is the last day of the intended month.
		t = time.Date(year, month+1, 0, hour, minute, 0, 0, loc)
	}
	return t
}
