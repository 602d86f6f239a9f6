package schedule

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// scanLimit bounds the cron scan to one year of minutes (366 days, so leap
// years are covered). Expressions that never fire within the bound yield no
// next run.
const scanLimit = 366 * 24 * 60

// cronSpec holds one parsed 5-field expression. Each field is a match
// predicate over its calendar component.
type cronSpec struct {
	minute  cronField
	hour    cronField
	day     cronField
	month   cronField
	weekday cronField
}

func (c cronSpec) matches(t time.Time) bool {
	return c.minute.matches(t.Minute()) &&
		c.hour.matches(t.Hour()) &&
		c.day.matches(t.Day()) &&
		c.month.matches(int(t.Month())) &&
		c.weekday.matches(int(t.Weekday()))
}

// cronField matches one field. any short-circuits; otherwise membership is
// checked against the allowed set built at parse time.
type cronField struct {
	any     bool
	allowed map[int]struct{}
}

func (f cronField) matches(n int) bool {
	if f.any {
		return true
	}
	_, ok := f.allowed[n]
	return ok
}

// NextCron evaluates a 5-field cron expression (minute, hour, day-of-month,
// month, weekday) and returns the first instant strictly after from where
// all five fields match, scanning minute by minute up to one year ahead.
//
// Fields support "*", literal integers, ranges "a-b", comma lists, and
// steps "*/n". Malformed expressions are not an error: they degrade to
// "never fires" (ok=false), as does an exhausted scan or a canceled context.
func NextCron(ctx context.Context, expr string, from time.Time) (time.Time, bool) {
	spec, ok := parseCron(expr)
	if !ok {
		return time.Time{}, false
	}

	t := from.Truncate(time.Minute).Add(time.Minute)
	for i := 0; i < scanLimit; i++ {
		if i%4096 == 0 {
			select {
			case <-ctx.Done():
				return time.Time{}, false
			default:
			}
		}
		if spec.matches(t) {
			return t, true
		}
		t = t.Add(time.Minute)
	}
	return time.Time{}, false
}

// parseCron splits and parses the five fields. Anything other than exactly
// five whitespace-separated fields is malformed.
func parseCron(expr string) (cronSpec, bool) {
	fields := strings.Fields(expr)
	if len(fields) != 5 {
		return cronSpec{}, false
	}

	bounds := [5][2]int{
		{0, 59}, // minute
		{0, 23}, // hour
		{1, 31}, // day of month
		{1, 12}, // month
		{0, 6},  // weekday
	}

	var parsed [5]cronField
	for i, f := range fields {
		cf, ok := parseCronField(f, bounds[i][0], bounds[i][1])
		if !ok {
			return cronSpec{}, false
		}
		parsed[i] = cf
	}
	return cronSpec{
		minute:  parsed[0],
		hour:    parsed[1],
		day:     parsed[2],
		month:   parsed[3],
		weekday: parsed[4],
	}, true
}

// parseCronField parses one field into a predicate. Supported forms: "*",
// "*/n", "a", "a-b", and comma lists of literals and ranges.
func parseCronField(f string, lo, hi int) (cronField, bool) {
	if f == "*" {
		return cronField{any: true}, true
	}

	allowed := map[int]struct{}{}

	if rest, ok := strings.CutPrefix(f, "*/"); ok {
		step, err := strconv.Atoi(rest)
		if err != nil || step <= 0 {
			return cronField{}, false
		}
		for n := lo; n <= hi; n += step {
			allowed[n] = struct{}{}
		}
		return cronField{allowed: allowed}, true
	}

	for _, part := range strings.Split(f, ",") {
		if a, b, isRange := strings.Cut(part, "-"); isRange {
			start, err1 := strconv.Atoi(a)
			end, err2 := strconv.Atoi(b)
			if err1 != nil || err2 != nil || start > end || start < lo || end > hi {
				return cronField{}, false
			}
			for n := start; n <= end; n++ {
				allowed[n] = struct{}{}
			}
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < lo || n > hi {
			return cronField{}, false
		}
		allowed[n] = struct{}{}
	}
	return cronField{allowed: allowed}, true
}
