// Package filter evaluates row-level include/exclude predicates against raw
// rows before any cleaning runs. A filter set is a conjunction: every filter
// must be satisfied (per its action) for a row to pass; an empty set passes
// every row.
package filter

import (
	"strconv"
	"strings"

	"importpipe/internal/config"
	"importpipe/pkg/records"
)

// Matches reports whether a row satisfies one filter's operator, ignoring
// the filter's action. Unknown operators match every row: the permissive
// default keeps a typo'd config from silently dropping the whole set.
func Matches(row records.Record, f config.Filter) bool {
	v := row[f.Column]
	want := records.AsString(f.Value)

	switch f.Operator {
	case "equals":
		return records.AsString(v) == want
	case "not_equals":
		return records.AsString(v) != want
	case "contains":
		return strings.Contains(strings.ToLower(records.AsString(v)), strings.ToLower(want))
	case "not_contains":
		return !strings.Contains(strings.ToLower(records.AsString(v)), strings.ToLower(want))
	case "is_empty":
		return records.IsEmpty(v)
	case "is_not_empty":
		return !records.IsEmpty(v)
	case "greater_than":
		got, ok1 := toFloat(v)
		lim, ok2 := toFloat(f.Value)
		return ok1 && ok2 && got > lim
	case "less_than":
		got, ok1 := toFloat(v)
		lim, ok2 := toFloat(f.Value)
		return ok1 && ok2 && got < lim
	default:
		return true
	}
}

// ShouldInclude reports whether a row survives the full filter set. An
// include filter rejects rows that do not match; an exclude filter rejects
// rows that do.
func ShouldInclude(row records.Record, filters []config.Filter) bool {
	for _, f := range filters {
		matched := Matches(row, f)
		if f.Action == config.ActionExclude {
			if matched {
				return false
			}
			continue
		}
		// include is the default action
		if !matched {
			return false
		}
	}
	return true
}

// toFloat coerces a raw scalar to float64 for numeric comparisons.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case bool:
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(records.AsString(v)), 64)
	return f, err == nil
}
