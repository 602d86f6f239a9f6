// Package records defines the row shape that flows through the import
// pipeline. A Record maps column names to raw scalar values (string, number,
// boolean, or nil). Column order is carried separately by callers, since Go
// maps are unordered.
package records

import (
	"fmt"
	"strconv"
	"time"
)

// Record is one row of tabular data.
type Record map[string]any

// Clone returns a shallow copy of r. The pipeline never mutates input rows
// in place; transforms write into fresh Records.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// AsString converts common scalar types to their string form without the
// overhead of fmt.Sprint; falls back to fmt.Sprint for uncommon types.
// nil converts to "".
func AsString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	case bool:
		if t {
			return "true"
		}
		return "false"
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprint(t)
	}
}

// IsEmpty reports whether v is nil or an empty string. Numeric zero and
// false are not empty; emptiness is about absence, not value.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
