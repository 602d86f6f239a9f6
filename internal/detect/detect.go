// Package detect infers semantic types for raw tabular values and builds the
// column previews and rule suggestions shown to users while they configure an
// import. Everything here is pure, total, and deterministic: no value ever
// produces an error, only a classification.
package detect

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"importpipe/pkg/records"
)

// Type is the semantic type detected for a value or column. email, phone and
// url are refinements of text used only to drive rule suggestions; they
// collapse to text when mapped to a storage type.
type Type string

const (
	Text      Type = "text"
	Number    Type = "number"
	Integer   Type = "integer"
	Boolean   Type = "boolean"
	Date      Type = "date"
	Timestamp Type = "timestamp"
	Email     Type = "email"
	Phone     Type = "phone"
	URL       Type = "url"
)

// voteOrder fixes the tie-break order for column-level plurality votes so
// that detection stays deterministic regardless of map iteration.
var voteOrder = []Type{Text, Number, Integer, Boolean, Date, Timestamp, Email, Phone, URL}

var (
	emailRe     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	urlRe       = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://\S+$`)
	phoneCharRe = regexp.MustCompile(`^\+?[\d\s().-]+$`)
	digitRe     = regexp.MustCompile(`\D`)
)

// boolTokens is the fixed token set recognized as boolean, lowercased.
var boolTokens = map[string]struct{}{
	"true": {}, "false": {}, "yes": {}, "no": {},
	"1": {}, "0": {}, "y": {}, "n": {},
}

// dateLayouts are common date formats (no time component).
var dateLayouts = []string{
	"2006-01-02", // ISO
	"01/02/2006", // MDY slash
	"02/01/2006", // DMY slash
	"01-02-2006", // MDY dash
	"02.01.2006", // DMY dot
	"2 Jan 2006",
	"Jan 2, 2006",
	"2006/01/02",
}

// timestampLayouts are common timestamp formats (with time component).
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"01/02/2006 15:04:05",
}

// ValueType classifies a single raw value. Checks run in priority order;
// email/url/phone precede the numeric checks so that formatted numbers are
// not misread as phones and vice versa.
func ValueType(v any) Type {
	s := strings.TrimSpace(records.AsString(v))
	if s == "" {
		return Text
	}

	if emailRe.MatchString(s) {
		return Email
	}
	if urlRe.MatchString(s) {
		return URL
	}
	if phoneCharRe.MatchString(s) {
		if digits := digitRe.ReplaceAllString(s, ""); len(digits) >= 10 {
			return Phone
		}
	}
	if _, ok := boolTokens[strings.ToLower(s)]; ok {
		return Boolean
	}
	if isInteger(s) {
		return Integer
	}
	if isNumber(s) {
		return Number
	}
	// Short strings like "1/2" should stay text even if a layout matches.
	if len(s) > 5 {
		if ok, hasTime := parseDateOrTimestamp(s); ok {
			if hasTime {
				return Timestamp
			}
			return Date
		}
	}
	return Text
}

// ColumnType tallies ValueType votes over every non-null value and returns
// the plurality type with its confidence (winning votes / non-null count).
// Zero non-null values yields (Text, 0).
func ColumnType(values []any) (Type, float64) {
	votes := map[Type]int{}
	nonNull := 0
	for _, v := range values {
		if records.IsEmpty(v) {
			continue
		}
		nonNull++
		votes[ValueType(v)]++
	}
	if nonNull == 0 {
		return Text, 0
	}

	best := Text
	bestVotes := -1
	for _, t := range voteOrder {
		if n := votes[t]; n > bestVotes {
			best, bestVotes = t, n
		}
	}
	return best, float64(bestVotes) / float64(nonNull)
}

// StorageType maps a detected type onto the storage-facing type set used by
// column configuration. Semantic refinements collapse to text.
func StorageType(t Type) string {
	switch t {
	case Email, Phone, URL, Text:
		return "text"
	default:
		return string(t)
	}
}

// isInteger reports whether s parses as a signed base-10 integer after
// stripping thousands separators.
func isInteger(s string) bool {
	s = strings.ReplaceAll(s, ",", "")
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

// isNumber reports whether s parses as a float after stripping currency
// symbols and thousands separators.
func isNumber(s string) bool {
	s = stripChars(s, "$€£,")
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// stripChars removes every rune of chars from s.
func stripChars(s, chars string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(chars, r) {
			return -1
		}
		return r
	}, s)
}

// parseDateOrTimestamp tries timestamp layouts first, then date layouts.
// It returns ok when a layout matched and hasTime whether a time component
// was present.
func parseDateOrTimestamp(s string) (ok bool, hasTime bool) {
	for _, layout := range timestampLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true, true
		}
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true, false
		}
	}
	return false, false
}
