package rules

import (
	"strconv"
	"strings"
	"time"

	"importpipe/pkg/records"
)

// DefaultRemoveChars is the strip set used by ParseNumber when none is
// configured: currency symbols and the thousands separator.
const DefaultRemoveChars = "$€£,"

// stripChars removes every rune of chars from s.
func stripChars(s, chars string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(chars, r) {
			return -1
		}
		return r
	}, s)
}

// ParseNumber strips configured characters and parses a float. Unparsable
// values resolve to nil, never to a skip.
type ParseNumber struct {
	RemoveChars string
}

func (ParseNumber) Kind() string { return "parse_number" }

func (r ParseNumber) Apply(v any) Outcome {
	switch v.(type) {
	case float64, float32, int, int32, int64:
		return pass(v)
	}
	s := strings.TrimSpace(stripChars(records.AsString(v), r.RemoveChars))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return pass(nil)
	}
	return pass(f)
}

// defaultTruthy/defaultFalsy are the boolean vocabularies assumed when a
// parse_boolean rule configures none (lowercased).
var (
	defaultTruthy = []string{"true", "t", "yes", "y", "1"}
	defaultFalsy  = []string{"false", "f", "no", "n", "0"}
)

// ParseBoolean matches case-insensitively against configured true/false
// token lists; no match resolves to nil.
type ParseBoolean struct {
	truthy map[string]struct{}
	falsy  map[string]struct{}
}

// NewParseBoolean builds a ParseBoolean with lowercased token sets. Empty
// lists fall back to the default vocabularies.
func NewParseBoolean(trueValues, falseValues []string) ParseBoolean {
	if len(trueValues) == 0 {
		trueValues = defaultTruthy
	}
	if len(falseValues) == 0 {
		falseValues = defaultFalsy
	}
	p := ParseBoolean{
		truthy: make(map[string]struct{}, len(trueValues)),
		falsy:  make(map[string]struct{}, len(falseValues)),
	}
	for _, t := range trueValues {
		p.truthy[strings.ToLower(t)] = struct{}{}
	}
	for _, f := range falseValues {
		p.falsy[strings.ToLower(f)] = struct{}{}
	}
	return p
}

func (ParseBoolean) Kind() string { return "parse_boolean" }

func (r ParseBoolean) Apply(v any) Outcome {
	if b, ok := v.(bool); ok {
		return pass(b)
	}
	s := strings.ToLower(strings.TrimSpace(records.AsString(v)))
	if _, ok := r.truthy[s]; ok {
		return pass(true)
	}
	if _, ok := r.falsy[s]; ok {
		return pass(false)
	}
	return pass(nil)
}

// dateFormatLayouts maps the user-facing format tokens onto Go layouts.
var dateFormatLayouts = map[string]string{
	"YYYY-MM-DD": "2006-01-02",
	"MM/DD/YYYY": "01/02/2006",
	"DD/MM/YYYY": "02/01/2006",
	"MM-DD-YYYY": "01-02-2006",
}

// genericDateLayouts is the fallback list tried for unrecognized format
// tokens (or when none is configured).
var genericDateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02.01.2006",
	"2006/01/02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// ParseDate parses against a configured format token, falling back to
// generic date parsing for unrecognized formats. Invalid values resolve to
// nil; valid ones normalize to a "YYYY-MM-DD" string.
type ParseDate struct {
	Format string
}

func (ParseDate) Kind() string { return "parse_date" }

func (r ParseDate) Apply(v any) Outcome {
	if t, ok := v.(time.Time); ok {
		return pass(t.Format("2006-01-02"))
	}
	s := strings.TrimSpace(records.AsString(v))

	if layout, ok := dateFormatLayouts[r.Format]; ok {
		if t, err := time.Parse(layout, s); err == nil {
			return pass(t.Format("2006-01-02"))
		}
		return pass(nil)
	}
	for _, layout := range genericDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return pass(t.Format("2006-01-02"))
		}
	}
	return pass(nil)
}

// ParsePercentage strips a percent sign and parses a float; with AsDecimal
// the result divides by 100. Unparsable values resolve to nil.
type ParsePercentage struct {
	AsDecimal bool
}

func (ParsePercentage) Kind() string { return "parse_percentage" }

func (r ParsePercentage) Apply(v any) Outcome {
	s := strings.TrimSpace(strings.ReplaceAll(records.AsString(v), "%", ""))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return pass(nil)
	}
	if r.AsDecimal {
		f /= 100
	}
	return pass(f)
}
