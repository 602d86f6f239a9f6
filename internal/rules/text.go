package rules

import (
	"regexp"
	"strings"
	"unicode"

	"importpipe/pkg/records"
)

var whitespaceRunRe = regexp.MustCompile(`\s+`)

// Trim strips leading and trailing whitespace.
type Trim struct{}

func (Trim) Kind() string { return "trim" }

func (Trim) Apply(v any) Outcome {
	return pass(strings.TrimSpace(records.AsString(v)))
}

// CollapseWhitespace replaces runs of whitespace with a single space, then
// trims.
type CollapseWhitespace struct{}

func (CollapseWhitespace) Kind() string { return "collapse_whitespace" }

func (CollapseWhitespace) Apply(v any) Outcome {
	s := whitespaceRunRe.ReplaceAllString(records.AsString(v), " ")
	return pass(strings.TrimSpace(s))
}

// Lowercase case-folds to lower.
type Lowercase struct{}

func (Lowercase) Kind() string { return "lowercase" }

func (Lowercase) Apply(v any) Outcome {
	return pass(strings.ToLower(records.AsString(v)))
}

// Uppercase case-folds to upper.
type Uppercase struct{}

func (Uppercase) Kind() string { return "uppercase" }

func (Uppercase) Apply(v any) Outcome {
	return pass(strings.ToUpper(records.AsString(v)))
}

// TitleCase uppercases the first letter of each whitespace-separated word
// and lowercases the rest.
type TitleCase struct{}

func (TitleCase) Kind() string { return "title_case" }

func (TitleCase) Apply(v any) Outcome {
	words := strings.Fields(records.AsString(v))
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return pass(strings.Join(words, " "))
}

// EmptyToNull converts blank-after-trim values to nil, everything else stays
// unchanged.
type EmptyToNull struct{}

func (EmptyToNull) Kind() string { return "empty_to_null" }

func (EmptyToNull) Apply(v any) Outcome {
	if strings.TrimSpace(records.AsString(v)) == "" {
		return pass(nil)
	}
	return pass(v)
}

// SkipIfEmpty skips the row when the value is blank after trimming. Nil
// input is handled by ApplyRule with the same reason.
type SkipIfEmpty struct{}

func (SkipIfEmpty) Kind() string { return "skip_if_empty" }

func (SkipIfEmpty) Apply(v any) Outcome {
	if strings.TrimSpace(records.AsString(v)) == "" {
		return skip("Empty value")
	}
	return pass(v)
}

// NullToDefault substitutes a configured default for nil input. Non-nil
// values pass through unchanged; the substitution itself happens in
// ApplyRule's nil gate.
type NullToDefault struct {
	Default any
}

func (NullToDefault) Kind() string { return "null_to_default" }

func (NullToDefault) Apply(v any) Outcome { return pass(v) }

// FindReplace substitutes Find with Replace, literally or as a regular
// expression. The pattern is compiled once at build time.
type FindReplace struct {
	Find    string
	Replace string
	re      *regexp.Regexp // non-nil in regex mode
}

func (FindReplace) Kind() string { return "find_replace" }

func (f FindReplace) Apply(v any) Outcome {
	s := records.AsString(v)
	if f.re != nil {
		return pass(f.re.ReplaceAllString(s, f.Replace))
	}
	return pass(strings.ReplaceAll(s, f.Find, f.Replace))
}

// Split splits on a delimiter and keeps the element at TakeIndex, or nil
// when the index is out of range.
type Split struct {
	Delimiter string
	TakeIndex int
}

func (Split) Kind() string { return "split" }

func (sp Split) Apply(v any) Outcome {
	parts := strings.Split(records.AsString(v), sp.Delimiter)
	if sp.TakeIndex < 0 || sp.TakeIndex >= len(parts) {
		return pass(nil)
	}
	return pass(parts[sp.TakeIndex])
}

// Prefix prepends a fixed string.
type Prefix struct {
	Value string
}

func (Prefix) Kind() string { return "prefix" }

func (p Prefix) Apply(v any) Outcome {
	return pass(p.Value + records.AsString(v))
}

// Suffix appends a fixed string.
type Suffix struct {
	Value string
}

func (Suffix) Kind() string { return "suffix" }

func (s Suffix) Apply(v any) Outcome {
	return pass(records.AsString(v) + s.Value)
}
