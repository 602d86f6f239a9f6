package detect

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"importpipe/internal/config"
)

// SuggestRules proposes a starter rule chain for a previewed column. The
// heuristic is deterministic and only suggests; it never mutates existing
// user configuration.
func SuggestRules(p ColumnPreview) []config.Rule {
	var out []config.Rule

	for _, s := range p.SampleValues {
		if hasMessyWhitespace(s) {
			out = append(out, config.Rule{Kind: "trim"})
			break
		}
	}

	switch p.DetectedType {
	case Email:
		out = append(out,
			config.Rule{Kind: "lowercase"},
			config.Rule{Kind: "validate_email", Options: config.Options{"on_invalid": "skip"}},
		)
	case Phone:
		out = append(out, config.Rule{
			Kind:    "validate_phone",
			Options: config.Options{"format": "e164", "on_invalid": "skip"},
		})
	case Number:
		if samplesContainAny(p.SampleValues, "$€£") {
			out = append(out, config.Rule{
				Kind:    "parse_number",
				Options: config.Options{"remove_chars": "$€£,"},
			})
		}
	case Boolean:
		if samplesLookYesNo(p.SampleValues) {
			out = append(out, config.Rule{
				Kind: "parse_boolean",
				Options: config.Options{
					"true_values":  []string{"yes", "y", "true", "1"},
					"false_values": []string{"no", "n", "false", "0"},
				},
			})
		}
	}

	return out
}

func samplesContainAny(samples []string, chars string) bool {
	for _, s := range samples {
		if strings.ContainsAny(s, chars) {
			return true
		}
	}
	return false
}

func samplesLookYesNo(samples []string) bool {
	for _, s := range samples {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "yes", "no", "y", "n":
			return true
		}
	}
	return false
}

// NormalizeFieldName converts arbitrary header text into a lowercase ASCII
// identifier suitable for target column names:
//  1. lowercase
//  2. strip accents (NFD → remove Mn → NFC)
//  3. keep [a-z0-9_]; convert space/dash/dot to underscore; drop others
//  4. fallback to "col" if empty
func NormalizeFieldName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	// Decompose → remove nonspacing marks (accents) → recompose.
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	ascii, _, _ := transform.String(t, s)

	var b strings.Builder
	prevUnderscore := false
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			prevUnderscore = false
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			prevUnderscore = false
		case r == '_' || r == ' ' || r == '-' || r == '.':
			if !prevUnderscore {
				b.WriteRune('_')
				prevUnderscore = true
			}
		default:
			// drop anything else
		}
	}
	name := strings.Trim(b.String(), "_")
	if name == "" {
		return "col"
	}
	return name
}
