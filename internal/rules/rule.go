// Package rules implements the closed set of cleaning rules applied to
// column values during an import. Each rule kind is a struct implementing
// Rule, compiled from its config.Rule description; dispatch is by type, not
// by dynamic property inspection, so the set stays exhaustiveness-checkable.
//
// Rules never return errors for data-quality problems: malformed values
// resolve to nil (parse rules) or to a row-level skip (validators configured
// with on_invalid=skip).
package rules

// Outcome is the result of applying one rule (or a chain) to a value.
type Outcome struct {
	// Value is the transformed value; nil models SQL-style null.
	Value any

	// Skip marks the whole row for exclusion. When set, Reason carries a
	// human-readable explanation for preview/diagnostic display.
	Skip   bool
	Reason string
}

// pass wraps v in a non-skipping Outcome.
func pass(v any) Outcome { return Outcome{Value: v} }

// skip produces a skipping Outcome with the given reason.
func skip(reason string) Outcome { return Outcome{Skip: true, Reason: reason} }

// Rule is one value transform or validation.
type Rule interface {
	// Kind returns the config kind string the rule was compiled from.
	Kind() string

	// Apply transforms a non-nil value. Nil handling is centralized in
	// ApplyRule so individual rules can assume presence.
	Apply(v any) Outcome
}

// ApplyRule applies one rule to a value, handling nil input centrally:
// NullToDefault substitutes its default, SkipIfEmpty skips with "Empty
// value", and every other rule passes nil through unchanged.
func ApplyRule(r Rule, v any) Outcome {
	if v == nil {
		switch nr := r.(type) {
		case NullToDefault:
			return pass(nr.Default)
		case SkipIfEmpty:
			return skip("Empty value")
		default:
			return pass(nil)
		}
	}
	return r.Apply(v)
}

// Chain is an ordered list of rules for one column. Rules execute left to
// right, each feeding its output value into the next.
type Chain []Rule

// Apply folds the chain over v and stops immediately at the first rule that
// signals skip; later rules never execute on a skipped value.
func (c Chain) Apply(v any) Outcome {
	out := Outcome{Value: v}
	for _, r := range c {
		out = ApplyRule(r, out.Value)
		if out.Skip {
			return out
		}
	}
	return out
}
