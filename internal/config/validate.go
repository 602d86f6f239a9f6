// Package config provides configuration models and helpers for record
// imports.
//
// This file adds a lightweight linter/validator for Import values. It
// performs static checks over a decoded Import and returns a list of issues
// (errors and warnings) that callers can surface in a CLI or tests. All
// violations are collected, never short-circuited, so callers see every
// problem at once.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation/lint finding for an Import.
//
// Path is a dotted path into the config (e.g. "schedule.time",
// "columns[1].rules[0].kind"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue in the list is an error.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// knownRuleKinds is the closed set of cleaning rule kinds the rules package
// implements. Unknown kinds are configuration errors, not runtime failures.
var knownRuleKinds = map[string]struct{}{
	"trim": {}, "collapse_whitespace": {}, "lowercase": {}, "uppercase": {},
	"title_case": {}, "empty_to_null": {}, "skip_if_empty": {},
	"null_to_default": {}, "validate_email": {}, "validate_phone": {},
	"validate_url": {}, "parse_number": {}, "parse_boolean": {},
	"parse_date": {}, "parse_percentage": {}, "find_replace": {},
	"split": {}, "prefix": {}, "suffix": {},
}

// knownOperators are the filter operators the filter package dispatches on.
// Unknown operators pass rows (fail-open), so they are warnings here rather
// than errors.
var knownOperators = map[string]struct{}{
	"equals": {}, "not_equals": {}, "contains": {}, "not_contains": {},
	"is_empty": {}, "is_not_empty": {}, "greater_than": {}, "less_than": {},
}

var knownStorageTypes = map[string]struct{}{
	"text": {}, "number": {}, "integer": {}, "boolean": {},
	"date": {}, "timestamp": {},
}

// ValidateImport performs static validation / linting of an Import.
//
// It does not mutate the import. Instead it returns a slice of Issue values.
// Callers may decide whether to treat warnings as fatal or not.
func ValidateImport(imp Import) []Issue {
	var issues []Issue

	if strings.TrimSpace(imp.Name) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "name",
			Message:  "name is empty; it is used to identify runs in logs",
		})
	}

	issues = append(issues, validateColumns(imp.Columns)...)
	issues = append(issues, validateFilters(imp.Filters)...)
	issues = append(issues, validateDedupe(imp.Dedupe, imp.Columns)...)
	issues = append(issues, ValidateSchedule(imp.Schedule)...)

	return issues
}

func validateColumns(cols []Column) []Issue {
	var issues []Issue

	if len(cols) == 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "columns",
			Message:  "at least one column must be configured",
		})
		return issues
	}

	seen := map[string]int{}
	for i, c := range cols {
		path := fmt.Sprintf("columns[%d]", i)
		if strings.TrimSpace(c.SourceName) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path + ".source_name",
				Message:  "source_name must not be empty",
			})
		} else if prev, dup := seen[c.SourceName]; dup {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path + ".source_name",
				Message:  fmt.Sprintf("source_name %q already used by columns[%d]", c.SourceName, prev),
			})
		} else {
			seen[c.SourceName] = i
		}

		if c.Included && strings.TrimSpace(c.TargetName) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path + ".target_name",
				Message:  "included columns require a non-empty target_name",
			})
		}

		if c.StorageType != "" {
			if _, ok := knownStorageTypes[c.StorageType]; !ok {
				issues = append(issues, Issue{
					Severity: SeverityWarning,
					Path:     path + ".storage_type",
					Message:  fmt.Sprintf("unknown storage type %q; treated as text", c.StorageType),
				})
			}
		}

		for j, r := range c.Rules {
			if _, ok := knownRuleKinds[r.Kind]; !ok {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     fmt.Sprintf("%s.rules[%d].kind", path, j),
					Message:  fmt.Sprintf("unknown rule kind %q", r.Kind),
				})
			}
		}
	}

	return issues
}

func validateFilters(filters []Filter) []Issue {
	var issues []Issue

	for i, f := range filters {
		path := fmt.Sprintf("filters[%d]", i)
		if strings.TrimSpace(f.Column) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path + ".column",
				Message:  "filter column must not be empty",
			})
		}
		if _, ok := knownOperators[f.Operator]; !ok {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     path + ".operator",
				Message:  fmt.Sprintf("unknown operator %q; filter will pass every row", f.Operator),
			})
		}
		if f.Action != ActionInclude && f.Action != ActionExclude {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path + ".action",
				Message:  fmt.Sprintf("action must be %q or %q, got %q", ActionInclude, ActionExclude, f.Action),
			})
		}
	}

	return issues
}

func validateDedupe(d Dedupe, cols []Column) []Issue {
	var issues []Issue

	switch d.Strategy {
	case "", KeepAll, KeepFirst, KeepLast, SkipAll:
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "dedupe.strategy",
			Message:  fmt.Sprintf("unknown strategy %q", d.Strategy),
		})
	}

	if d.Strategy != "" && d.Strategy != KeepAll && len(d.KeyColumns) == 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "dedupe.key_columns",
			Message:  "no key columns configured; deduplication is a no-op",
		})
	}

	known := map[string]struct{}{}
	for _, c := range cols {
		known[c.SourceName] = struct{}{}
	}
	for i, k := range d.KeyColumns {
		if _, ok := known[k]; !ok {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     fmt.Sprintf("dedupe.key_columns[%d]", i),
				Message:  fmt.Sprintf("key column %q is not a configured source column", k),
			})
		}
	}

	return issues
}

// ValidateSchedule performs static validation of a Schedule. It is pure and
// non-throwing; every violation is collected so callers see all problems at
// once. Callers should check the result before relying on
// schedule.NextSyncTime, since a manual frequency and a malformed cron
// expression both legitimately yield no next run.
func ValidateSchedule(s Schedule) []Issue {
	var issues []Issue

	switch s.Frequency {
	case FreqManual, FreqHourly, FreqDaily, FreqWeekly, FreqMonthly, FreqCron:
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "schedule.frequency",
			Message:  fmt.Sprintf("unknown frequency %q", s.Frequency),
		})
	}

	if s.Frequency == FreqCron && strings.TrimSpace(s.CronExpression) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "schedule.cron_expression",
			Message:  "cron frequency requires a cron_expression",
		})
	}

	if s.Time != "" && !validHHMM(s.Time) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "schedule.time",
			Message:  fmt.Sprintf("time %q is not HH:MM", s.Time),
		})
	}

	if s.DayOfWeek != nil && (*s.DayOfWeek < 0 || *s.DayOfWeek > 6) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "schedule.day_of_week",
			Message:  fmt.Sprintf("day_of_week %d outside 0-6", *s.DayOfWeek),
		})
	}

	if s.DayOfMonth != nil && (*s.DayOfMonth < 1 || *s.DayOfMonth > 28) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "schedule.day_of_month",
			Message:  fmt.Sprintf("day_of_month %d outside 1-28", *s.DayOfMonth),
		})
	}

	if s.MaxRetries < 0 || s.MaxRetries > 10 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "schedule.max_retries",
			Message:  fmt.Sprintf("max_retries %d outside 0-10", s.MaxRetries),
		})
	}

	if s.RetryDelayMinutes < 1 || s.RetryDelayMinutes > 1440 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "schedule.retry_delay_minutes",
			Message:  fmt.Sprintf("retry_delay_minutes %d outside 1-1440", s.RetryDelayMinutes),
		})
	}

	if s.Timezone != "" {
		if _, err := time.LoadLocation(s.Timezone); err != nil {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     "schedule.timezone",
				Message:  fmt.Sprintf("timezone %q is not a loadable IANA zone", s.Timezone),
			})
		}
	}

	return issues
}

// validHHMM reports whether s is a zero-padded 24h "HH:MM" time.
func validHHMM(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	h, err := strconv.Atoi(s[:2])
	if err != nil || h < 0 || h > 23 {
		return false
	}
	m, err := strconv.Atoi(s[3:])
	if err != nil || m < 0 || m > 59 {
		return false
	}
	return true
}
