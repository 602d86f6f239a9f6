// Package config defines the canonical, serializable configuration model for
// record imports. It is intentionally small, explicit, and behavior-free so
// that import definitions can be authored by users, persisted by callers, and
// passed through the engine without additional glue code.
//
// Design goals:
//
//  1. Stability: Changes to this package should be additive and backwards-
//     compatible whenever possible.
//  2. Clarity: Field names in Go mirror the JSON structure used in import
//     definition files.
//  3. Minimalism: Decoding is performed by encoding/json (or yaml.v3 for
//     YAML files), with a light Options helper for typed access.
//
// Example (trimmed):
//
//	{
//	  "name": "contacts",
//	  "columns": [
//	    { "source_name": "Email", "target_name": "email", "storage_type": "text",
//	      "included": true,
//	      "rules": [
//	        { "kind": "trim" },
//	        { "kind": "lowercase" },
//	        { "kind": "validate_email", "options": { "on_invalid": "skip" } }
//	      ] }
//	  ],
//	  "filters": [
//	    { "column": "status", "operator": "equals", "value": "active", "action": "include" }
//	  ],
//	  "dedupe":   { "strategy": "keep_first", "key_columns": ["email"] },
//	  "schedule": { "frequency": "daily", "time": "02:00", "retry_on_failure": true,
//	                "max_retries": 3, "retry_delay_minutes": 15 }
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Import describes one configured import: how raw columns map to cleaned
// output, which rows to keep, how duplicates resolve, and when runs recur.
type Import struct {
	// Name identifies the import in logs and suggested file names.
	Name string `json:"name" yaml:"name"`

	// Columns lists the per-column configuration in declared order. Order is
	// significant for reproducible previews.
	Columns []Column `json:"columns" yaml:"columns"`

	// Filters lists row-level include/exclude predicates. The set is a
	// conjunction: every filter must be satisfied for a row to pass.
	Filters []Filter `json:"filters,omitempty" yaml:"filters,omitempty"`

	// Dedupe configures duplicate-key resolution over cleaned rows.
	Dedupe Dedupe `json:"dedupe" yaml:"dedupe"`

	// Schedule configures when the import recurs and how failures retry.
	Schedule Schedule `json:"schedule" yaml:"schedule"`
}

// Column configures one source column.
type Column struct {
	// SourceName is the column name in the raw rows. Must be unique within
	// an import.
	SourceName string `json:"source_name" yaml:"source_name"`

	// TargetName is the output key the cleaned value is written under.
	// Duplicate target collisions are a caller concern, not validated here.
	TargetName string `json:"target_name" yaml:"target_name"`

	// StorageType is the storage-facing type: text, number, integer,
	// boolean, date, or timestamp. Semantic types (email, phone, url)
	// collapse to text before they reach this field.
	StorageType string `json:"storage_type" yaml:"storage_type"`

	// Included controls whether the column appears in output. Excluded
	// columns are dropped entirely and their rules never evaluate.
	Included bool `json:"included" yaml:"included"`

	// Rules is the ordered cleaning chain for this column; rules execute
	// left to right and the first skip wins.
	Rules []Rule `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// Rule selects one cleaning rule by kind. Each kind defines its own options
// shape; see the rules package for the closed set of kinds.
type Rule struct {
	Kind    string  `json:"kind" yaml:"kind"`
	Options Options `json:"options,omitempty" yaml:"options,omitempty"`
}

// Filter is a row-level predicate.
type Filter struct {
	// Column is the raw-row key the predicate reads.
	Column string `json:"column" yaml:"column"`

	// Operator is one of: equals, not_equals, contains, not_contains,
	// is_empty, is_not_empty, greater_than, less_than. Unknown operators
	// pass every row (fail-open).
	Operator string `json:"operator" yaml:"operator"`

	// Value is the comparison operand; unused by is_empty/is_not_empty.
	Value any `json:"value,omitempty" yaml:"value,omitempty"`

	// Action is "include" (row must match) or "exclude" (row must not match).
	Action string `json:"action" yaml:"action"`
}

// Filter actions.
const (
	ActionInclude = "include"
	ActionExclude = "exclude"
)

// Dedupe configures duplicate resolution.
type Dedupe struct {
	// Strategy is one of keep_all, keep_first, keep_last, skip_all.
	Strategy string `json:"strategy" yaml:"strategy"`

	// KeyColumns lists the source columns whose joined values define row
	// identity. Empty means no deduplication regardless of Strategy.
	KeyColumns []string `json:"key_columns,omitempty" yaml:"key_columns,omitempty"`
}

// Duplicate strategies.
const (
	KeepAll   = "keep_all"
	KeepFirst = "keep_first"
	KeepLast  = "keep_last"
	SkipAll   = "skip_all"
)

// Schedule configures recurrence and retry for an import.
type Schedule struct {
	// Frequency is one of manual, hourly, daily, weekly, monthly, cron.
	Frequency string `json:"frequency" yaml:"frequency"`

	// Time is the civil run time "HH:MM" for daily/weekly/monthly
	// frequencies. Defaults to "02:00" when empty.
	Time string `json:"time,omitempty" yaml:"time,omitempty"`

	// Timezone names an IANA zone. Carried for callers; next-run arithmetic
	// currently operates in the location of the reference time (see
	// schedule.NextSyncTime).
	Timezone string `json:"timezone,omitempty" yaml:"timezone,omitempty"`

	// DayOfWeek selects the weekly run day, 0 (Sunday) through 6.
	DayOfWeek *int `json:"day_of_week,omitempty" yaml:"day_of_week,omitempty"`

	// DayOfMonth selects the monthly run day, restricted to 1-28 so that
	// every month has the configured day.
	DayOfMonth *int `json:"day_of_month,omitempty" yaml:"day_of_month,omitempty"`

	// CronExpression is a 5-field cron spec; required when Frequency is
	// "cron".
	CronExpression string `json:"cron_expression,omitempty" yaml:"cron_expression,omitempty"`

	// RetryOnFailure enables retry of failed runs.
	RetryOnFailure bool `json:"retry_on_failure" yaml:"retry_on_failure"`

	// MaxRetries caps retry attempts, 0-10.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// RetryDelayMinutes is the base backoff delay, 1-1440.
	RetryDelayMinutes int `json:"retry_delay_minutes" yaml:"retry_delay_minutes"`
}

// Schedule frequencies.
const (
	FreqManual  = "manual"
	FreqHourly  = "hourly"
	FreqDaily   = "daily"
	FreqWeekly  = "weekly"
	FreqMonthly = "monthly"
	FreqCron    = "cron"
)

// DefaultTime is the run time assumed when Schedule.Time is empty.
const DefaultTime = "02:00"

// LoadFile decodes an Import from a JSON or YAML file, selected by extension
// (.yaml/.yml for YAML, anything else JSON).
func LoadFile(path string) (Import, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Import{}, fmt.Errorf("read config: %w", err)
	}
	var imp Import
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &imp); err != nil {
			return Import{}, fmt.Errorf("decode yaml config: %w", err)
		}
	default:
		if err := json.Unmarshal(b, &imp); err != nil {
			return Import{}, fmt.Errorf("decode json config: %w", err)
		}
	}
	return imp, nil
}
