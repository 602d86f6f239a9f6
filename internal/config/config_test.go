package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const contactsJSON = `{
  "name": "contacts",
  "columns": [
    {
      "source_name": "Email",
      "target_name": "email",
      "storage_type": "text",
      "included": true,
      "rules": [
        {"kind": "trim"},
        {"kind": "validate_email", "options": {"on_invalid": "skip"}}
      ]
    },
    {"source_name": "Internal ID", "included": false}
  ],
  "filters": [
    {"column": "status", "operator": "equals", "value": "active", "action": "include"}
  ],
  "dedupe": {"strategy": "keep_first", "key_columns": ["Email"]},
  "schedule": {
    "frequency": "weekly",
    "time": "09:00",
    "day_of_week": 1,
    "retry_on_failure": true,
    "max_retries": 3,
    "retry_delay_minutes": 15
  }
}`

const contactsYAML = `name: contacts
columns:
  - source_name: Email
    target_name: email
    storage_type: text
    included: true
    rules:
      - kind: trim
      - kind: validate_email
        options:
          on_invalid: skip
dedupe:
  strategy: keep_first
  key_columns: [Email]
schedule:
  frequency: daily
  time: "02:00"
  retry_on_failure: true
  max_retries: 3
  retry_delay_minutes: 15
`

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp: %v", err)
	}
	return path
}

func TestLoadFileJSON(t *testing.T) {
	imp, err := LoadFile(writeTemp(t, "contacts.json", contactsJSON))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if imp.Name != "contacts" || len(imp.Columns) != 2 {
		t.Fatalf("decoded %+v", imp)
	}

	c := imp.Columns[0]
	if c.SourceName != "Email" || c.TargetName != "email" || !c.Included {
		t.Fatalf("column: %+v", c)
	}
	if len(c.Rules) != 2 || c.Rules[1].Kind != "validate_email" {
		t.Fatalf("rules: %+v", c.Rules)
	}
	if got := c.Rules[1].Options.String("on_invalid", ""); got != "skip" {
		t.Fatalf("on_invalid = %q", got)
	}
	// Absent options decode to a usable empty map.
	if c.Rules[0].Options == nil {
		// Getters tolerate nil anyway; only assert the default path works.
		if got := c.Rules[0].Options.String("missing", "d"); got != "d" {
			t.Fatalf("nil options default = %q", got)
		}
	}

	if imp.Columns[1].Included {
		t.Fatalf("excluded column decoded as included")
	}

	if !reflect.DeepEqual(imp.Dedupe, Dedupe{Strategy: KeepFirst, KeyColumns: []string{"Email"}}) {
		t.Fatalf("dedupe: %+v", imp.Dedupe)
	}

	s := imp.Schedule
	if s.Frequency != FreqWeekly || s.Time != "09:00" || s.DayOfWeek == nil || *s.DayOfWeek != 1 {
		t.Fatalf("schedule: %+v", s)
	}
	if !s.RetryOnFailure || s.MaxRetries != 3 || s.RetryDelayMinutes != 15 {
		t.Fatalf("retry: %+v", s)
	}

	if issues := ValidateImport(imp); HasErrors(issues) {
		t.Fatalf("fixture should validate: %v", issues)
	}
}

func TestLoadFileYAML(t *testing.T) {
	imp, err := LoadFile(writeTemp(t, "contacts.yaml", contactsYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if imp.Name != "contacts" || imp.Schedule.Frequency != FreqDaily {
		t.Fatalf("decoded %+v", imp)
	}
	if got := imp.Columns[0].Rules[1].Options.String("on_invalid", ""); got != "skip" {
		t.Fatalf("on_invalid = %q", got)
	}
	if issues := ValidateImport(imp); HasErrors(issues) {
		t.Fatalf("fixture should validate: %v", issues)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatalf("missing file: expected error")
	}
	if _, err := LoadFile(writeTemp(t, "bad.json", "{")); err == nil {
		t.Fatalf("bad json: expected error")
	}
	if _, err := LoadFile(writeTemp(t, "bad.yaml", "\t:")); err == nil {
		t.Fatalf("bad yaml: expected error")
	}
}

func TestOptionsGetters(t *testing.T) {
	o := Options{
		"s":     "text",
		"b":     true,
		"i":     float64(7), // JSON numbers decode as float64
		"list":  []any{"a", "b"},
		"typed": []string{"x"},
		"deep":  map[string]any{"k": 1},
	}
	if got := o.String("s", "d"); got != "text" {
		t.Fatalf("String = %q", got)
	}
	if got := o.String("missing", "d"); got != "d" {
		t.Fatalf("String default = %q", got)
	}
	if got := o.String("b", "d"); got != "d" {
		t.Fatalf("String wrong type = %q", got)
	}
	if !o.Bool("b", false) || o.Bool("missing", false) {
		t.Fatalf("Bool")
	}
	if got := o.Int("i", 0); got != 7 {
		t.Fatalf("Int = %d", got)
	}
	if got := o.Int("s", 9); got != 9 {
		t.Fatalf("Int wrong type = %d", got)
	}
	if got := o.StringSlice("list"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("StringSlice = %v", got)
	}
	if got := o.StringSlice("typed"); !reflect.DeepEqual(got, []string{"x"}) {
		t.Fatalf("StringSlice typed = %v", got)
	}
	if got := o.StringSlice("missing"); got != nil {
		t.Fatalf("StringSlice missing = %v", got)
	}
	if o.Any("deep") == nil || o.Any("missing") != nil {
		t.Fatalf("Any")
	}

	// Nil receiver reads return defaults.
	var nilOpts Options
	if got := nilOpts.String("k", "d"); got != "d" {
		t.Fatalf("nil Options String = %q", got)
	}
}
