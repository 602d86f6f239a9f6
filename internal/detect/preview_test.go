package detect

import (
	"reflect"
	"testing"

	"importpipe/pkg/records"
)

func TestPreview(t *testing.T) {
	p := Preview("email", []any{"a@b.com", nil, "a@b.com", "", "c@d.com"})
	if p.Name != "email" {
		t.Fatalf("name = %q", p.Name)
	}
	if p.DetectedType != Email {
		t.Fatalf("type = %s", p.DetectedType)
	}
	if p.NullCount != 2 {
		t.Fatalf("nulls = %d, want 2", p.NullCount)
	}
	if p.UniqueCount != 2 {
		t.Fatalf("uniques = %d, want 2", p.UniqueCount)
	}
	want := []string{"a@b.com", "a@b.com", "c@d.com"}
	if !reflect.DeepEqual(p.SampleValues, want) {
		t.Fatalf("samples = %v, want %v", p.SampleValues, want)
	}
}

func TestPreviewSampleCap(t *testing.T) {
	values := make([]any, 20)
	for i := range values {
		values[i] = records.AsString(i)
	}
	p := Preview("n", values)
	if len(p.SampleValues) != MaxSampleValues {
		t.Fatalf("samples = %d, want %d", len(p.SampleValues), MaxSampleValues)
	}
	if p.UniqueCount != 20 {
		t.Fatalf("uniques = %d, want 20", p.UniqueCount)
	}
}

func TestPreviewRows(t *testing.T) {
	rows := []records.Record{
		{"name": "Alice", "age": "30"},
		{"name": "Bob"}, // missing age reads as null
		{"name": "Cara", "age": "41"},
	}
	got := PreviewRows([]string{"name", "age"}, rows, 0)
	if len(got) != 2 || got[0].Name != "name" || got[1].Name != "age" {
		t.Fatalf("previews = %+v", got)
	}
	if got[1].NullCount != 1 || got[1].DetectedType != Integer {
		t.Fatalf("age preview = %+v", got[1])
	}

	// Sample size bounds the rows scanned.
	got = PreviewRows([]string{"name"}, rows, 2)
	if got[0].UniqueCount != 2 {
		t.Fatalf("bounded sample uniques = %d, want 2", got[0].UniqueCount)
	}
}

func TestSuggestRules(t *testing.T) {
	// Email columns get lowercase + validation; messy samples add a trim.
	p := Preview("email", []any{" A@B.com ", "c@d.com"})
	rules := SuggestRules(p)
	kinds := make([]string, len(rules))
	for i, r := range rules {
		kinds[i] = r.Kind
	}
	want := []string{"trim", "lowercase", "validate_email"}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	if got := rules[2].Options.String("on_invalid", ""); got != "skip" {
		t.Fatalf("on_invalid = %q", got)
	}

	// Phone columns get e164 validation.
	rules = SuggestRules(Preview("phone", []any{"(555) 123-4567"}))
	if len(rules) != 1 || rules[0].Kind != "validate_phone" || rules[0].Options.String("format", "") != "e164" {
		t.Fatalf("phone rules = %+v", rules)
	}

	// Currency-formatted numbers get a character-stripping parse.
	rules = SuggestRules(Preview("price", []any{"$4.50", "$10.00"}))
	if len(rules) != 1 || rules[0].Kind != "parse_number" {
		t.Fatalf("price rules = %+v", rules)
	}

	// Plain numbers need no parsing help.
	if rules = SuggestRules(Preview("count", []any{"1.5", "2.5"})); len(rules) != 0 {
		t.Fatalf("plain number rules = %+v", rules)
	}

	// Yes/no booleans get explicit token vocabularies.
	rules = SuggestRules(Preview("active", []any{"yes", "no", "yes"}))
	if len(rules) != 1 || rules[0].Kind != "parse_boolean" {
		t.Fatalf("boolean rules = %+v", rules)
	}

	// Clean text columns suggest nothing.
	if rules = SuggestRules(Preview("note", []any{"fine", "ok"})); len(rules) != 0 {
		t.Fatalf("clean text rules = %+v", rules)
	}
}

func TestNormalizeFieldName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Email Address", "email_address"},
		{"  First-Name ", "first_name"},
		{"Prix (€)", "prix"},
		{"Téléphone", "telephone"},
		{"order.id", "order_id"},
		{"a  b", "a_b"},
		{"第一", "col"},
		{"", "col"},
		{"__x__", "x"},
	}
	for _, tc := range cases {
		if got := NormalizeFieldName(tc.in); got != tc.want {
			t.Fatalf("NormalizeFieldName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
