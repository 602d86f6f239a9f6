package detect

import (
	"testing"
)

func TestValueType(t *testing.T) {
	cases := []struct {
		in   any
		want Type
	}{
		{nil, Text},
		{"", Text},
		{"  ", Text},
		{"hello", Text},
		{"user@example.com", Email},
		{"https://example.com/path", URL},
		{"ftp://host/file", URL},
		{"(555) 123-4567", Phone},
		{"+1 555 123 4567", Phone},
		{"555-1234", Text}, // too few digits for a phone
		{"true", Boolean},
		{"No", Boolean},
		{"1", Boolean}, // boolean check precedes integer
		{"42", Integer},
		{"-7", Integer},
		{"1,234", Integer},
		{"3.14", Number},
		{"$4.50", Number},
		{"€1,200.00", Number},
		{"2024-01-15", Date},
		{"15/01/2024", Date},
		{"Jan 2, 2024", Date},
		{"2024-01-15T10:30:00Z", Timestamp},
		{"2024-01-15 10:30:00", Timestamp},
		{"1/2", Text}, // too short to be a date
		{"not a date", Text},
	}
	for _, tc := range cases {
		if got := ValueType(tc.in); got != tc.want {
			t.Fatalf("ValueType(%v) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestColumnType(t *testing.T) {
	typ, conf := ColumnType([]any{"a@b.com", "c@d.com", "broken", nil})
	if typ != Email {
		t.Fatalf("type = %s, want email", typ)
	}
	// 2 of 3 non-null values vote email.
	if want := 2.0 / 3.0; conf != want {
		t.Fatalf("confidence = %v, want %v", conf, want)
	}

	// Nulls never vote.
	typ, conf = ColumnType([]any{nil, "", "42"})
	if typ != Integer || conf != 1 {
		t.Fatalf("got %s/%v, want integer/1", typ, conf)
	}

	// All-null columns default to text with zero confidence.
	typ, conf = ColumnType([]any{nil, ""})
	if typ != Text || conf != 0 {
		t.Fatalf("got %s/%v, want text/0", typ, conf)
	}
}

func TestStorageType(t *testing.T) {
	cases := []struct {
		in   Type
		want string
	}{
		{Email, "text"},
		{Phone, "text"},
		{URL, "text"},
		{Text, "text"},
		{Integer, "integer"},
		{Number, "number"},
		{Boolean, "boolean"},
		{Date, "date"},
		{Timestamp, "timestamp"},
	}
	for _, tc := range cases {
		if got := StorageType(tc.in); got != tc.want {
			t.Fatalf("StorageType(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
