package source

import (
	"reflect"
	"strings"
	"testing"

	"importpipe/pkg/records"
)

func TestReadCSV(t *testing.T) {
	in := "name,email\nAlice,a@b.com\nBob,b@c.com\n"
	headers, rows, err := ReadCSV(strings.NewReader(in), 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(headers, []string{"name", "email"}) {
		t.Fatalf("headers = %v", headers)
	}
	want := []records.Record{
		{"name": "Alice", "email": "a@b.com"},
		{"name": "Bob", "email": "b@c.com"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %v, want %v", rows, want)
	}
}

func TestReadCSVStripsBOM(t *testing.T) {
	in := "\ufeffname\nAlice\n"
	headers, _, err := ReadCSV(strings.NewReader(in), 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if headers[0] != "name" {
		t.Fatalf("header = %q, want %q", headers[0], "name")
	}
}

func TestReadCSVRaggedRows(t *testing.T) {
	in := "a,b,c\n1,2\n1,2,3,4\n"
	_, rows, err := ReadCSV(strings.NewReader(in), 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := []records.Record{
		{"a": "1", "b": "2", "c": ""}, // short rows pad
		{"a": "1", "b": "2", "c": "3"}, // long rows truncate
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %v, want %v", rows, want)
	}
}

func TestReadCSVDelimiter(t *testing.T) {
	in := "a;b\n1;2\n"
	headers, rows, err := ReadCSV(strings.NewReader(in), ';')
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(headers, []string{"a", "b"}) || rows[0]["b"] != "2" {
		t.Fatalf("headers = %v rows = %v", headers, rows)
	}
}

func TestReadCSVEmptyInput(t *testing.T) {
	if _, _, err := ReadCSV(strings.NewReader(""), 0); err == nil {
		t.Fatalf("empty input: expected header error")
	}
}
