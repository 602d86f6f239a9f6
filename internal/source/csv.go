// Package source reads tabular extracts into the row shape the engine
// consumes: a header list in source order plus one Record per data row. Only
// the CLIs use it; the engine itself performs no I/O.
package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"importpipe/pkg/records"
)

// ReadCSV reads an entire CSV stream. The first row is the header; data rows
// are fitted to the header width (extra fields dropped, missing fields
// empty). A UTF-8 BOM on the first header cell is stripped.
func ReadCSV(r io.Reader, delimiter rune) ([]string, []records.Record, error) {
	cr := csv.NewReader(r)
	if delimiter != 0 {
		cr.Comma = delimiter
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	headers, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	headers = stripUTF8BOM(headers)

	var rows []records.Record
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		rec = fitRowToWidth(rec, len(headers))
		row := make(records.Record, len(headers))
		for i, h := range headers {
			row[h] = rec[i]
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}

// fitRowToWidth truncates or pads a CSV record to exactly n fields.
func fitRowToWidth(row []string, n int) []string {
	if len(row) == n {
		return row
	}
	cp := make([]string, n)
	copy(cp, row)
	return cp
}

// stripUTF8BOM removes a UTF-8 BOM from the first header field if present.
func stripUTF8BOM(headers []string) []string {
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}
	return headers
}
