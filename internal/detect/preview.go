package detect

import (
	"strings"

	"github.com/zeebo/xxh3"

	"importpipe/pkg/records"
)

// MaxSampleValues caps how many example values a preview carries.
const MaxSampleValues = 5

// ColumnPreview summarizes one column of a sampled row set. It is purely
// descriptive: built once before the user configures rules, then discarded.
type ColumnPreview struct {
	Name         string   `json:"name"`
	DetectedType Type     `json:"detected_type"`
	Confidence   float64  `json:"confidence"`
	SampleValues []string `json:"sample_values"`
	NullCount    int      `json:"null_count"`
	UniqueCount  int      `json:"unique_count"`
}

// Preview builds a ColumnPreview for one named column over its sampled
// values. Unique counting hashes the string form of each non-null value, so
// memory stays flat regardless of value width.
func Preview(name string, values []any) ColumnPreview {
	p := ColumnPreview{Name: name}

	seen := make(map[uint64]struct{}, len(values))
	for _, v := range values {
		if records.IsEmpty(v) {
			p.NullCount++
			continue
		}
		s := records.AsString(v)
		h := xxh3.HashString(s)
		if _, dup := seen[h]; !dup {
			seen[h] = struct{}{}
			p.UniqueCount++
		}
		if len(p.SampleValues) < MaxSampleValues {
			p.SampleValues = append(p.SampleValues, s)
		}
	}

	p.DetectedType, p.Confidence = ColumnType(values)
	return p
}

// PreviewRows builds previews for every column over a bounded sample of
// rows. Columns fixes both the set and the order of previews; rows missing a
// column contribute a null.
func PreviewRows(columns []string, rows []records.Record, sampleSize int) []ColumnPreview {
	if sampleSize <= 0 || sampleSize > len(rows) {
		sampleSize = len(rows)
	}
	sample := rows[:sampleSize]

	out := make([]ColumnPreview, 0, len(columns))
	for _, col := range columns {
		values := make([]any, 0, len(sample))
		for _, r := range sample {
			values = append(values, r[col])
		}
		out = append(out, Preview(col, values))
	}
	return out
}

// hasMessyWhitespace reports whether s carries leading/trailing whitespace
// or internal runs of more than one space.
func hasMessyWhitespace(s string) bool {
	if s != strings.TrimSpace(s) {
		return true
	}
	return strings.Contains(s, "  ") || strings.ContainsAny(s, "\t\n\r")
}
