// Package dedup resolves duplicate rows by a composite key built from
// configured key columns. It runs in-memory over one batch of cleaned rows,
// after filtering and cleaning, as a single sequential pass.
//
// A row's key is the concatenation of its key-column values joined with an
// unlikely separator. Missing values contribute an empty segment, so two
// rows missing all key columns collide on the same key — an explicit design
// tradeoff, not a bug.
package dedup

import (
	"strings"

	"importpipe/internal/config"
	"importpipe/pkg/records"
)

// keySep joins key segments; \x1f (unit separator) is unlikely in data.
const keySep = "\x1f"

// RowKey builds the composite identity key for a row over the key columns
// (by source name).
func RowKey(row records.Record, keyColumns []string) string {
	var b strings.Builder
	for i, k := range keyColumns {
		if i > 0 {
			b.WriteString(keySep)
		}
		b.WriteString(records.AsString(row[k]))
	}
	return b.String()
}

// Resolve applies the duplicate strategy over rows grouped by their
// composite key:
//
//   - keep_all (or no key columns): identity, no work done.
//   - keep_first / keep_last: each group contributes exactly its first/last
//     member by original position.
//   - skip_all: any group with more than one member contributes zero rows —
//     every instance is dropped, not just the extras.
//
// The second return value is the number of rows removed. Relative order
// among kept rows is preserved.
func Resolve(rows []records.Record, keyColumns []string, strategy string) ([]records.Record, int) {
	if strategy == "" || strategy == config.KeepAll || len(keyColumns) == 0 {
		return rows, 0
	}

	// Group original indices by key, preserving first-seen group order via
	// the index slices themselves.
	groups := make(map[string][]int, len(rows))
	for i, r := range rows {
		k := RowKey(r, keyColumns)
		groups[k] = append(groups[k], i)
	}

	keep := make([]bool, len(rows))
	for _, idxs := range groups {
		switch strategy {
		case config.SkipAll:
			if len(idxs) == 1 {
				keep[idxs[0]] = true
			}
		case config.KeepLast:
			keep[idxs[len(idxs)-1]] = true
		default: // keep_first
			keep[idxs[0]] = true
		}
	}

	out := make([]records.Record, 0, len(rows))
	for i, r := range rows {
		if keep[i] {
			out = append(out, r)
		}
	}
	return out, len(rows) - len(out)
}
