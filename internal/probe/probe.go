// Package probe turns a sampled row set into the artifacts shown at import
// setup time: per-column previews and a complete suggested import
// configuration the user then edits. Previews and suggestions are generated
// once and discarded after the user finalizes the config; nothing here is
// persisted by the engine.
package probe

import (
	"fmt"

	"importpipe/internal/config"
	"importpipe/internal/detect"
	"importpipe/pkg/records"
)

// DefaultSampleSize bounds how many rows feed type detection and previews.
const DefaultSampleSize = 100

// Options control sampling and naming.
type Options struct {
	// Name seeds the suggested import's name.
	Name string
	// SampleSize caps the rows examined; 0 means DefaultSampleSize.
	SampleSize int
}

// Result pairs the suggested configuration with the previews it was derived
// from, so callers can display both.
type Result struct {
	Import   config.Import          `json:"import"`
	Previews []detect.ColumnPreview `json:"previews"`
}

// Suggest builds column previews over a bounded sample and derives a
// complete starter Import: detected storage types, normalized target names
// (made unique), suggested rule chains, no filters, keep_all dedupe, and a
// manual schedule with retry defaults that pass validation. Existing user
// configuration is never consulted or mutated; this only suggests.
func Suggest(columns []string, rows []records.Record, opt Options) Result {
	sample := opt.SampleSize
	if sample <= 0 {
		sample = DefaultSampleSize
	}
	previews := detect.PreviewRows(columns, rows, sample)

	imp := config.Import{
		Name: detect.NormalizeFieldName(opt.Name),
		Dedupe: config.Dedupe{
			Strategy: config.KeepAll,
		},
		Schedule: config.Schedule{
			Frequency:         config.FreqManual,
			RetryOnFailure:    true,
			MaxRetries:        3,
			RetryDelayMinutes: 15,
		},
	}

	taken := map[string]struct{}{}
	for _, p := range previews {
		imp.Columns = append(imp.Columns, config.Column{
			SourceName:  p.Name,
			TargetName:  uniqueName(detect.NormalizeFieldName(p.Name), taken),
			StorageType: detect.StorageType(p.DetectedType),
			Included:    true,
			Rules:       detect.SuggestRules(p),
		})
	}

	return Result{Import: imp, Previews: previews}
}

// uniqueName reserves name in taken, suffixing _2, _3, … on collisions so
// suggested target names stay distinct.
func uniqueName(name string, taken map[string]struct{}) string {
	candidate := name
	for n := 2; ; n++ {
		if _, dup := taken[candidate]; !dup {
			taken[candidate] = struct{}{}
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d", name, n)
	}
}
