// Package batch orchestrates one import run over an in-memory row set:
// row filters first, then per-column cleaning chains, then duplicate
// resolution. Stage order is fixed and significant.
//
// The per-row stages are independent across rows, so they can fan out over
// contiguous shards; duplicate resolution needs shared grouping state and
// runs afterwards as a sequential reduction. The processor holds no state
// between runs and multiple imports may process fully in parallel.
package batch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"importpipe/internal/config"
	"importpipe/internal/dedup"
	"importpipe/internal/filter"
	"importpipe/internal/rules"
	"importpipe/pkg/records"
)

// columnPlan is the precompiled cleaning plan for one included column.
type columnPlan struct {
	source string
	target string
	chain  rules.Chain
}

// Processor runs the filter → clean → dedupe pipeline for one import
// configuration. Build it once per run with New; it is safe for concurrent
// use since Process never mutates it.
type Processor struct {
	plans   []columnPlan
	filters []config.Filter
	dedupe  config.Dedupe
	workers int
}

// Option tunes a Processor.
type Option func(*Processor)

// WithWorkers sets the shard fan-out for the per-row stages. Values below 2
// keep the run sequential.
func WithWorkers(n int) Option {
	return func(p *Processor) { p.workers = n }
}

// New compiles the rule chains of every included column, in declared order.
// Excluded columns are dropped entirely; their rules never compile or run.
func New(imp config.Import, opts ...Option) (*Processor, error) {
	p := &Processor{
		filters: imp.Filters,
		dedupe:  imp.Dedupe,
		workers: 1,
	}
	for _, c := range imp.Columns {
		if !c.Included {
			continue
		}
		chain, err := rules.CompileChain(c.Rules)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.SourceName, err)
		}
		p.plans = append(p.plans, columnPlan{
			source: c.SourceName,
			target: c.TargetName,
			chain:  chain,
		})
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// SkipReason explains why one input row was excluded, for preview and
// diagnostic display. Column is empty for filter rejections.
type SkipReason struct {
	Row    int    `json:"row"`
	Column string `json:"column,omitempty"`
	Reason string `json:"reason"`
}

// Result is the transient output of one run. The caller owns storing or
// forwarding it; the engine keeps nothing.
type Result struct {
	// CleanedRows holds the surviving rows, restricted to included columns
	// and keyed by target name, in original relative order.
	CleanedRows []records.Record

	// Skipped counts rows rejected by filters or rule chains. Duplicate
	// removal does not increment it; duplicates are a resolution decision,
	// not a data-quality rejection.
	Skipped int

	// DuplicatesRemoved counts rows dropped by duplicate resolution.
	DuplicatesRemoved int

	// SkipReasons lists one entry per skipped row, in row order.
	SkipReasons []SkipReason
}

// rowOutcome is the per-row result of the filter and clean stages.
type rowOutcome struct {
	cleaned records.Record // nil when skipped
	column  string
	reason  string
}

// Process runs the pipeline over rows. Filter mismatches and rule-chain
// skips count as skipped; duplicate removal in the final stage reduces the
// row count without touching the skip counter. The context cancels the
// per-row loops cooperatively.
func (p *Processor) Process(ctx context.Context, rows []records.Record) (Result, error) {
	outcomes := make([]rowOutcome, len(rows))

	if p.workers > 1 && len(rows) > 1 {
		if err := p.runSharded(ctx, rows, outcomes); err != nil {
			return Result{}, err
		}
	} else {
		for i, row := range rows {
			if i%1024 == 0 {
				select {
				case <-ctx.Done():
					return Result{}, ctx.Err()
				default:
				}
			}
			outcomes[i] = p.processRow(row)
		}
	}

	var res Result
	cleaned := make([]records.Record, 0, len(rows))
	for i, o := range outcomes {
		if o.cleaned == nil {
			res.Skipped++
			res.SkipReasons = append(res.SkipReasons, SkipReason{
				Row:    i,
				Column: o.column,
				Reason: o.reason,
			})
			continue
		}
		cleaned = append(cleaned, o.cleaned)
	}

	// Dedupe keys are target names at this stage; translate the configured
	// source-name keys through the column plans.
	res.CleanedRows, res.DuplicatesRemoved = dedup.Resolve(cleaned, p.targetKeys(), p.dedupe.Strategy)
	return res, nil
}

// processRow applies the filter set and every column chain to one row.
// One column's skip vetoes the whole row; other columns are not evaluated
// past the first skip.
func (p *Processor) processRow(row records.Record) rowOutcome {
	if !filter.ShouldInclude(row, p.filters) {
		return rowOutcome{reason: "Filtered out"}
	}

	out := make(records.Record, len(p.plans))
	for _, plan := range p.plans {
		res := plan.chain.Apply(row[plan.source])
		if res.Skip {
			return rowOutcome{column: plan.source, reason: res.Reason}
		}
		out[plan.target] = res.Value
	}
	return rowOutcome{cleaned: out}
}

// runSharded fans the per-row stages out over contiguous shards. Shard
// boundaries keep writes disjoint, so outcomes needs no locking and original
// order is preserved on reassembly.
func (p *Processor) runSharded(ctx context.Context, rows []records.Record, outcomes []rowOutcome) error {
	g, ctx := errgroup.WithContext(ctx)

	n := p.workers
	if n > len(rows) {
		n = len(rows)
	}
	shard := (len(rows) + n - 1) / n

	for start := 0; start < len(rows); start += shard {
		start := start
		end := start + shard
		if end > len(rows) {
			end = len(rows)
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				if i%1024 == 0 {
					select {
					case <-ctx.Done():
						return ctx.Err()
					default:
					}
				}
				outcomes[i] = p.processRow(rows[i])
			}
			return nil
		})
	}
	return g.Wait()
}

// targetKeys maps the configured dedupe key columns (source names) onto the
// target names the cleaned rows are keyed by. Keys for excluded or unknown
// columns stay as configured and simply read as missing.
func (p *Processor) targetKeys() []string {
	if len(p.dedupe.KeyColumns) == 0 {
		return nil
	}
	bySource := make(map[string]string, len(p.plans))
	for _, pl := range p.plans {
		bySource[pl.source] = pl.target
	}
	out := make([]string, len(p.dedupe.KeyColumns))
	for i, k := range p.dedupe.KeyColumns {
		if t, ok := bySource[k]; ok {
			out[i] = t
		} else {
			out[i] = k
		}
	}
	return out
}
