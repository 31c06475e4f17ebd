package dataset

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/quarrydata/quarry/internal/printer"
	"github.com/quarrydata/quarry/pkg/table"
)

// Summarizer computes a one-row descriptive table for a dataset. Each
// kind registers its own summary schema; the result must be
// deterministic for the same rows.
type Summarizer func(*Dataset) (*table.Table, error)

// SetSummarizer registers the summary schema for a kind.
func (r *Registry) SetSummarizer(kind string, s Summarizer) {
	r.summarizers[kind] = s
}

// Summarize runs the registered summarizer for the dataset's kind.
func (r *Registry) Summarize(d *Dataset) (*table.Table, error) {
	s, ok := r.summarizers[d.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: no summarizer for kind %q", ErrNotRegistered, d.Kind)
	}
	t, err := s(d)
	if err != nil {
		return nil, err
	}
	if t.Len() == 0 {
		return nil, fmt.Errorf("summarizer for kind %q returned no rows", d.Kind)
	}
	return t, nil
}

// SummaryPath derives the on-disk location of a dataset's cached
// summary as a pure function of its coordinates:
// <root>/<name>/<kind>_summary.json.
func SummaryPath(root, name, kind string) string {
	return filepath.Join(root, name, kind+"_summary.json")
}

// SummaryStore persists computed summaries between runs. The disk store
// under DataRoot is the default; a Redis-backed store exists for shared
// environments.
type SummaryStore interface {
	// Exists reports whether a summary artifact is present for
	// (name, kind). Its mere existence gates quick mode.
	Exists(ctx context.Context, name, kind string) (bool, error)
	// Load retrieves the stored summary table.
	Load(ctx context.Context, name, kind string) (*table.Table, error)
	// Save stores a computed summary table.
	Save(ctx context.Context, name, kind string, t *table.Table) error
}

// SummaryAll summarizes every dataset registered under kind.
//
// With quick=false each dataset is materialized through Get, its
// summarizer runs, and the result is persisted through store. With
// quick=true nothing is materialized: names whose summary artifact is
// missing from store are reported as failed instead of computed.
//
// The result holds one row per summarized dataset, a leading "name"
// column followed by the kind's summary columns, sorted by the first
// summary column. The failed names are returned alongside and also
// reported as a warning with guidance to rerun with quick=false.
func (r *Registry) SummaryAll(ctx context.Context, store SummaryStore, kind string, quick bool) (*table.Table, []string, error) {
	var (
		cols    []string
		rows    [][]any
		failed  []string
		sortCol string
	)
	for _, name := range r.List(kind) {
		var summary *table.Table
		if quick {
			ok, err := store.Exists(ctx, name, kind)
			if err != nil || !ok {
				failed = append(failed, name)
				continue
			}
			summary, err = store.Load(ctx, name, kind)
			if err != nil || summary.Len() == 0 {
				failed = append(failed, name)
				continue
			}
		} else {
			ds, err := r.Get(kind, name)
			if err != nil {
				return nil, nil, err
			}
			summary, err = r.Summarize(ds)
			if err != nil {
				return nil, nil, err
			}
			if err := store.Save(ctx, name, kind, summary); err != nil {
				return nil, nil, fmt.Errorf("saving summary for %q: %w", name, err)
			}
		}

		if cols == nil {
			sortCol = summary.Columns()[0]
			cols = append([]string{"name"}, summary.Columns()...)
		}
		row, err := summary.Row(0)
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, append([]any{name}, row...))
	}

	if len(failed) > 0 {
		printer.Warning("failed to load summaries for %d datasets; they may not be downloaded and processed yet. "+
			"Rerun with quick=false to compute them", len(failed))
	}

	if cols == nil {
		return table.MustNew([]string{"name"}, nil), failed, nil
	}
	out, err := table.New(cols, rows)
	if err != nil {
		return nil, nil, err
	}
	out, err = out.SortByColumn(sortCol)
	if err != nil {
		return nil, nil, err
	}
	return out, failed, nil
}
