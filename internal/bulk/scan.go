// Package bulk classifies a batch of inputs and condenses the results into
// summary rows.
package bulk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/GAJENDER439/Low-Quality-Tester/internal/classify"
	"github.com/GAJENDER439/Low-Quality-Tester/internal/types"
)

const (
	// MaxItems is the largest number of inputs classified per batch
	MaxItems = 200
	// DefaultWorkers is the number of inputs classified concurrently
	DefaultWorkers = 8
	// noteTrusted is the row note for allowlisted results
	noteTrusted = "trusted"
)

// ParseLines splits text into trimmed, non-blank lines, keeping at most MaxItems
func ParseLines(text string) []string {
	items, _ := Prepare(strings.Split(text, "\n"), MaxItems)
	return items
}

// Prepare trims inputs, drops blanks and truncates the list to limit entries,
// reporting whether anything was cut. A non-positive limit means MaxItems.
func Prepare(inputs []string, limit int) ([]string, bool) {
	if limit <= 0 || limit > MaxItems {
		limit = MaxItems
	}

	items := lo.FilterMap(inputs, func(s string, _ int) (string, bool) {
		s = strings.TrimSpace(s)
		return s, s != ""
	})

	if len(items) > limit {
		return items[:limit], true
	}

	return items, false
}

// Options configures a batch scan
type Options struct {
	workers  int
	progress func(done, total int)
}

// Option is a functional option for configuring a batch scan
type Option func(*Options)

// WithWorkers sets the number of inputs classified concurrently
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithProgress registers a callback invoked after each input completes
func WithProgress(fn func(done, total int)) Option {
	return func(o *Options) {
		o.progress = fn
	}
}

// Scan classifies every input with a bounded worker pool. The returned slice
// has one result per input in input order, regardless of completion order.
// Inputs are not trimmed or truncated here; use ParseLines or Prepare first.
func Scan(ctx context.Context, analyzer classify.Analyzer, inputs []string, opts ...Option) []*types.Result {
	o := &Options{workers: DefaultWorkers}
	for _, opt := range opts {
		opt(o)
	}

	results := make([]*types.Result, len(inputs))

	var done atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)

	for i, input := range inputs {
		g.Go(func() error {
			results[i] = analyzer.Analyze(gctx, input)

			n := int(done.Add(1))
			if o.progress != nil {
				o.progress(n, len(inputs))
			}

			return nil
		})
	}

	_ = g.Wait()

	log.Info().Int("items", len(inputs)).Int("workers", o.workers).Msg("bulk scan complete")

	return results
}

// Summarize condenses results into rows, preserving order
func Summarize(results []*types.Result) []types.Row {
	return lo.Map(results, func(r *types.Result, _ int) types.Row {
		return RowFor(r)
	})
}

// RowFor condenses a single result into a summary row
func RowFor(r *types.Result) types.Row {
	if !r.OK() {
		row := types.Row{Label: types.LabelError}
		if r != nil {
			row.Input = r.Input
			row.FinalRootDomain = r.BaseDomain
			row.Note = r.Error
		}

		return row
	}

	row := types.Row{
		Input:           r.Input,
		Label:           r.Label,
		Score:           r.Score,
		FinalURL:        r.FinalURL,
		FinalRootDomain: r.FinalBaseDomain,
	}

	if r.ForcedGood {
		row.Note = noteTrusted
	}

	return row
}

// Counts tallies rows by label
func Counts(rows []types.Row) map[types.Label]int {
	return lo.CountValuesBy(rows, func(r types.Row) types.Label {
		return r.Label
	})
}

// Export writes the full result list as indented JSON
func Export(w io.Writer, results []*types.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if results == nil {
		results = []*types.Result{}
	}

	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	return nil
}
