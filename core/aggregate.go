package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/huangsam/cruxaudit/internal/contract"
	"github.com/huangsam/cruxaudit/schema"
	"golang.org/x/sync/errgroup"
)

// errNoHistoryRecord is recorded when the history call succeeds without a record.
var errNoHistoryRecord = errors.New("history record missing")

// formFactorFetch holds the settled calls for one form factor.
type formFactorFetch struct {
	snapshot   *schema.RawDeviceSnapshot
	history    *schema.RawDeviceHistory
	historyErr error
}

// FetchAnalysis fetches the snapshot and the history of both form factors for
// origin and builds its AnalysisResult. All four calls are started before any is
// awaited and the result is reconciled only once all of them settled.
//
// A failed or empty snapshot fails the whole fetch with an error naming the origin
// and form factor. A failed history is recorded in FetchOutcome.HistoryErrors and
// the form factor falls back to current-value trends.
func FetchAnalysis(ctx context.Context, src contract.MetricsSource, origin string) (*schema.FetchOutcome, error) {
	fetches := make([]formFactorFetch, len(schema.AllFormFactors))

	// No errgroup context: a failing snapshot must not cancel the sibling calls.
	var g errgroup.Group
	for i, ff := range schema.AllFormFactors {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("fetch snapshot for %s (%s): unexpected error: %v", origin, ff, r)
				}
			}()
			f, err := fetchFormFactor(ctx, src, origin, ff)
			fetches[i] = f
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	outcome := &schema.FetchOutcome{
		Result:        schema.AnalysisResult{Domain: origin},
		Snapshots:     make(map[schema.FormFactor]*schema.RawDeviceSnapshot, len(fetches)),
		Histories:     make(map[schema.FormFactor]*schema.RawDeviceHistory, len(fetches)),
		HistoryErrors: make(map[schema.FormFactor]error),
	}
	for i, ff := range schema.AllFormFactors {
		f := fetches[i]
		outcome.Snapshots[ff] = f.snapshot
		outcome.Histories[ff] = f.history
		if f.historyErr != nil {
			outcome.HistoryErrors[ff] = f.historyErr
		}

		analysis := ExtractFormFactor(f.snapshot, f.history)
		switch ff {
		case schema.Phone:
			outcome.Result.Phone = analysis
		case schema.Desktop:
			outcome.Result.Desktop = analysis
		}
	}
	return outcome, nil
}

// fetchFormFactor runs the snapshot and history calls for one form factor concurrently.
func fetchFormFactor(ctx context.Context, src contract.MetricsSource, origin string, ff schema.FormFactor) (formFactorFetch, error) {
	var f formFactorFetch

	var wg sync.WaitGroup
	wg.Go(func() {
		defer func() {
			if r := recover(); r != nil {
				f.history, f.historyErr = nil, fmt.Errorf("unexpected error: %v", r)
			}
		}()
		f.history, f.historyErr = src.GetHistory(ctx, origin, ff)
	})
	snap, err := src.GetSnapshot(ctx, origin, ff)
	wg.Wait()

	switch {
	case f.historyErr != nil:
		f.history = nil
	case f.history == nil:
		f.historyErr = errNoHistoryRecord
	}

	if err != nil {
		return f, fmt.Errorf("fetch snapshot for %s (%s): %w", origin, ff, err)
	}
	if !snap.HasTrackedMetrics() {
		return f, fmt.Errorf("%w for %s (%s)", ErrNoMetrics, origin, ff)
	}
	f.snapshot = snap
	return f, nil
}
