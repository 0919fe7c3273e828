package analyzer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/mailsafe/internal/model"
)

// DefaultConcurrency is the number of payloads analyzed at once by AnalyzeBatch.
const DefaultConcurrency = 4

// BatchItem is the outcome for one payload of a batch.
type BatchItem struct {
	// Name identifies the payload to the caller, e.g. a file name.
	Name string

	Result *model.AnalysisResult
	Err    error
}

// NamedPayload pairs a payload with a caller-chosen name.
type NamedPayload struct {
	Name    string
	Payload *model.Payload
}

// AnalyzeBatch analyzes payloads with at most concurrency analyses in flight.
// Items are returned in input order. A failed analysis is recorded in its
// item and does not stop the others; the returned error is non-nil only when
// ctx is cancelled.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, payloads []NamedPayload, opts model.Options, concurrency int) ([]BatchItem, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	a.logger.Info("starting batch analysis",
		"total", len(payloads),
		"concurrency", concurrency,
	)
	start := time.Now()

	items := make([]BatchItem, len(payloads))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, np := range payloads {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			result, err := a.Analyze(ctx, np.Payload, opts)
			if err != nil {
				a.logger.Warn("analysis failed",
					"name", np.Name,
					"error", err,
				)
			}

			mu.Lock()
			items[i] = BatchItem{Name: np.Name, Result: result, Err: err}
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()

	a.logger.Info("batch analysis complete",
		"total", len(payloads),
		"elapsed", time.Since(start),
	)

	if err != nil {
		for i := range items {
			if items[i].Result == nil && items[i].Err == nil {
				items[i] = BatchItem{Name: payloads[i].Name, Err: fmt.Errorf("not analyzed: %w", err)}
			}
		}
		return items, err
	}
	return items, nil
}

// Failed returns the joined errors of all failed items, or nil.
func Failed(items []BatchItem) error {
	var errs []error
	for _, item := range items {
		if item.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", item.Name, item.Err))
		}
	}
	return errors.Join(errs...)
}
