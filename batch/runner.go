// Package batch drives the sequential lookup pipeline over an identifier
// list: validate, fetch, normalize, accumulate.
package batch

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/norppasoft/ytjbatch/businessid"
	"github.com/norppasoft/ytjbatch/normalize"
	"github.com/norppasoft/ytjbatch/registry"
)

// Fetcher is the registry lookup the runner depends on.
type Fetcher interface {
	Lookup(ctx context.Context, businessID string) (*registry.Company, error)
}

// Failure records one identifier that could not be resolved and why.
type Failure struct {
	BusinessID string
	Err        error
}

// Result is the outcome of one batch run. Records holds only successfully
// resolved identifiers, in input order.
type Result struct {
	RunID    string
	Records  []normalize.Record
	Failures []Failure
}

// Runner processes identifiers strictly one at a time. There is no
// parallelism: the registry rate-limits aggressively and concurrent fetches
// would only trip it faster.
type Runner struct {
	fetcher  Fetcher
	logger   *slog.Logger
	onRecord func(normalize.Record)
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRecordHandler registers fn to be called with each record as soon as
// its lookup resolves, before the next identifier is fetched.
func WithRecordHandler(fn func(normalize.Record)) RunnerOption {
	return func(r *Runner) {
		r.onRecord = fn
	}
}

// NewRunner creates a batch runner.
func NewRunner(fetcher Fetcher, logger *slog.Logger, opts ...RunnerOption) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Runner{fetcher: fetcher, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run resolves ids in order. Per-identifier failures are logged as warnings
// and collected in the result; they never stop the batch. Run only returns
// an error when ctx is cancelled mid-batch.
func (r *Runner) Run(ctx context.Context, ids []string) (*Result, error) {
	result := &Result{RunID: uuid.New().String()}
	logger := r.logger.With("run_id", result.RunID)

	for i, id := range ids {
		logger.Info("Processing identifier",
			"business_id", id,
			"position", i+1,
			"total", len(ids))

		if err := businessid.Validate(id); err != nil {
			logger.Warn("Skipping malformed identifier", "business_id", id, "error", err)
			result.Failures = append(result.Failures, Failure{BusinessID: id, Err: err})
			continue
		}

		company, err := r.fetcher.Lookup(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			logger.Warn("Lookup failed", "business_id", id, "error", err)
			result.Failures = append(result.Failures, Failure{BusinessID: id, Err: err})
			continue
		}

		record := normalize.Normalize(company)
		result.Records = append(result.Records, record)
		if r.onRecord != nil {
			r.onRecord(record)
		}
	}

	logger.Info("Batch complete",
		"succeeded", len(result.Records),
		"failed", len(result.Failures))

	return result, nil
}
