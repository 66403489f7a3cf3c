package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	primio "github.com/matzehuels/primgeom/pkg/io"
	"github.com/matzehuels/primgeom/pkg/observability"
	"github.com/matzehuels/primgeom/pkg/tech"
)

// Batch executes reqs concurrently, at most opts.Workers at a time. Results
// keep the order of reqs.
//
// Without FailFast every request runs and failures are recorded in
// Result.Err; the returned error is only set when ctx is canceled. With
// FailFast the first failure cancels the remaining requests and is returned.
func (r *Runner) Batch(ctx context.Context, reqs []Request, opts Options) (*BatchResult, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	id := uuid.NewString()
	logger := opts.Logger.With("batch", id[:8])
	opts.Logger = logger

	start := time.Now()
	observability.Pipeline().OnBatchStart(ctx, id, len(reqs))
	logger.Info("starting batch", "requests", len(reqs), "workers", opts.Workers)

	out := &BatchResult{ID: id, Results: make([]Result, len(reqs))}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				out.Results[i] = Result{Request: req, Err: err}
				return err
			}
			res, err := r.Execute(gctx, req, opts)
			if err != nil {
				out.Results[i] = Result{Request: req, Err: err}
				if opts.FailFast {
					return err
				}
				logger.Warn("request failed", "request", req.label(), "err", err)
				return nil
			}
			out.Results[i] = *res
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	for _, res := range out.Results {
		if res.Err != nil {
			out.Failed++
		}
	}
	out.Duration = time.Since(start)
	observability.Pipeline().OnBatchComplete(ctx, id, len(reqs), out.Duration, err)
	logger.Info("batch complete",
		"requests", len(reqs),
		"failed", out.Failed,
		"duration", out.Duration)

	return out, err
}

// Document converts the batch into its export form.
func (b *BatchResult) Document(tc *tech.Technology, fingerprint string) primio.Document {
	doc := primio.Document{
		Technology:  tc.Name,
		Fingerprint: fingerprint,
		Entries:     make([]primio.Entry, len(b.Results)),
	}
	for i, res := range b.Results {
		doc.Entries[i] = res.Entry()
	}
	return doc
}
