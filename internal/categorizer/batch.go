package categorizer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"fjacquet/ledger/internal/logging"
	"fjacquet/ledger/internal/models"
)

// sequentialThreshold is the batch size below which goroutines cost more
// than they save.
const sequentialThreshold = 16

// BatchOutcome is the classification of one request of a batch.
type BatchOutcome struct {
	Index   int
	Request ClassifyRequest
	Result  models.ClassificationResult
	Err     error
}

// ClassifyBatch classifies every request independently and returns the
// outcomes in input order. A failing request does not stop the others; only
// context cancellation is returned as the batch error, and then no outcomes
// are returned at all, whichever worker path ran.
func (c *Classifier) ClassifyBatch(ctx context.Context, reqs []ClassifyRequest) ([]BatchOutcome, error) {
	outcomes := make([]BatchOutcome, len(reqs))
	if len(reqs) == 0 {
		return outcomes, nil
	}

	if len(reqs) < sequentialThreshold || c.workers == 1 {
		for i := range reqs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			outcomes[i] = c.classifyOne(ctx, i, reqs[i])
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c.logBatch(outcomes, 1)
		return outcomes, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i := range reqs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = c.classifyOne(gctx, i, reqs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.logBatch(outcomes, c.workers)
	return outcomes, nil
}

func (c *Classifier) classifyOne(ctx context.Context, index int, req ClassifyRequest) BatchOutcome {
	result, err := c.Classify(ctx, req)
	return BatchOutcome{Index: index, Request: req, Result: result, Err: err}
}

func (c *Classifier) logBatch(outcomes []BatchOutcome, workers int) {
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	c.logger.Debug("Batch classification completed",
		logging.Field{Key: logging.FieldCount, Value: len(outcomes)},
		logging.Field{Key: "failed", Value: failed},
		logging.Field{Key: "workers", Value: workers})
}
