// Package categorizer classifies ledger transactions into subcategories.
// Classification runs a fixed pipeline of stages:
// 1. Known merchant named in the description
// 2. Keyword score among the subcategories of the main category type
// 3. Amount and recurring-pattern inference (reserved, never match yet)
// 4. The default subcategory of the main category type
package categorizer

import (
	"context"
	"fmt"
	"time"

	"fjacquet/ledger/internal/domainerror"
	"fjacquet/ledger/internal/logging"
	"fjacquet/ledger/internal/models"
)

// Classifier runs the classification pipeline. It holds no per-call state
// and is safe for concurrent use.
type Classifier struct {
	stages  []Stage
	workers int
	logger  logging.Logger
}

// Option customizes a Classifier.
type Option func(*Classifier)

// WithBatchWorkers bounds the number of concurrent classifications run by
// ClassifyBatch. Values below 1 are ignored.
func WithBatchWorkers(n int) Option {
	return func(c *Classifier) {
		if n > 0 {
			c.workers = n
		}
	}
}

// DefaultBatchWorkers is the ClassifyBatch concurrency when none is set.
const DefaultBatchWorkers = 8

// NewClassifier wires the standard pipeline over the given collaborators.
func NewClassifier(merchants MerchantRepository, subcategories SubcategoryRepository, keywords KeywordConfig, logger logging.Logger, opts ...Option) *Classifier {
	logger = logging.OrDefault(logger)
	stages := []Stage{
		NewMerchantMatcher(merchants, logger),
		NewKeywordStage(subcategories, NewKeywordMatcher(keywords, logger)),
		AmountInferenceStage{},
		RecurringPatternStage{},
		NewDefaultStage(subcategories),
	}
	return NewClassifierWithStages(stages, logger, opts...)
}

// NewClassifierWithStages builds a Classifier over an explicit stage list.
func NewClassifierWithStages(stages []Stage, logger logging.Logger, opts ...Option) *Classifier {
	c := &Classifier{
		stages:  append([]Stage(nil), stages...),
		workers: DefaultBatchWorkers,
		logger:  logging.OrDefault(logger),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Stages returns the stage names in execution order.
func (c *Classifier) Stages() []string {
	names := make([]string, len(c.stages))
	for i, s := range c.stages {
		names[i] = s.Name()
	}
	return names
}

// Classify returns the result of the first stage that recognizes req.
// Collaborator errors end the pipeline and are returned wrapped.
func (c *Classifier) Classify(ctx context.Context, req ClassifyRequest) (models.ClassificationResult, error) {
	result, _, err := c.classify(ctx, req)
	return result, err
}

// ClassifyWithTrace is Classify that also reports which stages ran.
func (c *Classifier) ClassifyWithTrace(ctx context.Context, req ClassifyRequest) (models.ClassificationResult, StageResults, error) {
	return c.classify(ctx, req)
}

func (c *Classifier) classify(ctx context.Context, req ClassifyRequest) (models.ClassificationResult, StageResults, error) {
	var trace StageResults

	if !req.MainCategoryType.IsValid() {
		return models.ClassificationResult{}, trace, &domainerror.ValidationError{
			Field: "main_category_type",
			Value: string(req.MainCategoryType),
			Err:   domainerror.ErrInvalidMainCategory,
		}
	}

	start := time.Now()
	for _, stage := range c.stages {
		if err := ctx.Err(); err != nil {
			return models.ClassificationResult{}, trace, err
		}

		result, found, err := stage.Classify(ctx, req)
		trace.add(stage.Name(), result, found, err)
		if err != nil {
			c.logger.WithError(err).WithFields(
				logging.Field{Key: logging.FieldStage, Value: stage.Name()},
				logging.Field{Key: logging.FieldMainCategory, Value: req.MainCategoryType},
			).Debug("Classification stage failed")
			return models.ClassificationResult{}, trace, err
		}
		if !found {
			continue
		}

		c.logger.WithFields(
			logging.Field{Key: logging.FieldDescription, Value: req.Description},
			logging.Field{Key: logging.FieldMainCategory, Value: req.MainCategoryType},
			logging.Field{Key: logging.FieldSubcategoryID, Value: result.SubcategoryID},
			logging.Field{Key: logging.FieldReason, Value: result.Reason},
			logging.Field{Key: logging.FieldConfidence, Value: result.Confidence.Value()},
			logging.Field{Key: logging.FieldStage, Value: trace.Summary()},
			logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()},
		).Debug("Transaction classified")
		return result, trace, nil
	}

	// only reachable with a custom stage list lacking a terminal stage
	return models.ClassificationResult{}, trace, fmt.Errorf("no stage classified %q: %w",
		req.Description, domainerror.NewMissingDefaultError(req.MainCategoryType.String()))
}
