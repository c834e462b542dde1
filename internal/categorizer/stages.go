package categorizer

import (
	"context"
	"fmt"
	"math"

	"fjacquet/ledger/internal/domainerror"
	"fjacquet/ledger/internal/models"
)

// KeywordStage classifies by keyword score among the active subcategories
// of the requested main category type.
type KeywordStage struct {
	subcategories SubcategoryRepository
	matcher       *KeywordMatcher
}

// NewKeywordStage creates a KeywordStage.
func NewKeywordStage(subcategories SubcategoryRepository, matcher *KeywordMatcher) *KeywordStage {
	return &KeywordStage{subcategories: subcategories, matcher: matcher}
}

// Name returns the name of this stage for logging and debugging.
func (s *KeywordStage) Name() string {
	return StageKeyword
}

// Classify floors the keyword score at the medium confidence band.
func (s *KeywordStage) Classify(ctx context.Context, req ClassifyRequest) (models.ClassificationResult, bool, error) {
	candidates, err := s.subcategories.FindByCategory(ctx, req.MainCategoryType)
	if err != nil {
		return models.ClassificationResult{}, false, fmt.Errorf("load subcategories for %s: %w", req.MainCategoryType, err)
	}

	match := s.matcher.Match(req.Description, req.MainCategoryType, candidates)
	if match == nil {
		return models.ClassificationResult{}, false, nil
	}

	confidence, err := models.NewClassificationConfidence(math.Max(match.Score, models.KeywordConfidenceFloor))
	if err != nil {
		return models.ClassificationResult{}, false, err
	}
	return models.ClassificationResult{
		SubcategoryID: match.Subcategory.ID,
		Confidence:    confidence,
		Reason:        models.ReasonKeywordMatch,
	}, true, nil
}

// AmountInferenceStage is the slot for classifying by amount patterns.
// It never matches yet.
type AmountInferenceStage struct{}

// Name returns the name of this stage for logging and debugging.
func (AmountInferenceStage) Name() string {
	return StageAmount
}

// Classify always reports no match.
func (AmountInferenceStage) Classify(_ context.Context, _ ClassifyRequest) (models.ClassificationResult, bool, error) {
	return models.ClassificationResult{}, false, nil
}

// RecurringPatternStage is the slot for classifying by the history of
// similar transactions around the same date. It never matches yet.
type RecurringPatternStage struct{}

// Name returns the name of this stage for logging and debugging.
func (RecurringPatternStage) Name() string {
	return StageRecurring
}

// Classify always reports no match.
func (RecurringPatternStage) Classify(_ context.Context, _ ClassifyRequest) (models.ClassificationResult, bool, error) {
	return models.ClassificationResult{}, false, nil
}

// DefaultStage falls back to the default subcategory of the main category
// type. A missing default is a configuration error, never a silent miss.
type DefaultStage struct {
	subcategories SubcategoryRepository
}

// NewDefaultStage creates a DefaultStage.
func NewDefaultStage(subcategories SubcategoryRepository) *DefaultStage {
	return &DefaultStage{subcategories: subcategories}
}

// Name returns the name of this stage for logging and debugging.
func (s *DefaultStage) Name() string {
	return StageDefault
}

// Classify returns the default subcategory at fixed confidence.
func (s *DefaultStage) Classify(ctx context.Context, req ClassifyRequest) (models.ClassificationResult, bool, error) {
	sub, err := s.subcategories.FindDefault(ctx, req.MainCategoryType)
	if err != nil {
		return models.ClassificationResult{}, false, fmt.Errorf("load default subcategory for %s: %w", req.MainCategoryType, err)
	}
	if sub == nil {
		return models.ClassificationResult{}, false, domainerror.NewMissingDefaultError(req.MainCategoryType.String())
	}
	return models.ClassificationResult{
		SubcategoryID: sub.ID,
		Confidence:    models.MustConfidence(models.DefaultConfidence),
		Reason:        models.ReasonDefault,
	}, true, nil
}
