package categorizer

import (
	"context"
	"time"

	"fjacquet/ledger/internal/models"
)

// ClassifyRequest is one transaction to classify.
type ClassifyRequest struct {
	Description      string
	Amount           models.Money
	MainCategoryType models.MainCategoryType
	// TransactionDate is optional and only read by the recurring-pattern stage.
	TransactionDate *time.Time
}

// Stage is one step of the classification pipeline. Stages run in a fixed
// order and the first one that reports found ends the pipeline.
type Stage interface {
	// Classify returns the result and true when the stage recognizes the
	// transaction. The result is only meaningful when found is true.
	Classify(ctx context.Context, req ClassifyRequest) (result models.ClassificationResult, found bool, err error)

	// Name identifies the stage in logs and traces.
	Name() string
}

// Stage names.
const (
	StageMerchant  = "MerchantMatch"
	StageKeyword   = "KeywordMatch"
	StageAmount    = "AmountInference"
	StageRecurring = "RecurringPattern"
	StageDefault   = "Default"
)
