package categorizer

import (
	"context"
	"fmt"

	"fjacquet/ledger/internal/logging"
	"fjacquet/ledger/internal/models"
	"fjacquet/ledger/internal/textutils"
)

// MerchantMatcher finds the known merchant named in a transaction description.
type MerchantMatcher struct {
	merchants MerchantRepository
	logger    logging.Logger
}

// NewMerchantMatcher creates a MerchantMatcher backed by repo.
func NewMerchantMatcher(repo MerchantRepository, logger logging.Logger) *MerchantMatcher {
	return &MerchantMatcher{
		merchants: repo,
		logger:    logging.OrDefault(logger),
	}
}

// Name returns the name of this stage for logging and debugging.
func (m *MerchantMatcher) Name() string {
	return StageMerchant
}

// Match returns the first merchant, in repository order, whose name or one
// of whose aliases appears in description. It returns nil when none does.
// Names are not re-checked here; models.NewMerchant and the loaders reject
// a name with no matchable text.
func (m *MerchantMatcher) Match(ctx context.Context, description string) (*models.Merchant, error) {
	merchants, err := m.merchants.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load merchants: %w", err)
	}

	for i := range merchants {
		for _, name := range merchants[i].Names() {
			if textutils.Includes(description, name) {
				m.logger.WithFields(
					logging.Field{Key: logging.FieldStage, Value: m.Name()},
					logging.Field{Key: logging.FieldDescription, Value: description},
					logging.Field{Key: logging.FieldMerchantID, Value: merchants[i].ID},
					logging.Field{Key: logging.FieldKeyword, Value: name},
				).Debug("Description matched known merchant")
				merchant := merchants[i]
				return &merchant, nil
			}
		}
	}
	return nil, nil
}

// Classify maps a merchant hit to its default subcategory, passing the
// merchant confidence through unchanged.
func (m *MerchantMatcher) Classify(ctx context.Context, req ClassifyRequest) (models.ClassificationResult, bool, error) {
	merchant, err := m.Match(ctx, req.Description)
	if err != nil || merchant == nil {
		return models.ClassificationResult{}, false, err
	}
	merchantID := merchant.ID
	return models.ClassificationResult{
		SubcategoryID: merchant.DefaultSubcategoryID,
		Confidence:    merchant.Confidence,
		Reason:        models.ReasonMerchantMatch,
		MerchantID:    &merchantID,
	}, true, nil
}
