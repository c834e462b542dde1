package categorizer

import (
	"context"
	"errors"
	"testing"
	"time"

	"fjacquet/ledger/internal/domainerror"
	"fjacquet/ledger/internal/logging"
	"fjacquet/ledger/internal/models"
	"fjacquet/ledger/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClassifier(t *testing.T, merchants MerchantRepository, subs SubcategoryRepository) (*Classifier, *logging.MockLogger) {
	t.Helper()
	logger := logging.NewMockLogger()
	return NewClassifier(merchants, subs, DefaultKeywordConfig(), logger), logger
}

func TestClassifier_Stages(t *testing.T) {
	c, _ := newTestClassifier(t, &store.MockMerchantStore{}, &store.MockSubcategoryStore{})
	assert.Equal(t, []string{StageMerchant, StageKeyword, StageAmount, StageRecurring, StageDefault}, c.Stages())
}

func TestClassifier_MerchantMatch(t *testing.T) {
	subs := &store.MockSubcategoryStore{Subcategories: householdSubcategories()}
	c, _ := newTestClassifier(t, householdMerchants(t), subs)

	for _, mainType := range models.AllMainCategoryTypes() {
		t.Run(string(mainType), func(t *testing.T) {
			result, err := c.Classify(context.Background(), ClassifyRequest{
				Description:      "スターバックス 表参道店",
				Amount:           models.NewMoney(decimal.NewFromInt(-580), "JPY"),
				MainCategoryType: mainType,
			})
			require.NoError(t, err)
			assert.Equal(t, "food_cafe", result.SubcategoryID)
			assert.Equal(t, 0.98, result.Confidence.Value())
			assert.Equal(t, models.ReasonMerchantMatch, result.Reason)
			require.NotNil(t, result.MerchantID)
			assert.Equal(t, "m-starbucks", *result.MerchantID)
		})
	}

	byCategory, byDefault := subs.Calls()
	assert.Zero(t, byCategory, "merchant match must not read subcategories")
	assert.Zero(t, byDefault)
}

func TestClassifier_MerchantBeatsKeyword(t *testing.T) {
	subs := &store.MockSubcategoryStore{Subcategories: householdSubcategories()}
	c, _ := newTestClassifier(t, householdMerchants(t), subs)

	// "定期券" is a transport keyword but the merchant is checked first
	result, err := c.Classify(context.Background(), ClassifyRequest{
		Description:      "スタバ 定期券入れ",
		MainCategoryType: models.MainCategoryExpense,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReasonMerchantMatch, result.Reason)
	assert.Equal(t, "food_cafe", result.SubcategoryID)

	byCategory, byDefault := subs.Calls()
	assert.Zero(t, byCategory)
	assert.Zero(t, byDefault)
}

func TestClassifier_KeywordMatch(t *testing.T) {
	subs := &store.MockSubcategoryStore{Subcategories: householdSubcategories()}
	c, _ := newTestClassifier(t, householdMerchants(t), subs)

	result, err := c.Classify(context.Background(), ClassifyRequest{
		Description:      "新宿駅 定期券購入",
		MainCategoryType: models.MainCategoryExpense,
	})
	require.NoError(t, err)
	assert.Equal(t, "transport_train_bus", result.SubcategoryID)
	assert.Equal(t, models.KeywordConfidenceFloor, result.Confidence.Value())
	assert.Equal(t, models.ReasonKeywordMatch, result.Reason)
	assert.Nil(t, result.MerchantID)

	_, byDefault := subs.Calls()
	assert.Zero(t, byDefault, "keyword match must not fall back")
}

func TestClassifier_KeywordConfidence(t *testing.T) {
	keywords := []string{"k01", "k02", "k03", "k04", "k05", "k06", "k07", "k08", "k09", "k10"}
	config := NewKeywordConfig(map[models.MainCategoryType]map[string][]string{
		models.MainCategoryExpense: {"food_grocery": keywords},
	})
	subs := &store.MockSubcategoryStore{Subcategories: householdSubcategories()}
	c := NewClassifier(&store.MockMerchantStore{}, subs, config, nil)

	tests := []struct {
		name        string
		description string
		want        float64
	}{
		{"weak score is floored", "k01 k02 k03", 0.70},
		{"score at floor", "k01 k02 k03 k04 k05 k06 k07", 0.70},
		{"strong score kept", "k01 k02 k03 k04 k05 k06 k07 k08 k09", 0.90},
		{"full score", "k01 k02 k03 k04 k05 k06 k07 k08 k09 k10", 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := c.Classify(context.Background(), ClassifyRequest{
				Description:      tt.description,
				MainCategoryType: models.MainCategoryExpense,
			})
			require.NoError(t, err)
			assert.Equal(t, models.ReasonKeywordMatch, result.Reason)
			assert.InDelta(t, tt.want, result.Confidence.Value(), 1e-9)
		})
	}
}

func TestClassifier_DefaultFallback(t *testing.T) {
	subs := &store.MockSubcategoryStore{Subcategories: householdSubcategories()}
	c, _ := newTestClassifier(t, householdMerchants(t), subs)
	date := time.Date(2024, 10, 25, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		mainType models.MainCategoryType
		wantID   string
	}{
		{"expense", models.MainCategoryExpense, "expense_other"},
		{"income", models.MainCategoryIncome, "income_other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := c.Classify(context.Background(), ClassifyRequest{
				Description:      "よくわからない支払い",
				Amount:           models.NewMoney(decimal.NewFromInt(1000), "JPY"),
				MainCategoryType: tt.mainType,
				TransactionDate:  &date,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, result.SubcategoryID)
			assert.Equal(t, 0.50, result.Confidence.Value())
			assert.Equal(t, models.ReasonDefault, result.Reason)
			assert.Nil(t, result.MerchantID)
		})
	}
}

func TestClassifier_MissingDefaultIsConfigurationError(t *testing.T) {
	subs := &store.MockSubcategoryStore{Subcategories: householdSubcategories()}
	c, _ := newTestClassifier(t, householdMerchants(t), subs)

	_, err := c.Classify(context.Background(), ClassifyRequest{
		Description:      "株式購入",
		MainCategoryType: models.MainCategoryRepayment,
	})
	require.Error(t, err)
	assert.True(t, domainerror.IsConfigurationError(err))
	assert.ErrorIs(t, err, domainerror.ErrNoDefaultSubcategory)
	assert.Contains(t, err.Error(), "repayment")
}

func TestClassifier_InvalidMainType(t *testing.T) {
	merchants := householdMerchants(t)
	c, _ := newTestClassifier(t, merchants, &store.MockSubcategoryStore{})

	_, err := c.Classify(context.Background(), ClassifyRequest{
		Description:      "スターバックス",
		MainCategoryType: models.MainCategoryType("gift"),
	})
	assert.True(t, domainerror.IsValidationError(err))
	assert.ErrorIs(t, err, domainerror.ErrInvalidMainCategory)
	assert.Zero(t, merchants.Calls())
}

func TestClassifier_CollaboratorErrorsPropagate(t *testing.T) {
	repoErr := errors.New("database is locked")

	t.Run("merchant repository", func(t *testing.T) {
		subs := &store.MockSubcategoryStore{Subcategories: householdSubcategories()}
		c, _ := newTestClassifier(t, &store.MockMerchantStore{FindAllError: repoErr}, subs)

		_, err := c.Classify(context.Background(), ClassifyRequest{Description: "x", MainCategoryType: models.MainCategoryExpense})
		assert.ErrorIs(t, err, repoErr)
		byCategory, byDefault := subs.Calls()
		assert.Zero(t, byCategory)
		assert.Zero(t, byDefault)
	})

	t.Run("subcategory lookup", func(t *testing.T) {
		subs := &store.MockSubcategoryStore{Subcategories: householdSubcategories(), FindByCategoryError: repoErr}
		c, _ := newTestClassifier(t, householdMerchants(t), subs)

		_, err := c.Classify(context.Background(), ClassifyRequest{Description: "x", MainCategoryType: models.MainCategoryExpense})
		assert.ErrorIs(t, err, repoErr)
		_, byDefault := subs.Calls()
		assert.Zero(t, byDefault)
	})

	t.Run("default lookup", func(t *testing.T) {
		subs := &store.MockSubcategoryStore{Subcategories: householdSubcategories(), FindDefaultError: repoErr}
		c, _ := newTestClassifier(t, householdMerchants(t), subs)

		_, err := c.Classify(context.Background(), ClassifyRequest{Description: "x", MainCategoryType: models.MainCategoryExpense})
		assert.ErrorIs(t, err, repoErr)
		assert.False(t, domainerror.IsConfigurationError(err))
	})
}

func TestClassifier_CancelledContext(t *testing.T) {
	c, _ := newTestClassifier(t, householdMerchants(t), &store.MockSubcategoryStore{Subcategories: householdSubcategories()})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Classify(ctx, ClassifyRequest{Description: "x", MainCategoryType: models.MainCategoryExpense})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClassifier_Trace(t *testing.T) {
	c, logger := newTestClassifier(t, householdMerchants(t), &store.MockSubcategoryStore{Subcategories: householdSubcategories()})

	result, trace, err := c.ClassifyWithTrace(context.Background(), ClassifyRequest{
		Description:      "よくわからない支払い",
		MainCategoryType: models.MainCategoryExpense,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReasonDefault, result.Reason)
	assert.Equal(t, "MerchantMatch:no_match, KeywordMatch:no_match, AmountInference:no_match, RecurringPattern:no_match, Default:success", trace.Summary())

	winner, ok := trace.Winner()
	require.True(t, ok)
	assert.Equal(t, StageDefault, winner.Stage)
	assert.Empty(t, trace.GetErrors())

	reason, ok := logger.FieldValue("Transaction classified", logging.FieldReason)
	require.True(t, ok)
	assert.Equal(t, models.ReasonDefault, reason)
}

type stubStage struct {
	name   string
	result models.ClassificationResult
	found  bool
	calls  int
}

func (s *stubStage) Name() string { return s.name }

func (s *stubStage) Classify(_ context.Context, _ ClassifyRequest) (models.ClassificationResult, bool, error) {
	s.calls++
	return s.result, s.found, nil
}

func TestClassifier_CustomStagesShortCircuit(t *testing.T) {
	first := &stubStage{name: "first", found: true, result: models.NewManualResult("housing_rent")}
	second := &stubStage{name: "second", found: true}
	c := NewClassifierWithStages([]Stage{first, second}, nil)

	result, err := c.Classify(context.Background(), ClassifyRequest{MainCategoryType: models.MainCategoryExpense})
	require.NoError(t, err)
	assert.Equal(t, "housing_rent", result.SubcategoryID)
	assert.Equal(t, 1, first.calls)
	assert.Zero(t, second.calls)
}

func TestClassifier_NoTerminalStage(t *testing.T) {
	c := NewClassifierWithStages([]Stage{AmountInferenceStage{}, RecurringPatternStage{}}, nil)

	_, err := c.Classify(context.Background(), ClassifyRequest{MainCategoryType: models.MainCategoryTransfer})
	assert.ErrorIs(t, err, domainerror.ErrNoDefaultSubcategory)
}
