package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"fjacquet/ledger/internal/domainerror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMainCategoryType(t *testing.T) {
	for _, want := range AllMainCategoryTypes() {
		got, err := ParseMainCategoryType("  " + string(want) + " ")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	got, err := ParseMainCategoryType("EXPENSE")
	require.NoError(t, err)
	assert.Equal(t, MainCategoryExpense, got)

	_, err = ParseMainCategoryType("gift")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerror.ErrInvalidMainCategory))
}

func TestNewMerchant(t *testing.T) {
	m, err := NewMerchant("m1", "スターバックス", []string{"STARBUCKS", "スタバ"}, "food_cafe", 0.98)
	require.NoError(t, err)
	assert.Equal(t, 0.98, m.Confidence.Value())
	assert.Equal(t, []string{"スターバックス", "STARBUCKS", "スタバ"}, m.Names())

	_, err = NewMerchant("m2", "Bad", nil, "x", 1.01)
	assert.True(t, errors.Is(err, domainerror.ErrConfidenceOutOfRange))

	_, err = NewMerchant("m3", "Bad", nil, "x", -0.01)
	assert.Error(t, err)
}

func TestNewMerchant_RejectsNamesWithoutMatchableText(t *testing.T) {
	tests := []struct {
		name      string
		mName     string
		aliases   []string
		wantField string
	}{
		{name: "empty name", mName: "", wantField: "merchant.name"},
		{name: "symbol only name", mName: "!!!", wantField: "merchant.name"},
		{name: "blank alias", mName: "スタバ", aliases: []string{"STARBUCKS", "  "}, wantField: "merchant.alias"},
		{name: "symbol only alias", mName: "スタバ", aliases: []string{"$$"}, wantField: "merchant.alias"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMerchant("m-x", tt.mName, tt.aliases, "food_cafe", 0.9)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerror.ErrEmptyMerchantName))
			var valErr *domainerror.ValidationError
			require.True(t, errors.As(err, &valErr))
			assert.Equal(t, tt.wantField, valErr.Field)
		})
	}
}

func TestClassificationResult_IsReliable(t *testing.T) {
	assert.True(t, ClassificationResult{Confidence: MustConfidence(0.95)}.IsReliable())
	assert.True(t, ClassificationResult{Confidence: MustConfidence(0.70)}.IsReliable())
	assert.False(t, ClassificationResult{Confidence: MustConfidence(0.69)}.IsReliable())
}

func TestClassificationResult_JSON(t *testing.T) {
	merchantID := "m1"
	data, err := json.Marshal(ClassificationResult{
		SubcategoryID: "food_cafe",
		Confidence:    MustConfidence(0.98),
		Reason:        ReasonMerchantMatch,
		MerchantID:    &merchantID,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"subcategoryId":"food_cafe","confidence":0.98,"reason":"MERCHANT_MATCH","merchantId":"m1"}`, string(data))

	data, err = json.Marshal(ClassificationResult{SubcategoryID: "x", Confidence: MustConfidence(0.5), Reason: ReasonDefault})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "merchantId")
}

func TestNewManualResult(t *testing.T) {
	r := NewManualResult("food_grocery")
	assert.Equal(t, ReasonManual, r.Reason)
	assert.True(t, r.Confidence.ShouldAutoConfirm())
	assert.Nil(t, r.MerchantID)
	assert.True(t, r.Reason.IsValid())
	assert.False(t, ReasonCode("GUESS").IsValid())
}

func TestCategoryTreeNode_OmitsEmptyChildren(t *testing.T) {
	created := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	node := NewCategoryTreeNode(Subcategory{
		ID: "food", MainCategoryType: MainCategoryExpense, Name: "食費",
		IsActive: true, CreatedAt: created, UpdatedAt: created,
	})

	data, err := json.Marshal(node)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "children")
	assert.Contains(t, string(data), `"createdAt":"2024-04-01T09:00:00Z"`)

	node.Children = []CategoryTreeNode{NewCategoryTreeNode(Subcategory{ID: "food_cafe"})}
	data, err = json.Marshal(node)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"children":[`)
}

func TestSubcategory_ParentKey(t *testing.T) {
	assert.Equal(t, "", Subcategory{}.ParentKey())
	assert.Equal(t, "", Subcategory{ParentID: StringPtr("")}.ParentKey())
	assert.Equal(t, "food", Subcategory{ParentID: StringPtr("food")}.ParentKey())
}
