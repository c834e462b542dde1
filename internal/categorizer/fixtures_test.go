package categorizer

import (
	"testing"

	"fjacquet/ledger/internal/models"
	"fjacquet/ledger/internal/store"

	"github.com/stretchr/testify/require"
)

func sub(id string, mainType models.MainCategoryType, parent string, order int) models.Subcategory {
	s := models.Subcategory{
		ID:               id,
		MainCategoryType: mainType,
		Name:             id,
		DisplayOrder:     order,
		IsActive:         true,
	}
	if parent != "" {
		s.ParentID = models.StringPtr(parent)
	}
	return s
}

func defaultSub(id string, mainType models.MainCategoryType) models.Subcategory {
	s := sub(id, mainType, "", 99)
	s.IsDefault = true
	return s
}

func merchant(t *testing.T, id, name string, aliases []string, subID string, confidence float64) models.Merchant {
	t.Helper()
	m, err := models.NewMerchant(id, name, aliases, subID, confidence)
	require.NoError(t, err)
	return m
}

// householdSubcategories is a small expense and income hierarchy with a
// default per type.
func householdSubcategories() []models.Subcategory {
	return []models.Subcategory{
		sub("food", models.MainCategoryExpense, "", 1),
		sub("food_cafe", models.MainCategoryExpense, "food", 1),
		sub("food_grocery", models.MainCategoryExpense, "food", 2),
		sub("transport", models.MainCategoryExpense, "", 2),
		sub("transport_train_bus", models.MainCategoryExpense, "transport", 1),
		sub("transport_taxi", models.MainCategoryExpense, "transport", 2),
		defaultSub("expense_other", models.MainCategoryExpense),
		sub("income_salary", models.MainCategoryIncome, "", 1),
		defaultSub("income_other", models.MainCategoryIncome),
	}
}

func householdMerchants(t *testing.T) *store.MockMerchantStore {
	return &store.MockMerchantStore{Merchants: []models.Merchant{
		merchant(t, "m-starbucks", "スターバックス", []string{"STARBUCKS", "スタバ"}, "food_cafe", 0.98),
		merchant(t, "m-jr-east", "JR東日本", []string{"えきねっと"}, "transport_train_bus", 0.92),
	}}
}
