package categories

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"fjacquet/ledger/internal/domainerror"
	"fjacquet/ledger/internal/models"
	"fjacquet/ledger/internal/report"
	"fjacquet/ledger/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSubcategories() *store.MockSubcategoryStore {
	return &store.MockSubcategoryStore{Subcategories: []models.Subcategory{
		{ID: "transport", MainCategoryType: models.MainCategoryExpense, Name: "交通費", DisplayOrder: 2, IsActive: true},
		{ID: "food", MainCategoryType: models.MainCategoryExpense, Name: "食費", DisplayOrder: 1, IsActive: true},
		{ID: "food_cafe", MainCategoryType: models.MainCategoryExpense, Name: "カフェ", ParentID: models.StringPtr("food"), DisplayOrder: 1, IsActive: true},
		{ID: "income_salary", MainCategoryType: models.MainCategoryIncome, Name: "給与", DisplayOrder: 1, IsActive: true},
	}}
}

func TestCommand_Metadata(t *testing.T) {
	assert.Equal(t, "categories", Cmd.Use)
	require.Len(t, Cmd.Commands(), 1)
	assert.Equal(t, "tree", Cmd.Commands()[0].Use)
	assert.NotNil(t, TreeCmd.Flags().Lookup("main-category"))
	assert.Equal(t, "text", TreeCmd.Flags().Lookup("format").DefValue)
}

func TestRunTree(t *testing.T) {
	gen := report.NewGenerator(nil)

	t.Run("single type", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, runTree(context.Background(), testSubcategories(), gen, "expense", "text", &out))
		assert.Equal(t, "食費 (food)\n  カフェ (food_cafe)\n交通費 (transport)\n", out.String())
	})

	t.Run("all types", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, runTree(context.Background(), testSubcategories(), gen, "", "text", &out))
		assert.Contains(t, out.String(), "給与 (income_salary)")
		assert.Contains(t, out.String(), "  カフェ (food_cafe)")
	})

	t.Run("invalid type", func(t *testing.T) {
		err := runTree(context.Background(), testSubcategories(), gen, "gift", "text", &bytes.Buffer{})
		assert.True(t, domainerror.IsValidationError(err))
	})

	t.Run("store failure", func(t *testing.T) {
		failing := &store.MockSubcategoryStore{FindAllError: errors.New("disk on fire")}
		err := runTree(context.Background(), failing, gen, "", "text", &bytes.Buffer{})
		assert.EqualError(t, err, "disk on fire")
	})
}
