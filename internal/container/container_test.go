package container

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/ledger/internal/categorizer"
	"fjacquet/ledger/internal/config"
	"fjacquet/ledger/internal/logging"
	"fjacquet/ledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedSubcategories = `subcategories:
  - id: food_cafe
    category_type: expense
    name: カフェ
    display_order: 1
    is_active: true
  - id: expense_other
    category_type: expense
    name: その他
    display_order: 99
    is_default: true
    is_active: true
`

const seedMerchants = `merchants:
  - id: m-starbucks
    name: スターバックス
    aliases: [STARBUCKS]
    default_subcategory_id: food_cafe
    confidence: 0.98
`

func writeSeed(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	subs := filepath.Join(dir, "subcategories.yaml")
	merchants := filepath.Join(dir, "merchants.yaml")
	require.NoError(t, os.WriteFile(subs, []byte(seedSubcategories), 0600))
	require.NoError(t, os.WriteFile(merchants, []byte(seedMerchants), 0600))
	return subs, merchants
}

func testConfig(backend, subs, merchants string) *config.Config {
	return &config.Config{
		Log:            config.LogConfig{Level: "info", Format: "text"},
		Storage:        config.StorageConfig{Backend: backend, SQLitePath: sqliteMemory},
		Data:           config.DataConfig{SubcategoriesFile: subs, MerchantsFile: merchants},
		Classification: config.ClassificationConfig{BatchWorkers: 2},
		CSV:            config.CSVConfig{Delimiter: ","},
	}
}

const sqliteMemory = ":memory:"

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "nil config",
			config:      nil,
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:   "yaml backend",
			config: testConfig(config.BackendYAML, "subcategories.yaml", "merchants.yaml"),
		},
		{
			name:   "sqlite backend",
			config: testConfig(config.BackendSQLite, "subcategories.yaml", "merchants.yaml"),
		},
		{
			name:        "unknown backend",
			config:      testConfig("mongo", "", ""),
			expectError: true,
			errorMsg:    "unknown storage backend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContainerWithLogger(context.Background(), tt.config, logging.NewMockLogger())
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			defer func() { _ = c.Close() }()
			assert.NotNil(t, c.GetClassifier())
			assert.NotNil(t, c.GetSubcategories())
			assert.NotNil(t, c.GetMerchants())
			assert.Same(t, tt.config, c.GetConfig())
			assert.NotNil(t, c.GetLogger())
		})
	}
}

func TestContainer_YAMLBackendClassifies(t *testing.T) {
	subs, merchants := writeSeed(t)
	c, err := NewContainerWithLogger(context.Background(), testConfig(config.BackendYAML, subs, merchants), logging.NewMockLogger())
	require.NoError(t, err)

	result, err := c.GetClassifier().Classify(context.Background(), categorizer.ClassifyRequest{
		Description:      "STARBUCKS 新宿",
		MainCategoryType: models.MainCategoryExpense,
	})
	require.NoError(t, err)
	assert.Equal(t, "food_cafe", result.SubcategoryID)

	assert.ErrorIs(t, c.Migrate(context.Background(), true), ErrNoSchema)
}

func TestContainer_SQLiteMigrateAndSeed(t *testing.T) {
	subs, merchants := writeSeed(t)
	c, err := NewContainerWithLogger(context.Background(), testConfig(config.BackendSQLite, subs, merchants), logging.NewMockLogger())
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	ctx := context.Background()
	require.NoError(t, c.Migrate(ctx, true))

	all, err := c.GetSubcategories().FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	result, err := c.GetClassifier().Classify(ctx, categorizer.ClassifyRequest{
		Description:      "謎の支払い",
		MainCategoryType: models.MainCategoryExpense,
	})
	require.NoError(t, err)
	assert.Equal(t, "expense_other", result.SubcategoryID)
	assert.Equal(t, models.ReasonDefault, result.Reason)
}

func TestContainer_KeywordsFile(t *testing.T) {
	subs, merchants := writeSeed(t)
	keywords := filepath.Join(t.TempDir(), "keywords.yaml")
	require.NoError(t, os.WriteFile(keywords, []byte("expense:\n  food_cafe: [喫茶]\n"), 0600))

	cfg := testConfig(config.BackendYAML, subs, merchants)
	cfg.Data.KeywordsFile = keywords
	c, err := NewContainerWithLogger(context.Background(), cfg, logging.NewMockLogger())
	require.NoError(t, err)

	assert.Equal(t, 1, c.GetKeywords().Len())
	result, err := c.GetClassifier().Classify(context.Background(), categorizer.ClassifyRequest{
		Description:      "純喫茶 モーニング",
		MainCategoryType: models.MainCategoryExpense,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReasonKeywordMatch, result.Reason)

	cfg.Data.KeywordsFile = filepath.Join(t.TempDir(), "missing.yaml")
	c, err = NewContainerWithLogger(context.Background(), cfg, logging.NewMockLogger())
	require.NoError(t, err)
	assert.Equal(t, categorizer.DefaultKeywordConfig().Len(), c.GetKeywords().Len())
}
