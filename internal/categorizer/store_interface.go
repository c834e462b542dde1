package categorizer

import (
	"context"

	"fjacquet/ledger/internal/models"
)

// SubcategoryRepository is the subcategory lookup collaborator.
type SubcategoryRepository interface {
	// FindByCategory returns the active subcategories of mainType.
	FindByCategory(ctx context.Context, mainType models.MainCategoryType) ([]models.Subcategory, error)
	// FindDefault returns the subcategory flagged default for mainType, or
	// nil without error when none is configured.
	FindDefault(ctx context.Context, mainType models.MainCategoryType) (*models.Subcategory, error)
}

// MerchantRepository is the merchant lookup collaborator. The order of
// FindAll decides which merchant wins when several match a description.
type MerchantRepository interface {
	FindAll(ctx context.Context) ([]models.Merchant, error)
}

// SubcategoryLister returns every subcategory, active or not, for browsing.
type SubcategoryLister interface {
	FindAll(ctx context.Context) ([]models.Subcategory, error)
}
