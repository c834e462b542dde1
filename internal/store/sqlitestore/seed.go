package sqlitestore

import (
	"context"
	"database/sql"

	"fjacquet/ledger/internal/logging"
	"fjacquet/ledger/internal/models"
)

// Seed writes subcategories and merchants in one transaction. Merchants
// keep their slice order as match order.
func (s *Store) Seed(ctx context.Context, subs []models.Subcategory, merchants []models.Merchant) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := saveSubcategoriesTx(ctx, tx, subs); err != nil {
			return err
		}
		return saveMerchantsTx(ctx, tx, merchants, 0)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Seeded database",
		logging.Field{Key: logging.FieldBackend, Value: "sqlite"},
		logging.Field{Key: "subcategories", Value: len(subs)},
		logging.Field{Key: "merchants", Value: len(merchants)})
	return nil
}
