package pgstore

import (
	"context"
	"fmt"
	"time"

	"fjacquet/ledger/internal/domainerror"
	"fjacquet/ledger/internal/logging"
	"fjacquet/ledger/internal/models"

	"github.com/jackc/pgx/v5"
)

// Merchants reads and writes the merchants table.
type Merchants struct {
	store *Store
}

// FindAll returns merchants in match order: highest priority first, then
// the order they were last saved in.
func (r *Merchants) FindAll(ctx context.Context) ([]models.Merchant, error) {
	rows, err := r.store.pool.Query(ctx, `
		SELECT id, name, aliases, default_subcategory_id, confidence, created_at, updated_at
		FROM merchants
		ORDER BY priority DESC, seq
	`)
	if err != nil {
		return nil, &domainerror.StoreError{Op: "find merchants", Err: err}
	}

	merchants, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Merchant, error) {
		var (
			m          models.Merchant
			confidence float64
		)
		if err := row.Scan(&m.ID, &m.Name, &m.Aliases, &m.DefaultSubcategoryID, &confidence, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return models.Merchant{}, err
		}
		c, err := models.NewClassificationConfidence(confidence)
		if err != nil {
			return models.Merchant{}, fmt.Errorf("merchant %s: %w", m.ID, err)
		}
		m.Confidence = c
		return m, nil
	})
	if err != nil {
		return nil, &domainerror.StoreError{Op: "find merchants", Err: err}
	}
	return merchants, nil
}

// Save inserts or updates merchants in one transaction. All of them get
// priority; within one priority, first saved matches first. Saving an
// existing merchant again moves it behind everything saved before.
func (r *Merchants) Save(ctx context.Context, merchants []models.Merchant, priority int) error {
	return pgx.BeginFunc(ctx, r.store.pool, func(tx pgx.Tx) error {
		return saveMerchantsTx(ctx, tx, merchants, priority)
	})
}

func saveMerchantsTx(ctx context.Context, tx pgx.Tx, merchants []models.Merchant, priority int) error {
	now := time.Now().UTC()
	for _, m := range merchants {
		aliases := m.Aliases
		if aliases == nil {
			aliases = []string{}
		}
		created, updated := m.CreatedAt, m.UpdatedAt
		if created.IsZero() {
			created = now
		}
		if updated.IsZero() {
			updated = now
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO merchants (id, name, aliases, default_subcategory_id, confidence, priority, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				aliases = EXCLUDED.aliases,
				default_subcategory_id = EXCLUDED.default_subcategory_id,
				confidence = EXCLUDED.confidence,
				priority = EXCLUDED.priority,
				seq = nextval(pg_get_serial_sequence('merchants', 'seq')),
				updated_at = EXCLUDED.updated_at
		`, m.ID, m.Name, aliases, m.DefaultSubcategoryID, m.Confidence.Value(), priority, created, updated)
		if err != nil {
			return &domainerror.StoreError{Op: "save merchant " + m.ID, Err: err}
		}
	}
	return nil
}

// Seed writes subcategories and merchants in one transaction. Merchants
// keep their slice order as match order.
func (s *Store) Seed(ctx context.Context, subs []models.Subcategory, merchants []models.Merchant) error {
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if err := saveSubcategoriesTx(ctx, tx, subs); err != nil {
			return err
		}
		return saveMerchantsTx(ctx, tx, merchants, 0)
	})
	if err != nil {
		return err
	}
	s.logger.Info("Seeded database",
		logging.Field{Key: logging.FieldBackend, Value: "postgres"},
		logging.Field{Key: "subcategories", Value: len(subs)},
		logging.Field{Key: "merchants", Value: len(merchants)})
	return nil
}
