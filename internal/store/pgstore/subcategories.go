package pgstore

import (
	"context"
	"errors"
	"time"

	"fjacquet/ledger/internal/domainerror"
	"fjacquet/ledger/internal/models"

	"github.com/jackc/pgx/v5"
)

const subcategoryColumns = `id, category_type, name, parent_id, display_order, icon, color,
	is_default, is_active, created_at, updated_at`

// Subcategories reads and writes the subcategories table.
type Subcategories struct {
	store *Store
}

// FindByCategory returns the active subcategories of mainType in display
// order, then insertion order.
func (r *Subcategories) FindByCategory(ctx context.Context, mainType models.MainCategoryType) ([]models.Subcategory, error) {
	return r.query(ctx, "find subcategories by category", `
		SELECT `+subcategoryColumns+`
		FROM subcategories
		WHERE category_type = $1 AND is_active
		ORDER BY display_order, seq
	`, string(mainType))
}

// FindDefault returns the subcategory of mainType flagged default, or nil
// when there is none.
func (r *Subcategories) FindDefault(ctx context.Context, mainType models.MainCategoryType) (*models.Subcategory, error) {
	rows, err := r.store.pool.Query(ctx, `
		SELECT `+subcategoryColumns+`
		FROM subcategories
		WHERE category_type = $1 AND is_default
		ORDER BY seq
		LIMIT 1
	`, string(mainType))
	if err != nil {
		return nil, &domainerror.StoreError{Op: "find default subcategory", Err: err}
	}

	sub, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Subcategory])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &domainerror.StoreError{Op: "find default subcategory", Err: err}
	}
	return &sub, nil
}

// FindAll returns every subcategory in insertion order.
func (r *Subcategories) FindAll(ctx context.Context) ([]models.Subcategory, error) {
	return r.query(ctx, "find all subcategories", `
		SELECT `+subcategoryColumns+`
		FROM subcategories
		ORDER BY seq
	`)
}

// Save inserts or updates subcategories in one transaction.
func (r *Subcategories) Save(ctx context.Context, subs []models.Subcategory) error {
	return pgx.BeginFunc(ctx, r.store.pool, func(tx pgx.Tx) error {
		return saveSubcategoriesTx(ctx, tx, subs)
	})
}

func saveSubcategoriesTx(ctx context.Context, tx pgx.Tx, subs []models.Subcategory) error {
	now := time.Now().UTC()
	for _, s := range subs {
		if !s.MainCategoryType.IsValid() {
			return &domainerror.ValidationError{Field: "category_type", Value: string(s.MainCategoryType), Err: domainerror.ErrInvalidMainCategory}
		}
		created, updated := s.CreatedAt, s.UpdatedAt
		if created.IsZero() {
			created = now
		}
		if updated.IsZero() {
			updated = now
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO subcategories (`+subcategoryColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (id) DO UPDATE SET
				category_type = EXCLUDED.category_type,
				name = EXCLUDED.name,
				parent_id = EXCLUDED.parent_id,
				display_order = EXCLUDED.display_order,
				icon = EXCLUDED.icon,
				color = EXCLUDED.color,
				is_default = EXCLUDED.is_default,
				is_active = EXCLUDED.is_active,
				updated_at = EXCLUDED.updated_at
		`, s.ID, string(s.MainCategoryType), s.Name, s.ParentID, s.DisplayOrder,
			s.Icon, s.Color, s.IsDefault, s.IsActive, created, updated)
		if err != nil {
			return &domainerror.StoreError{Op: "save subcategory " + s.ID, Err: err}
		}
	}
	return nil
}

func (r *Subcategories) query(ctx context.Context, op, query string, args ...any) ([]models.Subcategory, error) {
	rows, err := r.store.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, &domainerror.StoreError{Op: op, Err: err}
	}
	subs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Subcategory])
	if err != nil {
		return nil, &domainerror.StoreError{Op: op, Err: err}
	}
	return subs, nil
}
