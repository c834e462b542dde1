package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fjacquet/ledger/internal/domainerror"
	"fjacquet/ledger/internal/models"
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
		WHERE category_type = ? AND is_active = 1
		ORDER BY display_order, rowid
	`, string(mainType))
}

// FindDefault returns the subcategory of mainType flagged default, or nil
// when there is none.
func (r *Subcategories) FindDefault(ctx context.Context, mainType models.MainCategoryType) (*models.Subcategory, error) {
	row := r.store.db.QueryRowContext(ctx, `
		SELECT `+subcategoryColumns+`
		FROM subcategories
		WHERE category_type = ? AND is_default = 1
		ORDER BY rowid
		LIMIT 1
	`, string(mainType))

	sub, err := scanSubcategory(row)
	if errors.Is(err, sql.ErrNoRows) {
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
		ORDER BY rowid
	`)
}

// Save inserts or updates subcategories in one transaction.
func (r *Subcategories) Save(ctx context.Context, subs []models.Subcategory) error {
	return r.store.withTx(ctx, func(tx *sql.Tx) error {
		return saveSubcategoriesTx(ctx, tx, subs)
	})
}

func saveSubcategoriesTx(ctx context.Context, q queryable, subs []models.Subcategory) error {
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
		_, err := q.ExecContext(ctx, `
			INSERT INTO subcategories (`+subcategoryColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				category_type = excluded.category_type,
				name = excluded.name,
				parent_id = excluded.parent_id,
				display_order = excluded.display_order,
				icon = excluded.icon,
				color = excluded.color,
				is_default = excluded.is_default,
				is_active = excluded.is_active,
				updated_at = excluded.updated_at
		`, s.ID, string(s.MainCategoryType), s.Name, nullString(s.ParentID), s.DisplayOrder,
			nullString(s.Icon), nullString(s.Color), s.IsDefault, s.IsActive, created, updated)
		if err != nil {
			return &domainerror.StoreError{Op: "save subcategory " + s.ID, Err: err}
		}
	}
	return nil
}

func (r *Subcategories) query(ctx context.Context, op, query string, args ...any) ([]models.Subcategory, error) {
	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &domainerror.StoreError{Op: op, Err: err}
	}
	defer func() { _ = rows.Close() }()

	var subs []models.Subcategory
	for rows.Next() {
		sub, err := scanSubcategory(rows)
		if err != nil {
			return nil, &domainerror.StoreError{Op: op, Err: err}
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, &domainerror.StoreError{Op: op, Err: err}
	}
	return subs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSubcategory(row scanner) (models.Subcategory, error) {
	var (
		s                     models.Subcategory
		mainType              string
		parentID, icon, color sql.NullString
	)
	err := row.Scan(&s.ID, &mainType, &s.Name, &parentID, &s.DisplayOrder, &icon, &color,
		&s.IsDefault, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return models.Subcategory{}, err
	}
	s.MainCategoryType = models.MainCategoryType(mainType)
	s.ParentID = stringPtr(parentID)
	s.Icon = stringPtr(icon)
	s.Color = stringPtr(color)
	return s, nil
}
