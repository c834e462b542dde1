package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"fjacquet/ledger/internal/domainerror"
	"fjacquet/ledger/internal/models"
)

// Merchants reads and writes the merchants table.
type Merchants struct {
	store *Store
}

// FindAll returns merchants in match order: highest priority first, then
// the order they were last saved in.
func (r *Merchants) FindAll(ctx context.Context) ([]models.Merchant, error) {
	rows, err := r.store.db.QueryContext(ctx, `
		SELECT id, name, aliases, default_subcategory_id, confidence, created_at, updated_at
		FROM merchants
		ORDER BY priority DESC, position
	`)
	if err != nil {
		return nil, &domainerror.StoreError{Op: "find merchants", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var merchants []models.Merchant
	for rows.Next() {
		m, err := scanMerchant(rows)
		if err != nil {
			return nil, &domainerror.StoreError{Op: "find merchants", Err: err}
		}
		merchants = append(merchants, m)
	}
	if err := rows.Err(); err != nil {
		return nil, &domainerror.StoreError{Op: "find merchants", Err: err}
	}
	return merchants, nil
}

// Save inserts or updates merchants in one transaction. All of them get
// priority; within one priority, first saved matches first. Saving an
// existing merchant again moves it behind everything saved before.
func (r *Merchants) Save(ctx context.Context, merchants []models.Merchant, priority int) error {
	return r.store.withTx(ctx, func(tx *sql.Tx) error {
		return saveMerchantsTx(ctx, tx, merchants, priority)
	})
}

func saveMerchantsTx(ctx context.Context, q queryable, merchants []models.Merchant, priority int) error {
	now := time.Now().UTC()
	for _, m := range merchants {
		aliases := m.Aliases
		if aliases == nil {
			aliases = []string{}
		}
		encoded, err := json.Marshal(aliases)
		if err != nil {
			return fmt.Errorf("failed to encode aliases of %s: %w", m.ID, err)
		}
		created, updated := m.CreatedAt, m.UpdatedAt
		if created.IsZero() {
			created = now
		}
		if updated.IsZero() {
			updated = now
		}
		_, err = q.ExecContext(ctx, `
			INSERT INTO merchants (id, name, aliases, default_subcategory_id, confidence, priority, position, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM merchants), ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				aliases = excluded.aliases,
				default_subcategory_id = excluded.default_subcategory_id,
				confidence = excluded.confidence,
				priority = excluded.priority,
				position = excluded.position,
				updated_at = excluded.updated_at
		`, m.ID, m.Name, string(encoded), m.DefaultSubcategoryID, m.Confidence.Value(), priority, created, updated)
		if err != nil {
			return &domainerror.StoreError{Op: "save merchant " + m.ID, Err: err}
		}
	}
	return nil
}

func scanMerchant(row scanner) (models.Merchant, error) {
	var (
		m          models.Merchant
		aliases    string
		confidence float64
	)
	if err := row.Scan(&m.ID, &m.Name, &aliases, &m.DefaultSubcategoryID, &confidence, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return models.Merchant{}, err
	}
	if err := json.Unmarshal([]byte(aliases), &m.Aliases); err != nil {
		return models.Merchant{}, fmt.Errorf("merchant %s has malformed aliases: %w", m.ID, err)
	}
	c, err := models.NewClassificationConfidence(confidence)
	if err != nil {
		return models.Merchant{}, fmt.Errorf("merchant %s: %w", m.ID, err)
	}
	m.Confidence = c
	return m, nil
}
