// Package pgstore persists subcategories and merchants in PostgreSQL.
package pgstore

import (
	"context"
	"fmt"

	"fjacquet/ledger/internal/logging"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is a PostgreSQL-backed subcategory and merchant repository.
type Store struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

// NewStore wraps an existing pool.
func NewStore(pool *pgxpool.Pool, logger logging.Logger) *Store {
	return &Store{pool: pool, logger: logging.OrDefault(logger)}
}

// Connect opens a pool on dsn and checks it answers.
func Connect(ctx context.Context, dsn string, logger logging.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return NewStore(pool, logger), nil
}

// Close releases the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Subcategories returns the subcategory repository view of the store.
func (s *Store) Subcategories() *Subcategories {
	return &Subcategories{store: s}
}

// Merchants returns the merchant repository view of the store.
func (s *Store) Merchants() *Merchants {
	return &Merchants{store: s}
}
