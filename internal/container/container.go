// Package container provides dependency injection for the ledger application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"errors"
	"fmt"

	"fjacquet/ledger/internal/categorizer"
	"fjacquet/ledger/internal/config"
	"fjacquet/ledger/internal/logging"
	"fjacquet/ledger/internal/models"
	"fjacquet/ledger/internal/store"
	"fjacquet/ledger/internal/store/pgstore"
	"fjacquet/ledger/internal/store/sqlitestore"
)

// ErrNoSchema is returned by Migrate on a backend without a database schema.
var ErrNoSchema = errors.New("storage backend has no schema to migrate")

// SubcategoryStore is a subcategory repository that can also list everything.
type SubcategoryStore interface {
	categorizer.SubcategoryRepository
	categorizer.SubcategoryLister
}

// database is implemented by the SQL backends.
type database interface {
	Migrate(ctx context.Context) error
	Seed(ctx context.Context, subs []models.Subcategory, merchants []models.Merchant) error
	Close() error
}

// Container holds all application dependencies. It is immutable after
// creation; dependencies are reached through getters.
type Container struct {
	logger        logging.Logger
	config        *config.Config
	subcategories SubcategoryStore
	merchants     categorizer.MerchantRepository
	keywords      categorizer.KeywordConfig
	classifier    *categorizer.Classifier
	db            database
}

// NewContainer creates and wires all application dependencies, logging
// with a logger built from cfg.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(ctx, cfg, config.ConfigureLoggingFromConfig(cfg))
}

// NewContainerWithLogger is NewContainer with an explicit logger.
func NewContainerWithLogger(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	logger = logging.OrDefault(logger)

	c := &Container{logger: logger, config: cfg}

	switch cfg.Storage.Backend {
	case config.BackendYAML, "":
		c.subcategories = store.NewSubcategoryStore(cfg.Data.SubcategoriesFile, logger)
		c.merchants = store.NewMerchantStore(cfg.Data.MerchantsFile, logger)
	case config.BackendSQLite:
		db, err := sqlitestore.Open(cfg.Storage.SQLitePath, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		c.subcategories = db.Subcategories()
		c.merchants = db.Merchants()
		c.db = db
	case config.BackendPostgres:
		db, err := pgstore.Connect(ctx, cfg.Storage.PostgresDSN, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		c.subcategories = db.Subcategories()
		c.merchants = db.Merchants()
		c.db = db
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}

	keywords, err := loadKeywords(cfg.Data.KeywordsFile, logger)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.keywords = keywords

	c.classifier = categorizer.NewClassifier(c.merchants, c.subcategories, keywords, logger,
		categorizer.WithBatchWorkers(cfg.Classification.BatchWorkers))

	logger.Debug("Container initialized successfully",
		logging.Field{Key: logging.FieldBackend, Value: cfg.Storage.Backend},
		logging.Field{Key: "keyword_subcategories", Value: keywords.Len()})

	return c, nil
}

func loadKeywords(file string, logger logging.Logger) (categorizer.KeywordConfig, error) {
	if file == "" {
		return categorizer.DefaultKeywordConfig(), nil
	}
	entries, err := store.LoadKeywordConfig(file, logger)
	if err != nil {
		return categorizer.KeywordConfig{}, fmt.Errorf("failed to load keywords: %w", err)
	}
	if entries == nil {
		logger.WithField(logging.FieldFile, file).Warn("Keywords file not found, using built-in keywords")
		return categorizer.DefaultKeywordConfig(), nil
	}
	return categorizer.NewKeywordConfig(entries), nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetClassifier returns the classification pipeline.
func (c *Container) GetClassifier() *categorizer.Classifier {
	return c.classifier
}

// GetSubcategories returns the subcategory repository of the configured backend.
func (c *Container) GetSubcategories() SubcategoryStore {
	return c.subcategories
}

// GetMerchants returns the merchant repository of the configured backend.
func (c *Container) GetMerchants() categorizer.MerchantRepository {
	return c.merchants
}

// GetKeywords returns the keyword table in use.
func (c *Container) GetKeywords() categorizer.KeywordConfig {
	return c.keywords
}

// Migrate brings the database schema up to date and, when seed is true,
// loads the YAML seed files into it.
func (c *Container) Migrate(ctx context.Context, seed bool) error {
	if c.db == nil {
		return ErrNoSchema
	}
	if err := c.db.Migrate(ctx); err != nil {
		return err
	}
	if !seed {
		return nil
	}

	subs, err := store.LoadSubcategories(c.config.Data.SubcategoriesFile, c.logger)
	if err != nil {
		return fmt.Errorf("failed to load subcategory seed: %w", err)
	}
	merchants, err := store.LoadMerchants(c.config.Data.MerchantsFile, c.logger)
	if err != nil {
		return fmt.Errorf("failed to load merchant seed: %w", err)
	}
	return c.db.Seed(ctx, subs, merchants)
}

// Close releases the database connection, if any.
func (c *Container) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}
