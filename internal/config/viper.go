// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"

	"fjacquet/ledger/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendYAML     = "yaml"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// StorageConfig selects where subcategories and merchants are read from.
type StorageConfig struct {
	Backend     string `mapstructure:"backend" yaml:"backend"`
	SQLitePath  string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
	PostgresDSN string `mapstructure:"postgres_dsn" yaml:"-"` // may carry a password
}

// DataConfig names the YAML seed files.
type DataConfig struct {
	SubcategoriesFile string `mapstructure:"subcategories_file" yaml:"subcategories_file"`
	MerchantsFile     string `mapstructure:"merchants_file" yaml:"merchants_file"`
	KeywordsFile      string `mapstructure:"keywords_file" yaml:"keywords_file"`
}

// ClassificationConfig tunes the classification pipeline.
type ClassificationConfig struct {
	BatchWorkers int `mapstructure:"batch_workers" yaml:"batch_workers"`
}

// CSVConfig controls batch CSV input and output.
type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// Config represents the complete application configuration
type Config struct {
	Log            LogConfig            `mapstructure:"log" yaml:"log"`
	Storage        StorageConfig        `mapstructure:"storage" yaml:"storage"`
	Data           DataConfig           `mapstructure:"data" yaml:"data"`
	Classification ClassificationConfig `mapstructure:"classification" yaml:"classification"`
	CSV            CSVConfig            `mapstructure:"csv" yaml:"csv"`
}

// InitializeConfig loads configuration from the standard locations.
func InitializeConfig() (*Config, error) {
	return LoadConfig("")
}

// LoadConfig loads configuration with hierarchical precedence:
// defaults, then the config file, then LEDGER_* environment variables.
// An explicit configFile must exist; otherwise config.yaml is looked up in
// $HOME/.ledger, .ledger and the working directory and may be absent.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.ledger")
		v.AddConfigPath(".ledger")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("LEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// DATABASE_URL is the conventional name; LEDGER_STORAGE_POSTGRES_DSN wins
	if err := v.BindEnv("storage.postgres_dsn", "LEDGER_STORAGE_POSTGRES_DSN", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind DATABASE_URL: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("storage.backend", BackendYAML)
	v.SetDefault("storage.sqlite_path", "ledger.db")
	v.SetDefault("storage.postgres_dsn", "")

	v.SetDefault("data.subcategories_file", "subcategories.yaml")
	v.SetDefault("data.merchants_file", "merchants.yaml")
	v.SetDefault("data.keywords_file", "")

	v.SetDefault("classification.batch_workers", 8)

	v.SetDefault("csv.delimiter", ",")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	switch config.Storage.Backend {
	case BackendYAML:
	case BackendSQLite:
		if config.Storage.SQLitePath == "" {
			return fmt.Errorf("storage.sqlite_path required for the sqlite backend")
		}
	case BackendPostgres:
		if config.Storage.PostgresDSN == "" {
			return fmt.Errorf("DATABASE_URL or storage.postgres_dsn required for the postgres backend")
		}
	default:
		return fmt.Errorf("invalid storage backend: %s (must be 'yaml', 'sqlite' or 'postgres')", config.Storage.Backend)
	}

	if config.Classification.BatchWorkers < 1 || config.Classification.BatchWorkers > 256 {
		return fmt.Errorf("classification.batch_workers must be between 1 and 256, got: %d", config.Classification.BatchWorkers)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	return nil
}

// ConfigureLoggingFromConfig builds the application logger from config.
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(strings.ToLower(config.Log.Level), strings.ToLower(config.Log.Format))
}
