// Package root contains the root command for the application
package root

import (
	"context"
	"fmt"

	"fjacquet/ledger/internal/config"
	"fjacquet/ledger/internal/container"
	"fjacquet/ledger/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	ConfigFile string
	LogLevel   string
	Backend    string
}

var (
	// Log is the shared logger instance for commands
	Log = logging.GetLogger()

	// AppContainer holds the wired dependencies once PersistentPreRunE ran.
	AppContainer *container.Container

	// SharedFlags are accessible to all commands
	SharedFlags = CommonFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "ledger",
		Short: "Classify household ledger transactions into subcategories.",
		Long: `ledger classifies bank and card transactions into the subcategories of a
household budget. A transaction is matched against known merchants first,
then against subcategory keywords, and falls back to the default
subcategory of its main category.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer == nil {
				return
			}
			if err := AppContainer.Close(); err != nil {
				Log.WithError(err).Warn("Failed to close storage")
			}
			AppContainer = nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to ledger!")
			Log.Info("Use --help to see available commands")
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.ConfigFile, "config", "c", "", "Config file (default: config.yaml in $HOME/.ledger, .ledger or .)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level override (trace, debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Backend, "backend", "", "Storage backend override (yaml, sqlite, postgres)")
}

// LoadConfig reads the configuration and applies the command line overrides.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(SharedFlags.ConfigFile)
	if err != nil {
		return nil, err
	}
	if SharedFlags.LogLevel != "" {
		if _, err := logrus.ParseLevel(SharedFlags.LogLevel); err != nil {
			return nil, fmt.Errorf("invalid log level: %s", SharedFlags.LogLevel)
		}
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if SharedFlags.Backend != "" {
		switch SharedFlags.Backend {
		case config.BackendYAML, config.BackendSQLite, config.BackendPostgres:
			cfg.Storage.Backend = SharedFlags.Backend
		default:
			return nil, fmt.Errorf("invalid storage backend: %s", SharedFlags.Backend)
		}
	}
	return cfg, nil
}

func setup(cmd *cobra.Command, args []string) error {
	config.LoadEnv(Log)

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	Log = config.ConfigureLoggingFromConfig(cfg)

	c, err := container.NewContainerWithLogger(Context(cmd), cfg, Log)
	if err != nil {
		return err
	}
	AppContainer = c
	return nil
}

// Context returns the command's context, or the background context when the
// command was executed without one.
func Context(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
