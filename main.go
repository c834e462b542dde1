package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"fjacquet/ledger/cmd/categories"
	"fjacquet/ledger/cmd/classify"
	classifybatch "fjacquet/ledger/cmd/classify-batch"
	"fjacquet/ledger/cmd/migrate"
	"fjacquet/ledger/cmd/root"
	"fjacquet/ledger/internal/config"
	"fjacquet/ledger/internal/logging"

	"github.com/sirupsen/logrus"
)

func init() {
	// .env must be loaded before the log level is read from the environment
	config.LoadEnv(nil)

	logging.SetAllLogLevels(logLevelFromEnv())

	root.Init()

	root.Cmd.AddCommand(classify.Cmd)
	root.Cmd.AddCommand(classifybatch.Cmd)
	root.Cmd.AddCommand(categories.Cmd)
	root.Cmd.AddCommand(migrate.Cmd)
}

// logLevelFromEnv reads LEDGER_LOG_LEVEL, defaulting to info.
func logLevelFromEnv() logrus.Level {
	level, err := logrus.ParseLevel(strings.ToLower(os.Getenv("LEDGER_LOG_LEVEL")))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.Cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
