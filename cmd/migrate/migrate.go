// Package migrate handles database schema commands
package migrate

import (
	"context"
	"errors"
	"fmt"
	"io"

	"fjacquet/ledger/cmd/root"
	"fjacquet/ledger/internal/container"

	"github.com/spf13/cobra"
)

var seed bool

// Cmd represents the migrate command
var Cmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long: `Bring the sqlite or postgres schema up to date. With --seed the
subcategories and merchants of the YAML seed files are loaded as well.

Example:
  ledger migrate --backend sqlite --seed`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(root.Context(cmd), root.AppContainer, seed, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().BoolVarP(&seed, "seed", "s", false, "Load the YAML seed files after migrating")
}

func run(ctx context.Context, c *container.Container, seed bool, w io.Writer) error {
	backend := c.GetConfig().Storage.Backend
	if err := c.Migrate(ctx, seed); err != nil {
		if errors.Is(err, container.ErrNoSchema) {
			return fmt.Errorf("%w: %s (use --backend sqlite or --backend postgres)", err, backend)
		}
		return err
	}

	msg := "schema up to date"
	if seed {
		msg += ", seed data loaded"
	}
	_, err := fmt.Fprintf(w, "%s: %s\n", backend, msg)
	return err
}
