// Package categories handles subcategory inspection commands
package categories

import (
	"context"
	"io"

	"fjacquet/ledger/cmd/root"
	"fjacquet/ledger/internal/categorizer"
	"fjacquet/ledger/internal/categorytree"
	"fjacquet/ledger/internal/models"
	"fjacquet/ledger/internal/report"

	"github.com/spf13/cobra"
)

var (
	mainCategory string
	format       string
)

// Cmd represents the categories command
var Cmd = &cobra.Command{
	Use:   "categories",
	Short: "Inspect the configured subcategories",
}

// TreeCmd prints the subcategory hierarchy.
var TreeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the subcategory tree",
	Long: `Print the subcategories as a tree. Siblings are ordered by display order.

Example:
  ledger categories tree --main-category expense --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTree(root.Context(cmd), root.AppContainer.GetSubcategories(),
			report.NewGenerator(root.Log), mainCategory, format, cmd.OutOrStdout())
	},
}

func init() {
	TreeCmd.Flags().StringVarP(&mainCategory, "main-category", "m", "", "Only show this main category")
	TreeCmd.Flags().StringVarP(&format, "format", "f", report.FormatText, "Output format (text, json, yaml)")
	Cmd.AddCommand(TreeCmd)
}

func runTree(ctx context.Context, lister categorizer.SubcategoryLister, gen *report.Generator,
	mainCategory, format string, w io.Writer) error {
	subs, err := lister.FindAll(ctx)
	if err != nil {
		return err
	}

	var nodes []models.CategoryTreeNode
	if mainCategory == "" {
		nodes = categorytree.Build(subs)
	} else {
		mainType, err := models.ParseMainCategoryType(mainCategory)
		if err != nil {
			return err
		}
		nodes = categorytree.BuildForType(subs, mainType)
	}

	out, err := gen.RenderTree(nodes, format)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
