// Package classify handles single transaction classification
package classify

import (
	"context"
	"fmt"
	"io"

	"fjacquet/ledger/cmd/root"
	"fjacquet/ledger/internal/categorizer"
	"fjacquet/ledger/internal/dateutils"
	"fjacquet/ledger/internal/models"
	"fjacquet/ledger/internal/report"

	"github.com/spf13/cobra"
)

// Options are the flags of the classify command.
type Options struct {
	Description  string
	Amount       string
	Currency     string
	MainCategory string
	Date         string
	Format       string
	Trace        bool
}

var opts = Options{}

// Cmd represents the classify command
var Cmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a single transaction",
	Long: `Classify a single transaction into a subcategory of its main category.

Example:
  ledger classify --description "スターバックス 渋谷店" --amount 1280 --main-category expense`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(root.Context(cmd), root.AppContainer.GetClassifier(),
			report.NewGenerator(root.Log), opts, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "Transaction description")
	Cmd.Flags().StringVarP(&opts.Amount, "amount", "a", "0", "Transaction amount, e.g. 1280 or ¥1,280")
	Cmd.Flags().StringVar(&opts.Currency, "currency", models.DefaultCurrency, "Currency of amounts without a currency marker")
	Cmd.Flags().StringVarP(&opts.MainCategory, "main-category", "m", "", "Main category (income, expense, transfer, repayment, investment)")
	Cmd.Flags().StringVarP(&opts.Date, "date", "t", "", "Transaction date (optional)")
	Cmd.Flags().StringVarP(&opts.Format, "format", "f", report.FormatText, "Output format (text, json, yaml)")
	Cmd.Flags().BoolVar(&opts.Trace, "trace", false, "Print the outcome of every pipeline stage")
	_ = Cmd.MarkFlagRequired("description")
	_ = Cmd.MarkFlagRequired("main-category")
}

func run(ctx context.Context, classifier *categorizer.Classifier, gen *report.Generator, o Options, w io.Writer) error {
	mainType, err := models.ParseMainCategoryType(o.MainCategory)
	if err != nil {
		return err
	}
	amount, err := models.ParseMoney(o.Amount, o.Currency)
	if err != nil {
		return err
	}
	date, err := dateutils.ParseOptionalDate(o.Date)
	if err != nil {
		return err
	}

	req := categorizer.ClassifyRequest{
		Description:      o.Description,
		Amount:           amount,
		MainCategoryType: mainType,
		TransactionDate:  date,
	}
	result, trace, err := classifier.ClassifyWithTrace(ctx, req)
	if o.Trace {
		if _, werr := fmt.Fprintf(w, "stages: %s\n", trace.Summary()); werr != nil {
			return werr
		}
	}
	if err != nil {
		return fmt.Errorf("failed to classify transaction: %w", err)
	}

	out, err := gen.RenderResult(result, o.Format)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
