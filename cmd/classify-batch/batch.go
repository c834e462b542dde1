// Package classifybatch classifies every transaction of a CSV file
package classifybatch

import (
	"context"
	"fmt"
	"io"

	"fjacquet/ledger/cmd/root"
	"fjacquet/ledger/internal/categorizer"
	"fjacquet/ledger/internal/common"
	"fjacquet/ledger/internal/logging"
	"fjacquet/ledger/internal/models"
	"fjacquet/ledger/internal/report"

	"github.com/spf13/cobra"
)

// Options are the flags of the classify-batch command.
type Options struct {
	Input    string
	Output   string
	Currency string
	Format   string
}

var opts = Options{}

// Cmd represents the classify-batch command
var Cmd = &cobra.Command{
	Use:   "classify-batch",
	Short: "Classify all transactions of a CSV file",
	Long: `Classify all transactions of a CSV file and write the results to another CSV file.

The input needs the columns description, amount and main_category; date is
optional. Rows that cannot be parsed or classified keep their input values
and carry the reason in the error column.

Example:
  ledger classify-batch -i transactions.csv -o classified.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		delimiter := common.ParseDelimiter(root.AppContainer.GetConfig().CSV.Delimiter)
		return run(root.Context(cmd), root.AppContainer.GetClassifier(), report.NewGenerator(root.Log),
			opts, delimiter, cmd.OutOrStdout(), root.Log)
	},
}

func init() {
	Cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Input CSV file")
	Cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output CSV file")
	Cmd.Flags().StringVar(&opts.Currency, "currency", models.DefaultCurrency, "Currency of amounts without a currency marker")
	Cmd.Flags().StringVarP(&opts.Format, "format", "f", report.FormatText, "Summary format (text, json, yaml)")
	_ = Cmd.MarkFlagRequired("input")
	_ = Cmd.MarkFlagRequired("output")
}

func run(ctx context.Context, classifier *categorizer.Classifier, gen *report.Generator,
	o Options, delimiter rune, w io.Writer, logger logging.Logger) error {
	logger = logging.OrDefault(logger).WithFields(
		logging.Field{Key: logging.FieldInputFile, Value: o.Input},
		logging.Field{Key: logging.FieldOutputFile, Value: o.Output},
	)

	rows, err := common.ReadCSVFile[common.TransactionRow](o.Input, delimiter, logger)
	if err != nil {
		return err
	}

	results, outcomes, err := classifyRows(ctx, classifier, rows, o.Currency, logger)
	if err != nil {
		return err
	}

	if err := common.WriteCSVFile(o.Output, results, delimiter, logger); err != nil {
		return err
	}

	summary := report.Summarize(outcomes)
	logger.Info("Batch classification finished",
		logging.Field{Key: logging.FieldCount, Value: summary.Total},
		logging.Field{Key: "failed", Value: summary.Failed})

	out, err := gen.RenderSummary(summary, o.Format)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// classifyRows returns one result row per input row, in input order. Rows
// that fail to parse are reported as failed outcomes without being
// classified.
func classifyRows(ctx context.Context, classifier *categorizer.Classifier, rows []common.TransactionRow,
	currency string, logger logging.Logger) ([]common.ResultRow, []categorizer.BatchOutcome, error) {
	outcomes := make([]categorizer.BatchOutcome, len(rows))
	reqs := make([]categorizer.ClassifyRequest, 0, len(rows))
	positions := make([]int, 0, len(rows))

	for i, row := range rows {
		req, err := row.ToRequest(currency)
		if err != nil {
			// header is line 1
			rowErr := &common.RowError{Line: i + 2, Err: err}
			logger.WithError(rowErr).Warn("Skipping invalid row")
			outcomes[i] = categorizer.BatchOutcome{Index: i, Err: rowErr}
			continue
		}
		reqs = append(reqs, req)
		positions = append(positions, i)
	}

	classified, err := classifier.ClassifyBatch(ctx, reqs)
	if err != nil {
		return nil, nil, fmt.Errorf("batch classification interrupted: %w", err)
	}
	for j, o := range classified {
		i := positions[j]
		o.Index = i
		outcomes[i] = o
	}

	results := make([]common.ResultRow, len(rows))
	for i, row := range rows {
		results[i] = common.NewResultRow(row, outcomes[i].Result, outcomes[i].Err)
	}
	return results, outcomes, nil
}
