package common

import (
	"fmt"
	"strconv"

	"fjacquet/ledger/internal/categorizer"
	"fjacquet/ledger/internal/dateutils"
	"fjacquet/ledger/internal/models"
)

// TransactionRow is one input line of a batch classification CSV.
type TransactionRow struct {
	Description  string `csv:"description"`
	Amount       string `csv:"amount"`
	MainCategory string `csv:"main_category"`
	Date         string `csv:"date"`
}

// ResultRow is one output line of a batch classification CSV.
type ResultRow struct {
	Description   string `csv:"description"`
	Amount        string `csv:"amount"`
	MainCategory  string `csv:"main_category"`
	Date          string `csv:"date"`
	SubcategoryID string `csv:"subcategory_id"`
	Confidence    string `csv:"confidence"`
	Level         string `csv:"confidence_level"`
	Reason        string `csv:"reason"`
	MerchantID    string `csv:"merchant_id"`
	Error         string `csv:"error"`
}

// ToRequest parses the row into a classification request. Amounts without
// a currency marker are read in fallbackCurrency.
func (r TransactionRow) ToRequest(fallbackCurrency string) (categorizer.ClassifyRequest, error) {
	mainType, err := models.ParseMainCategoryType(r.MainCategory)
	if err != nil {
		return categorizer.ClassifyRequest{}, err
	}
	amount, err := models.ParseMoney(r.Amount, fallbackCurrency)
	if err != nil {
		return categorizer.ClassifyRequest{}, err
	}
	date, err := dateutils.ParseOptionalDate(r.Date)
	if err != nil {
		return categorizer.ClassifyRequest{}, err
	}
	return categorizer.ClassifyRequest{
		Description:      r.Description,
		Amount:           amount,
		MainCategoryType: mainType,
		TransactionDate:  date,
	}, nil
}

// NewResultRow echoes the input row next to its classification or error.
func NewResultRow(in TransactionRow, result models.ClassificationResult, err error) ResultRow {
	out := ResultRow{
		Description:  in.Description,
		Amount:       in.Amount,
		MainCategory: in.MainCategory,
		Date:         in.Date,
	}
	if err != nil {
		out.Error = err.Error()
		return out
	}
	out.SubcategoryID = result.SubcategoryID
	out.Confidence = strconv.FormatFloat(result.Confidence.Value(), 'f', 2, 64)
	out.Level = string(result.Confidence.Level())
	out.Reason = string(result.Reason)
	if result.MerchantID != nil {
		out.MerchantID = *result.MerchantID
	}
	return out
}

// RowError locates a row that could not be turned into a request. Line is
// the 1-based CSV line, counting the header.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
