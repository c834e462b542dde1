package common

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/ledger/internal/domainerror"
	"fjacquet/ledger/internal/logging"
	"fjacquet/ledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	input := "description,amount,main_category,date\n" +
		"スターバックス 渋谷店,\"¥1,280\",expense,2025-04-01\n" +
		"給与,300000,income,\n"

	rows, err := ReadCSV[TransactionRow](strings.NewReader(input), ',')
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "スターバックス 渋谷店", rows[0].Description)
	assert.Equal(t, "¥1,280", rows[0].Amount)
	assert.Equal(t, "expense", rows[0].MainCategory)
	assert.Equal(t, "", rows[1].Date)
}

func TestReadCSV_Semicolon(t *testing.T) {
	input := "description;amount;main_category\nタクシー;2500;expense\n"

	rows, err := ReadCSV[TransactionRow](strings.NewReader(input), ';')
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "タクシー", rows[0].Description)
	assert.Equal(t, "2500", rows[0].Amount)
}

func TestWriteAndReadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "results.csv")
	logger := logging.NewMockLogger()

	rows := []ResultRow{{
		Description:   "JR東日本 Suica",
		Amount:        "1000",
		MainCategory:  "expense",
		SubcategoryID: "transport_train_bus",
		Confidence:    "0.92",
		Level:         "high",
		Reason:        "MERCHANT_MATCH",
		MerchantID:    "m-jr-east",
	}}
	require.NoError(t, WriteCSVFile(path, rows, ',', logger))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data),
		"description,amount,main_category,date,subcategory_id,confidence,confidence_level,reason,merchant_id,error\n"))

	back, err := ReadCSVFile[ResultRow](path, ',', logger)
	require.NoError(t, err)
	assert.Equal(t, rows, back)
}

func TestReadCSVFile_Missing(t *testing.T) {
	_, err := ReadCSVFile[TransactionRow](filepath.Join(t.TempDir(), "nope.csv"), ',', logging.NewMockLogger())
	assert.ErrorContains(t, err, "error opening CSV file")
}

func TestWriteCSV_Nil(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteCSV[ResultRow](&buf, nil, ','))
}

func TestParseDelimiter(t *testing.T) {
	assert.Equal(t, ',', ParseDelimiter(""))
	assert.Equal(t, ';', ParseDelimiter(";"))
	assert.Equal(t, '\t', ParseDelimiter("\t"))
}

func TestTransactionRow_ToRequest(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		row := TransactionRow{Description: "スタバ", Amount: "¥1,280", MainCategory: " Expense ", Date: "2025/04/01"}
		req, err := row.ToRequest(models.DefaultCurrency)
		require.NoError(t, err)
		assert.Equal(t, models.MainCategoryExpense, req.MainCategoryType)
		assert.Equal(t, "1280", req.Amount.Amount.String())
		assert.Equal(t, "JPY", req.Amount.Currency)
		require.NotNil(t, req.TransactionDate)
		assert.Equal(t, 2025, req.TransactionDate.Year())
	})

	t.Run("no date", func(t *testing.T) {
		req, err := TransactionRow{Description: "x", Amount: "10", MainCategory: "expense"}.ToRequest("USD")
		require.NoError(t, err)
		assert.Nil(t, req.TransactionDate)
		assert.Equal(t, "USD", req.Amount.Currency)
	})

	t.Run("invalid main category", func(t *testing.T) {
		_, err := TransactionRow{Description: "x", Amount: "10", MainCategory: "gift"}.ToRequest("JPY")
		assert.True(t, domainerror.IsValidationError(err))
	})

	t.Run("invalid amount", func(t *testing.T) {
		_, err := TransactionRow{Description: "x", Amount: "ten", MainCategory: "expense"}.ToRequest("JPY")
		assert.ErrorContains(t, err, "invalid amount")
	})

	t.Run("invalid date", func(t *testing.T) {
		_, err := TransactionRow{Description: "x", Amount: "10", MainCategory: "expense", Date: "tomorrow"}.ToRequest("JPY")
		assert.ErrorContains(t, err, "unable to parse date")
	})
}

func TestNewResultRow(t *testing.T) {
	in := TransactionRow{Description: "スタバ", Amount: "500", MainCategory: "expense"}

	row := NewResultRow(in, models.ClassificationResult{
		SubcategoryID: "food_cafe",
		Confidence:    models.MustConfidence(0.98),
		Reason:        models.ReasonMerchantMatch,
		MerchantID:    models.StringPtr("m-starbucks"),
	}, nil)
	assert.Equal(t, "food_cafe", row.SubcategoryID)
	assert.Equal(t, "0.98", row.Confidence)
	assert.Equal(t, "high", row.Level)
	assert.Equal(t, "m-starbucks", row.MerchantID)
	assert.Empty(t, row.Error)

	row = NewResultRow(in, models.ClassificationResult{}, errors.New("boom"))
	assert.Equal(t, "boom", row.Error)
	assert.Empty(t, row.SubcategoryID)
	assert.Equal(t, "スタバ", row.Description)
}

func TestRowError(t *testing.T) {
	inner := errors.New("bad amount")
	err := &RowError{Line: 3, Err: inner}
	assert.Equal(t, "line 3: bad amount", err.Error())
	assert.ErrorIs(t, err, inner)
}
