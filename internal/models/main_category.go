package models

import (
	"fmt"
	"strings"

	"fjacquet/ledger/internal/domainerror"
)

// MainCategoryType is the top-level classification of a transaction.
type MainCategoryType string

const (
	MainCategoryIncome     MainCategoryType = "income"
	MainCategoryExpense    MainCategoryType = "expense"
	MainCategoryTransfer   MainCategoryType = "transfer"
	MainCategoryRepayment  MainCategoryType = "repayment"
	MainCategoryInvestment MainCategoryType = "investment"
)

var allMainCategoryTypes = []MainCategoryType{
	MainCategoryIncome,
	MainCategoryExpense,
	MainCategoryTransfer,
	MainCategoryRepayment,
	MainCategoryInvestment,
}

// AllMainCategoryTypes returns every main category type in declaration order.
func AllMainCategoryTypes() []MainCategoryType {
	out := make([]MainCategoryType, len(allMainCategoryTypes))
	copy(out, allMainCategoryTypes)
	return out
}

// IsValid reports whether t is one of the known main category types.
func (t MainCategoryType) IsValid() bool {
	switch t {
	case MainCategoryIncome, MainCategoryExpense, MainCategoryTransfer,
		MainCategoryRepayment, MainCategoryInvestment:
		return true
	}
	return false
}

func (t MainCategoryType) String() string {
	return string(t)
}

// ParseMainCategoryType accepts any casing and surrounding whitespace.
func ParseMainCategoryType(s string) (MainCategoryType, error) {
	t := MainCategoryType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", &domainerror.ValidationError{
			Field: "main_category_type",
			Value: s,
			Err:   fmt.Errorf("%w: expected one of %v", domainerror.ErrInvalidMainCategory, allMainCategoryTypes),
		}
	}
	return t, nil
}
