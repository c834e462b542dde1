package models

import (
	"time"

	"fjacquet/ledger/internal/domainerror"
	"fjacquet/ledger/internal/textutils"
)

// Merchant is a known payee or payer whose name (or alias) in a transaction
// description maps directly to a subcategory.
type Merchant struct {
	ID                   string                   `json:"id" yaml:"id"`
	Name                 string                   `json:"name" yaml:"name"`
	Aliases              []string                 `json:"aliases" yaml:"aliases,omitempty"`
	DefaultSubcategoryID string                   `json:"defaultSubcategoryId" yaml:"default_subcategory_id"`
	Confidence           ClassificationConfidence `json:"confidence" yaml:"confidence"`
	CreatedAt            time.Time                `json:"createdAt" yaml:"created_at,omitempty"`
	UpdatedAt            time.Time                `json:"updatedAt" yaml:"updated_at,omitempty"`
}

// NewMerchant builds a Merchant, rejecting a confidence outside [0,1] and
// any name or alias that normalizes to the empty string.
func NewMerchant(id, name string, aliases []string, defaultSubcategoryID string, confidence float64) (Merchant, error) {
	c, err := NewClassificationConfidence(confidence)
	if err != nil {
		return Merchant{}, err
	}
	now := time.Now().UTC()
	m := Merchant{
		ID:                   id,
		Name:                 name,
		Aliases:              append([]string(nil), aliases...),
		DefaultSubcategoryID: defaultSubcategoryID,
		Confidence:           c,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := m.ValidateNames(); err != nil {
		return Merchant{}, err
	}
	return m, nil
}

// ValidateNames rejects a name or alias with no matchable text. Such a
// needle would be contained in every description.
func (m Merchant) ValidateNames() error {
	if textutils.Normalize(m.Name) == "" {
		return &domainerror.ValidationError{Field: "merchant.name", Value: m.Name, Err: domainerror.ErrEmptyMerchantName}
	}
	for _, alias := range m.Aliases {
		if textutils.Normalize(alias) == "" {
			return &domainerror.ValidationError{Field: "merchant.alias", Value: alias, Err: domainerror.ErrEmptyMerchantName}
		}
	}
	return nil
}

// Names returns the merchant name followed by its aliases.
func (m Merchant) Names() []string {
	names := make([]string, 0, len(m.Aliases)+1)
	names = append(names, m.Name)
	return append(names, m.Aliases...)
}
