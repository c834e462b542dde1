// Package domainerror defines the error taxonomy of the classification core:
// configuration errors (missing seed data), validation errors (values that
// must never enter the pipeline) and store errors (collaborator I/O).
package domainerror

import (
	"errors"
	"fmt"
)

// Sentinels matched with errors.Is.
var (
	ErrNoDefaultSubcategory = errors.New("no default subcategory")
	ErrConfidenceOutOfRange = errors.New("confidence must be between 0.00 and 1.00")
	ErrInvalidMainCategory  = errors.New("invalid main category type")
	ErrEmptyMerchantName    = errors.New("merchant name normalizes to empty")
)

// ConfigurationError reports seed data missing for a main category type.
// It is fatal to a classify call and is never defaulted around.
type ConfigurationError struct {
	MainCategoryType string
	Err              error
}

func (e *ConfigurationError) Error() string {
	if errors.Is(e.Err, ErrNoDefaultSubcategory) {
		return fmt.Sprintf("no default subcategory configured for main category type %q", e.MainCategoryType)
	}
	return fmt.Sprintf("configuration error for main category type %q: %v", e.MainCategoryType, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewMissingDefaultError builds the ConfigurationError raised when no
// subcategory of mainCategoryType carries the default flag.
func NewMissingDefaultError(mainCategoryType string) error {
	return &ConfigurationError{MainCategoryType: mainCategoryType, Err: ErrNoDefaultSubcategory}
}

// ValidationError represents a value rejected at construction time.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s='%s': %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// StoreError wraps a failure of a repository implementation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err is or wraps a ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

// IsValidationError reports whether err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
