package models

import (
	"encoding/json"
	"fmt"
	"strconv"

	"fjacquet/ledger/internal/domainerror"

	"gopkg.in/yaml.v3"
)

// Confidence band boundaries.
const (
	HighConfidenceThreshold   = 0.90
	MediumConfidenceThreshold = 0.70
)

// ConfidenceLevel names the band a confidence value falls in.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// ClassificationConfidence is a score in [0,1]. The zero value is a valid
// confidence of 0.
type ClassificationConfidence struct {
	value float64
}

// NewClassificationConfidence validates v and wraps it.
func NewClassificationConfidence(v float64) (ClassificationConfidence, error) {
	// NaN fails both comparisons, so it is rejected as well.
	if !(v >= 0 && v <= 1) {
		return ClassificationConfidence{}, &domainerror.ValidationError{
			Field: "confidence",
			Value: strconv.FormatFloat(v, 'f', -1, 64),
			Err:   domainerror.ErrConfidenceOutOfRange,
		}
	}
	return ClassificationConfidence{value: v}, nil
}

// MustConfidence is NewClassificationConfidence for compile-time constants.
func MustConfidence(v float64) ClassificationConfidence {
	c, err := NewClassificationConfidence(v)
	if err != nil {
		panic(err)
	}
	return c
}

// Value returns the raw score.
func (c ClassificationConfidence) Value() float64 {
	return c.value
}

// Level returns the band of the score.
func (c ClassificationConfidence) Level() ConfidenceLevel {
	switch {
	case c.value >= HighConfidenceThreshold:
		return ConfidenceHigh
	case c.value >= MediumConfidenceThreshold:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func (c ClassificationConfidence) IsHigh() bool   { return c.Level() == ConfidenceHigh }
func (c ClassificationConfidence) IsMedium() bool { return c.Level() == ConfidenceMedium }
func (c ClassificationConfidence) IsLow() bool    { return c.Level() == ConfidenceLow }

// ShouldAutoConfirm is true only for high confidence.
func (c ClassificationConfidence) ShouldAutoConfirm() bool {
	return c.IsHigh()
}

// ShouldRecommendReview is true only for low confidence.
func (c ClassificationConfidence) ShouldRecommendReview() bool {
	return c.IsLow()
}

func (c ClassificationConfidence) String() string {
	return fmt.Sprintf("%.2f", c.value)
}

// MarshalJSON encodes the confidence as a bare number.
func (c ClassificationConfidence) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.value)
}

// UnmarshalJSON decodes and validates a bare number.
func (c *ClassificationConfidence) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := NewClassificationConfidence(v)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML encodes the confidence as a bare number.
func (c ClassificationConfidence) MarshalYAML() (interface{}, error) {
	return c.value, nil
}

// UnmarshalYAML decodes and validates a bare number.
func (c *ClassificationConfidence) UnmarshalYAML(node *yaml.Node) error {
	var v float64
	if err := node.Decode(&v); err != nil {
		return err
	}
	parsed, err := NewClassificationConfidence(v)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
