package models

// ReasonCode identifies the pipeline stage that produced a classification.
type ReasonCode string

const (
	ReasonMerchantMatch    ReasonCode = "MERCHANT_MATCH"
	ReasonKeywordMatch     ReasonCode = "KEYWORD_MATCH"
	ReasonAmountInference  ReasonCode = "AMOUNT_INFERENCE"  // reserved
	ReasonRecurringPattern ReasonCode = "RECURRING_PATTERN" // reserved
	ReasonDefault          ReasonCode = "DEFAULT"
	ReasonManual           ReasonCode = "MANUAL"
)

// Fixed confidences assigned by the pipeline.
const (
	KeywordConfidenceFloor = MediumConfidenceThreshold
	DefaultConfidence      = 0.50
	ManualConfidence       = 1.00
)

// IsValid reports whether r belongs to the closed reason code set.
func (r ReasonCode) IsValid() bool {
	switch r {
	case ReasonMerchantMatch, ReasonKeywordMatch, ReasonAmountInference,
		ReasonRecurringPattern, ReasonDefault, ReasonManual:
		return true
	}
	return false
}

// ClassificationResult is the outcome of classifying one transaction.
// MerchantID is set only when Reason is ReasonMerchantMatch.
type ClassificationResult struct {
	SubcategoryID string                   `json:"subcategoryId" yaml:"subcategory_id" csv:"subcategory_id"`
	Confidence    ClassificationConfidence `json:"confidence" yaml:"confidence" csv:"-"`
	Reason        ReasonCode               `json:"reason" yaml:"reason" csv:"reason"`
	MerchantID    *string                  `json:"merchantId,omitempty" yaml:"merchant_id,omitempty" csv:"-"`
}

// IsReliable is true for high and medium confidence.
func (r ClassificationResult) IsReliable() bool {
	return r.Confidence.Value() >= MediumConfidenceThreshold
}

// NewManualResult is the result recorded when a user overrides the pipeline.
func NewManualResult(subcategoryID string) ClassificationResult {
	return ClassificationResult{
		SubcategoryID: subcategoryID,
		Confidence:    MustConfidence(ManualConfidence),
		Reason:        ReasonManual,
	}
}
