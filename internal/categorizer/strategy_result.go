package categorizer

import (
	"fmt"
	"strings"

	"fjacquet/ledger/internal/models"
)

// StageResult records the outcome of one stage attempt.
type StageResult struct {
	Stage  string
	Result models.ClassificationResult
	Found  bool
	Error  error
}

// StageResults is the trace of a single classification.
type StageResults struct {
	Results []StageResult
}

func (sr *StageResults) add(stage string, result models.ClassificationResult, found bool, err error) {
	sr.Results = append(sr.Results, StageResult{Stage: stage, Result: result, Found: found, Error: err})
}

// Winner returns the stage result that produced the classification.
func (sr StageResults) Winner() (StageResult, bool) {
	for _, r := range sr.Results {
		if r.Found && r.Error == nil {
			return r, true
		}
	}
	return StageResult{}, false
}

// GetErrors returns all errors encountered during stage execution
func (sr StageResults) GetErrors() []error {
	var errs []error
	for _, result := range sr.Results {
		if result.Error != nil {
			errs = append(errs, fmt.Errorf("%s stage: %w", result.Stage, result.Error))
		}
	}
	return errs
}

// Summary returns a compact trace such as "MerchantMatch:no_match, KeywordMatch:success".
func (sr StageResults) Summary() string {
	parts := make([]string, 0, len(sr.Results))
	for _, result := range sr.Results {
		status := "no_match"
		switch {
		case result.Error != nil:
			status = "failed"
		case result.Found:
			status = "success"
		}
		parts = append(parts, fmt.Sprintf("%s:%s", result.Stage, status))
	}
	return strings.Join(parts, ", ")
}
