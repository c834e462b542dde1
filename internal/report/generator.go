// Package report renders classification results, batch summaries and the
// category tree for the command line.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"fjacquet/ledger/internal/categorizer"
	"fjacquet/ledger/internal/categorytree"
	"fjacquet/ledger/internal/logging"
	"fjacquet/ledger/internal/models"

	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Generator renders values in text, JSON or YAML.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(logger logging.Logger) *Generator {
	return &Generator{logger: logging.OrDefault(logger).WithField("component", "ReportGenerator")}
}

// BatchSummary aggregates the outcomes of a batch classification.
type BatchSummary struct {
	Total             int                            `json:"total" yaml:"total"`
	Classified        int                            `json:"classified" yaml:"classified"`
	Failed            int                            `json:"failed" yaml:"failed"`
	NeedsReview       int                            `json:"needsReview" yaml:"needs_review"`
	ByReason          map[models.ReasonCode]int      `json:"byReason" yaml:"by_reason"`
	ByConfidenceLevel map[models.ConfidenceLevel]int `json:"byConfidenceLevel" yaml:"by_confidence_level"`
}

// Summarize counts outcomes by reason and confidence band.
func Summarize(outcomes []categorizer.BatchOutcome) BatchSummary {
	s := BatchSummary{
		Total:             len(outcomes),
		ByReason:          make(map[models.ReasonCode]int),
		ByConfidenceLevel: make(map[models.ConfidenceLevel]int),
	}
	for _, o := range outcomes {
		if o.Err != nil {
			s.Failed++
			continue
		}
		s.Classified++
		s.ByReason[o.Result.Reason]++
		s.ByConfidenceLevel[o.Result.Confidence.Level()]++
		if o.Result.Confidence.ShouldRecommendReview() {
			s.NeedsReview++
		}
	}
	return s
}

// RenderResult renders a single classification.
func (g *Generator) RenderResult(result models.ClassificationResult, format string) ([]byte, error) {
	return g.render(result, format, func() string {
		var b strings.Builder
		fmt.Fprintf(&b, "subcategory: %s\n", result.SubcategoryID)
		fmt.Fprintf(&b, "confidence:  %s (%s)\n", result.Confidence, result.Confidence.Level())
		fmt.Fprintf(&b, "reason:      %s\n", result.Reason)
		if result.MerchantID != nil {
			fmt.Fprintf(&b, "merchant:    %s\n", *result.MerchantID)
		}
		return b.String()
	})
}

// RenderSummary renders a batch summary.
func (g *Generator) RenderSummary(summary BatchSummary, format string) ([]byte, error) {
	return g.render(summary, format, func() string {
		var b strings.Builder
		fmt.Fprintf(&b, "total: %d, classified: %d, failed: %d, needs review: %d\n",
			summary.Total, summary.Classified, summary.Failed, summary.NeedsReview)

		reasons := make([]string, 0, len(summary.ByReason))
		for r := range summary.ByReason {
			reasons = append(reasons, string(r))
		}
		sort.Strings(reasons)
		for _, r := range reasons {
			fmt.Fprintf(&b, "  %-18s %d\n", r, summary.ByReason[models.ReasonCode(r)])
		}
		return b.String()
	})
}

// RenderTree renders the category tree. The text form indents children
// two spaces per level and marks defaults and inactive nodes.
func (g *Generator) RenderTree(nodes []models.CategoryTreeNode, format string) ([]byte, error) {
	if nodes == nil {
		nodes = []models.CategoryTreeNode{}
	}
	return g.render(nodes, format, func() string {
		var b strings.Builder
		for _, f := range categorytree.Flatten(nodes) {
			b.WriteString(strings.Repeat("  ", f.Depth))
			fmt.Fprintf(&b, "%s (%s)", f.Node.Name, f.Node.ID)
			if f.Node.IsDefault {
				b.WriteString(" [default]")
			}
			if !f.Node.IsActive {
				b.WriteString(" [inactive]")
			}
			b.WriteByte('\n')
		}
		return b.String()
	})
}

func (g *Generator) render(v interface{}, format string, text func() string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatText, "":
		return []byte(text()), nil
	case FormatJSON:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			g.logger.WithError(err).Error("Failed to marshal JSON report")
			return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
		}
		return append(out, '\n'), nil
	case FormatYAML:
		out, err := yaml.Marshal(v)
		if err != nil {
			g.logger.WithError(err).Error("Failed to marshal YAML report")
			return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}
