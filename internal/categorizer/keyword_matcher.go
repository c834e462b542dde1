package categorizer

import (
	"strings"

	"fjacquet/ledger/internal/logging"
	"fjacquet/ledger/internal/models"
	"fjacquet/ledger/internal/textutils"
)

// KeywordMatch is the best scoring subcategory for a description.
type KeywordMatch struct {
	Subcategory     models.Subcategory
	Score           float64
	MatchedKeywords []string
}

// KeywordMatcher scores candidate subcategories by the share of their
// configured keywords found in a description.
type KeywordMatcher struct {
	config KeywordConfig
	logger logging.Logger
}

// NewKeywordMatcher creates a KeywordMatcher over config.
func NewKeywordMatcher(config KeywordConfig, logger logging.Logger) *KeywordMatcher {
	return &KeywordMatcher{
		config: config,
		logger: logging.OrDefault(logger),
	}
}

// Match returns the candidate with the strictly highest score, the first
// one winning ties. It returns nil when mainType has no keywords configured
// or no candidate scores above zero.
func (m *KeywordMatcher) Match(description string, mainType models.MainCategoryType, candidates []models.Subcategory) *KeywordMatch {
	if !m.config.HasCategory(mainType) {
		return nil
	}

	normalized := textutils.Normalize(description)

	var best *KeywordMatch
	for _, candidate := range candidates {
		keywords, ok := m.config.Keywords(mainType, candidate.ID)
		if !ok || len(keywords) == 0 {
			continue
		}

		var matched []string
		for _, keyword := range keywords {
			if strings.Contains(normalized, textutils.Normalize(keyword)) {
				matched = append(matched, keyword)
			}
		}
		if len(matched) == 0 {
			continue
		}

		score := float64(len(matched)) / float64(len(keywords))
		if best == nil || score > best.Score {
			best = &KeywordMatch{Subcategory: candidate, Score: score, MatchedKeywords: matched}
		}
	}

	if best != nil {
		m.logger.WithFields(
			logging.Field{Key: logging.FieldStage, Value: StageKeyword},
			logging.Field{Key: logging.FieldSubcategoryID, Value: best.Subcategory.ID},
			logging.Field{Key: logging.FieldScore, Value: best.Score},
			logging.Field{Key: logging.FieldKeyword, Value: best.MatchedKeywords},
		).Debug("Description matched subcategory keywords")
	}
	return best
}

// ExtractKeywords splits text into normalized whitespace-separated tokens.
func (m *KeywordMatcher) ExtractKeywords(text string) []string {
	return textutils.ExtractKeywords(text)
}
