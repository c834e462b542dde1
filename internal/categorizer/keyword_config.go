package categorizer

import (
	"sort"

	"fjacquet/ledger/internal/models"
)

// KeywordConfig maps each main category type to the keyword list of its
// subcategories. It is read-only once built and safe for concurrent use.
type KeywordConfig struct {
	entries map[models.MainCategoryType]map[string][]string
}

// NewKeywordConfig copies entries into a KeywordConfig.
func NewKeywordConfig(entries map[models.MainCategoryType]map[string][]string) KeywordConfig {
	cfg := KeywordConfig{entries: make(map[models.MainCategoryType]map[string][]string, len(entries))}
	for mainType, subs := range entries {
		copied := make(map[string][]string, len(subs))
		for id, keywords := range subs {
			copied[id] = append([]string(nil), keywords...)
		}
		cfg.entries[mainType] = copied
	}
	return cfg
}

// HasCategory reports whether any keywords are configured for mainType.
func (c KeywordConfig) HasCategory(mainType models.MainCategoryType) bool {
	_, ok := c.entries[mainType]
	return ok
}

// Keywords returns the keywords configured for a subcategory.
func (c KeywordConfig) Keywords(mainType models.MainCategoryType, subcategoryID string) ([]string, bool) {
	subs, ok := c.entries[mainType]
	if !ok {
		return nil, false
	}
	keywords, ok := subs[subcategoryID]
	return keywords, ok
}

// SubcategoryIDs returns the configured subcategory ids of mainType, sorted.
func (c KeywordConfig) SubcategoryIDs(mainType models.MainCategoryType) []string {
	ids := make([]string, 0, len(c.entries[mainType]))
	for id := range c.entries[mainType] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of subcategories with keywords across all types.
func (c KeywordConfig) Len() int {
	n := 0
	for _, subs := range c.entries {
		n += len(subs)
	}
	return n
}

// DefaultKeywordConfig returns the built-in keyword table used when no
// keywords file is configured.
func DefaultKeywordConfig() KeywordConfig {
	return NewKeywordConfig(map[models.MainCategoryType]map[string][]string{
		models.MainCategoryExpense: {
			"food_grocery":          {"スーパー", "食料品", "八百屋", "精肉", "鮮魚"},
			"food_cafe":             {"カフェ", "コーヒー", "喫茶"},
			"food_dining_out":       {"レストラン", "居酒屋", "ランチ", "ディナー", "定食", "外食"},
			"transport_train_bus":   {"電車", "バス", "定期券", "Suica", "PASMO", "乗車券"},
			"transport_taxi":        {"タクシー", "ハイヤー"},
			"transport_fuel":        {"ガソリン", "給油", "駐車場"},
			"daily_goods":           {"日用品", "ドラッグストア", "洗剤", "雑貨"},
			"utilities_electricity": {"電気", "電力"},
			"utilities_gas":         {"ガス料金", "都市ガス", "プロパン"},
			"utilities_water":       {"水道"},
			"comm_mobile":           {"携帯", "スマホ", "通信料"},
			"comm_internet":         {"インターネット", "プロバイダ", "光回線"},
			"housing_rent":          {"家賃", "管理費", "賃料"},
			"medical":               {"病院", "クリニック", "薬局", "歯科"},
			"entertainment":         {"映画", "書籍", "ゲーム", "コンサート"},
		},
		models.MainCategoryIncome: {
			"income_salary": {"給与", "給料", "月給"},
			"income_bonus":  {"賞与", "ボーナス"},
			"income_side":   {"副業", "報酬", "謝礼"},
		},
		models.MainCategoryTransfer: {
			"transfer_charge":  {"チャージ", "入金"},
			"transfer_account": {"振替", "口座間"},
		},
		models.MainCategoryRepayment: {
			"repayment_credit_card": {"カード", "クレジット"},
			"repayment_loan":        {"ローン", "返済"},
		},
		models.MainCategoryInvestment: {
			"investment_stocks": {"株式", "証券"},
			"investment_funds":  {"投資信託", "積立", "NISA"},
		},
	})
}
