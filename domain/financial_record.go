package domain

// FinancialRecord holds the balance sheet and income statement totals the
// Z-Score is computed from. Monetary values share one unit (e.g. crores).
type FinancialRecord struct {
	TotalAssets          float64 `json:"total_assets" yaml:"total_assets"`
	TotalLiabilities     float64 `json:"total_liabilities" yaml:"total_liabilities"`
	RetainedEarnings     float64 `json:"retained_earnings" yaml:"retained_earnings"`
	EBIT                 float64 `json:"ebit" yaml:"ebit"`
	MarketCapitalization float64 `json:"market_cap" yaml:"market_cap"`
	Sales                float64 `json:"sales" yaml:"sales"`
}

// Scale returns a copy with every monetary field multiplied by k.
func (r FinancialRecord) Scale(k float64) FinancialRecord {
	return FinancialRecord{
		TotalAssets:          r.TotalAssets * k,
		TotalLiabilities:     r.TotalLiabilities * k,
		RetainedEarnings:     r.RetainedEarnings * k,
		EBIT:                 r.EBIT * k,
		MarketCapitalization: r.MarketCapitalization * k,
		Sales:                r.Sales * k,
	}
}

// CompanyRecord pairs a display label with the record to score.
type CompanyRecord struct {
	Company string          `json:"company" yaml:"company"`
	Record  FinancialRecord `json:"record" yaml:"record"`
}
