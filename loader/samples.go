package loader

import "solvency-engine/domain"

// Samples returns the reference dataset (INR crore, FY25/TTM): a distressed
// telecom and a benchmark IT services firm.
func Samples() []domain.CompanyRecord {
	return []domain.CompanyRecord{
		{
			Company: "Vodafone Idea (Vi)",
			Record: domain.FinancialRecord{
				TotalAssets:          188548, // Sep 2025 balance sheet
				TotalLiabilities:     271008, // borrowings + other liabilities
				RetainedEarnings:     -190803,
				EBIT:                 -1617,
				MarketCapitalization: 65000, // approximate
				Sales:                44554,
			},
		},
		{
			Company: "TCS (Benchmark)",
			Record: domain.FinancialRecord{
				TotalAssets:          175219,
				TotalLiabilities:     68804,
				RetainedEarnings:     106053,
				EBIT:                 64716,
				MarketCapitalization: 1500000,
				Sales:                260802,
			},
		},
	}
}
