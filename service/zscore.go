package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"solvency-engine/domain"
)

// round2 rounds half to even on the shortest decimal form of value, so 0.125
// becomes 0.12 and 0.135 becomes 0.14. NaN and ±Inf are returned unchanged.
func round2(value float64) float64 {
	if !isFinite(value) {
		return value
	}
	return decimal.NewFromFloat(value).RoundBank(ResultDecimalPlaces).InexactFloat64()
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

// ComputeRatios returns the unrounded X1..X5 inputs of the model.
//
// X1 uses net worth (assets - liabilities) in place of working capital since
// the record carries no current/non-current split.
func ComputeRatios(record domain.FinancialRecord) (domain.Ratios, error) {
	if record.TotalAssets == 0 {
		return domain.Ratios{}, &DivisionByZeroError{Field: "total_assets"}
	}
	if record.TotalLiabilities == 0 {
		return domain.Ratios{}, &DivisionByZeroError{Field: "total_liabilities"}
	}

	workingCapital := record.TotalAssets - record.TotalLiabilities

	return domain.Ratios{
		X1: workingCapital / record.TotalAssets,
		X2: record.RetainedEarnings / record.TotalAssets,
		X3: record.EBIT / record.TotalAssets,
		X4: record.MarketCapitalization / record.TotalLiabilities,
		X5: record.Sales / record.TotalAssets,
	}, nil
}

// WeightedContributions returns each ratio multiplied by its model weight,
// in X1..X5 order.
func WeightedContributions(r domain.Ratios) [5]float64 {
	// Conversions keep every product rounded to float64 (no FMA fusion).
	return [5]float64{
		float64(WeightWorkingCapital * r.X1),
		float64(WeightRetainedEarnings * r.X2),
		float64(WeightEBIT * r.X3),
		float64(WeightMarketValueEquity * r.X4),
		float64(WeightSales * r.X5),
	}
}

// Score computes the Altman Z-Score of record and classifies it.
//
// Finite inputs can still overflow a ratio (a tiny divisor under a huge
// numerator); such records fail with ErrInvalidRecord.
func Score(record domain.FinancialRecord) (domain.ScoreResult, error) {
	ratios, err := ComputeRatios(record)
	if err != nil {
		return domain.ScoreResult{}, err
	}

	c := WeightedContributions(ratios)
	z := c[0] + c[1] + c[2] + c[3] + c[4]
	if !isFinite(z) || !isFinite(ratios.X2) {
		return domain.ScoreResult{}, fmt.Errorf("%w: ratios overflow float64", ErrInvalidRecord)
	}

	zScore := round2(z)
	return domain.ScoreResult{
		ZScore:                zScore,
		RetainedEarningsRatio: round2(ratios.X2),
		Tier:                  Classify(zScore),
	}, nil
}

// Classify maps a Z-Score to its risk tier. NaN is DISTRESS.
func Classify(zScore float64) domain.RiskTier {
	switch {
	case zScore > SafeThreshold:
		return domain.TierSafe
	case zScore > DistressThreshold:
		return domain.TierCaution
	default:
		return domain.TierDistress
	}
}

// ValidateRecord rejects values that would make the score meaningless.
// Zero divisors are left to Score.
func ValidateRecord(record domain.FinancialRecord) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"total_assets", record.TotalAssets},
		{"total_liabilities", record.TotalLiabilities},
		{"retained_earnings", record.RetainedEarnings},
		{"ebit", record.EBIT},
		{"market_cap", record.MarketCapitalization},
		{"sales", record.Sales},
	}
	for _, f := range fields {
		if !isFinite(f.value) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidRecord, f.name)
		}
	}
	if record.MarketCapitalization < 0 {
		return fmt.Errorf("%w: market_cap must not be negative", ErrInvalidRecord)
	}
	if record.Sales < 0 {
		return fmt.Errorf("%w: sales must not be negative", ErrInvalidRecord)
	}
	return nil
}
