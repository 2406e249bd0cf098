package service

// Altman (1968) public manufacturing model.
const (
	WeightWorkingCapital    = 1.2
	WeightRetainedEarnings  = 1.4
	WeightEBIT              = 3.3
	WeightMarketValueEquity = 0.6
	WeightSales             = 1.0

	// Tier boundaries; a score equal to a boundary falls into the lower tier.
	SafeThreshold     = 2.99
	DistressThreshold = 1.81

	ResultDecimalPlaces = 2
)

const (
	DefaultBatchConcurrency = 8
	DefaultMaxBatchSize     = 500
)
