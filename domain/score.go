package domain

import (
	"time"

	"github.com/google/uuid"
)

// Ratios are the five unrounded model inputs.
type Ratios struct {
	X1 float64 `json:"x1_working_capital"`
	X2 float64 `json:"x2_retained_earnings"`
	X3 float64 `json:"x3_ebit"`
	X4 float64 `json:"x4_market_value_equity"`
	X5 float64 `json:"x5_sales"`
}

type ScoreResult struct {
	ZScore                float64  `json:"z_score"`
	RetainedEarningsRatio float64  `json:"retained_earnings_ratio"`
	Tier                  RiskTier `json:"tier"`
}

// ScoredCompany is one row of a batch. Exactly one of Result and Error is set.
type ScoredCompany struct {
	Company     string       `json:"company"`
	Result      *ScoreResult `json:"result,omitempty"`
	Explanation string       `json:"explanation,omitempty"`
	Error       string       `json:"error,omitempty"`
}

type BatchResult struct {
	BatchID   uuid.UUID       `json:"batch_id"`
	Companies []ScoredCompany `json:"companies"`
	Failed    int             `json:"failed"`
}

// ScoreRecord is a persisted scoring call.
type ScoreRecord struct {
	ID        uuid.UUID       `json:"id"`
	Company   string          `json:"company"`
	Input     FinancialRecord `json:"input"`
	Result    ScoreResult     `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}
