package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskTier_Labels(t *testing.T) {
	assert.Equal(t, "SAFE (AAA)", TierSafe.Label())
	assert.Equal(t, "CAUTION (BBB)", TierCaution.Label())
	assert.Equal(t, "DISTRESS (D)", TierDistress.Label())
	assert.Equal(t, "RiskTier(7)", RiskTier(7).String())
}

func TestRiskTier_JSON(t *testing.T) {
	data, err := json.Marshal(ScoreResult{ZScore: 3.5, RetainedEarningsRatio: 0.2, Tier: TierSafe})
	require.NoError(t, err)
	assert.JSONEq(t, `{"z_score":3.5,"retained_earnings_ratio":0.2,"tier":"SAFE"}`, string(data))

	var back ScoreResult
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, TierSafe, back.Tier)

	var tier RiskTier
	assert.Error(t, json.Unmarshal([]byte(`"AAA"`), &tier))
}

func TestFinancialRecord_Scale(t *testing.T) {
	r := FinancialRecord{TotalAssets: 1, TotalLiabilities: 2, RetainedEarnings: -3, EBIT: 4, MarketCapitalization: 5, Sales: 6}
	assert.Equal(t, FinancialRecord{TotalAssets: 10, TotalLiabilities: 20, RetainedEarnings: -30, EBIT: 40, MarketCapitalization: 50, Sales: 60}, r.Scale(10))
}
