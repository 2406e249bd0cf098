package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solvency-engine/domain"
)

func TestKeyDrivers(t *testing.T) {
	ratios, err := ComputeRatios(tcs)
	require.NoError(t, err)
	strongest, weakest := KeyDrivers(ratios)
	assert.Equal(t, "market value of equity to total liabilities", RatioName(strongest))
	assert.Equal(t, "working capital to total assets", RatioName(weakest))

	ratios, err = ComputeRatios(vodafoneIdea)
	require.NoError(t, err)
	strongest, weakest = KeyDrivers(ratios)
	assert.Equal(t, "sales to total assets", RatioName(strongest))
	assert.Equal(t, "retained earnings to total assets", RatioName(weakest))

	assert.Empty(t, RatioName(5))
}

func TestExplainScore_Fallback(t *testing.T) {
	svc := NewAIService("")

	ratios, _ := ComputeRatios(vodafoneIdea)
	result, _ := Score(vodafoneIdea)

	text := svc.ExplainScore(context.Background(), "Vodafone Idea (Vi)", ratios, result)
	assert.Contains(t, text, "Vodafone Idea (Vi) scores -1.59 (DISTRESS (D))")
	assert.Contains(t, text, "retained earnings to total assets (-1.42)")
	assert.Contains(t, text, "distress zone")
}

func TestExplainScore_FallbackCautionTier(t *testing.T) {
	svc := NewAIService("")

	// 0.6 + 0.28 + 0.33 + 0.6 + 1.0 = 2.81
	record := domain.FinancialRecord{
		TotalAssets:          1000,
		TotalLiabilities:     500,
		RetainedEarnings:     200,
		EBIT:                 100,
		MarketCapitalization: 500,
		Sales:                1000,
	}
	ratios, err := ComputeRatios(record)
	require.NoError(t, err)
	result, err := Score(record)
	require.NoError(t, err)
	require.Equal(t, domain.TierCaution, result.Tier)

	text := svc.ExplainScore(context.Background(), "Acme", ratios, result)
	assert.Contains(t, text, "CAUTION (BBB)")
	assert.Contains(t, text, "caution zone")
	assert.NotContains(t, text, "grey")
}

func TestExplainScore_UsesLLM(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req OpenAIRequest
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) && assert.Len(t, req.Messages, 2) {
			assert.Contains(t, req.Messages[1].Content, "Z-Score: 17.36")
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "Strong market confidence."}},
			},
		})
	}))
	defer server.Close()

	svc := NewAIService("test-key")
	svc.apiURL = server.URL

	ratios, _ := ComputeRatios(tcs)
	result, _ := Score(tcs)
	assert.Equal(t, "Strong market confidence.", svc.ExplainScore(context.Background(), "TCS", ratios, result))
}

func TestExplainScore_LLMErrorFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	svc := NewAIService("test-key")
	svc.apiURL = server.URL

	ratios, _ := ComputeRatios(tcs)
	result, _ := Score(tcs)
	text := svc.ExplainScore(context.Background(), "TCS", ratios, result)
	assert.Contains(t, text, "TCS scores 17.36 (SAFE (AAA))")
}
