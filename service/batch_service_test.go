package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solvency-engine/domain"
	"solvency-engine/repository"
)

func newTestBatchService(opts BatchOptions) *BatchService {
	scorer := NewZScoreService(repository.NewScoreRepositoryMemory(0), repository.NewMemoryCache(0), nil)
	return NewBatchService(scorer, NewAIService(""), nil, opts)
}

func TestScoreBatch_KeepsOrderAndCountsFailures(t *testing.T) {
	svc := newTestBatchService(BatchOptions{Concurrency: 2})

	broken := tcs
	broken.TotalAssets = 0

	companies := []domain.CompanyRecord{
		{Company: "Vodafone Idea (Vi)", Record: vodafoneIdea},
		{Company: "Broken", Record: broken},
		{Company: "TCS (Benchmark)", Record: tcs},
	}

	result, err := svc.ScoreBatch(context.Background(), companies, false)
	require.NoError(t, err)
	require.Len(t, result.Companies, 3)
	assert.Equal(t, 1, result.Failed)

	assert.Equal(t, "Vodafone Idea (Vi)", result.Companies[0].Company)
	require.NotNil(t, result.Companies[0].Result)
	assert.Equal(t, domain.TierDistress, result.Companies[0].Result.Tier)

	assert.Equal(t, "Broken", result.Companies[1].Company)
	assert.Nil(t, result.Companies[1].Result)
	assert.Contains(t, result.Companies[1].Error, "total_assets")

	require.NotNil(t, result.Companies[2].Result)
	assert.Equal(t, domain.TierSafe, result.Companies[2].Result.Tier)
	assert.Empty(t, result.Companies[2].Explanation)
}

func TestScoreBatch_OverflowingRowIsReported(t *testing.T) {
	svc := newTestBatchService(BatchOptions{Concurrency: 2})

	overflow := domain.FinancialRecord{TotalAssets: 1000, TotalLiabilities: 1e-300, MarketCapitalization: 1e300, Sales: 10}
	companies := []domain.CompanyRecord{
		{Company: "Overflow", Record: overflow},
		{Company: "TCS (Benchmark)", Record: tcs},
	}

	var (
		result domain.BatchResult
		err    error
	)
	require.NotPanics(t, func() {
		result, err = svc.ScoreBatch(context.Background(), companies, true)
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)

	assert.Nil(t, result.Companies[0].Result)
	assert.Contains(t, result.Companies[0].Error, "invalid financial record")
	require.NotNil(t, result.Companies[1].Result)
	assert.Equal(t, 17.36, result.Companies[1].Result.ZScore)
}

func TestScoreBatch_ManyCompanies(t *testing.T) {
	svc := newTestBatchService(BatchOptions{Concurrency: 4})

	companies := make([]domain.CompanyRecord, 100)
	for i := range companies {
		companies[i] = domain.CompanyRecord{
			Company: fmt.Sprintf("company-%03d", i),
			Record:  tcs.Scale(float64(i + 1)),
		}
	}

	result, err := svc.ScoreBatch(context.Background(), companies, false)
	require.NoError(t, err)
	assert.Zero(t, result.Failed)
	for i, row := range result.Companies {
		assert.Equal(t, companies[i].Company, row.Company)
		require.NotNil(t, row.Result)
		assert.Equal(t, domain.TierSafe, row.Result.Tier)
	}
}

func TestScoreBatch_Explain(t *testing.T) {
	svc := newTestBatchService(BatchOptions{})

	result, err := svc.ScoreBatch(context.Background(), []domain.CompanyRecord{
		{Company: "TCS", Record: tcs},
	}, true)
	require.NoError(t, err)
	assert.Contains(t, result.Companies[0].Explanation, "TCS scores 17.36")
}

func TestScoreBatch_Limits(t *testing.T) {
	svc := newTestBatchService(BatchOptions{MaxSize: 2})

	_, err := svc.ScoreBatch(context.Background(), nil, false)
	assert.ErrorIs(t, err, ErrEmptyBatch)

	companies := []domain.CompanyRecord{
		{Company: "a", Record: tcs},
		{Company: "b", Record: tcs},
		{Company: "c", Record: tcs},
	}
	_, err = svc.ScoreBatch(context.Background(), companies, false)
	assert.ErrorIs(t, err, ErrBatchTooLarge)
}

func TestScoreBatch_CanceledContext(t *testing.T) {
	svc := newTestBatchService(BatchOptions{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ScoreBatch(ctx, []domain.CompanyRecord{{Company: "TCS", Record: tcs}}, false)
	assert.ErrorIs(t, err, context.Canceled)
}
