package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"solvency-engine/domain"
	"solvency-engine/metrics"
)

// BatchService scores many companies concurrently.
type BatchService struct {
	scorer      *ZScoreService
	explainer   *AIService
	metrics     *metrics.Metrics
	concurrency int
	maxSize     int
}

type BatchOptions struct {
	Concurrency int
	MaxSize     int
}

// NewBatchService creates a BatchService. explainer and m may be nil.
func NewBatchService(
	scorer *ZScoreService,
	explainer *AIService,
	m *metrics.Metrics,
	opts BatchOptions,
) *BatchService {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultBatchConcurrency
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = DefaultMaxBatchSize
	}
	return &BatchService{
		scorer:      scorer,
		explainer:   explainer,
		metrics:     m,
		concurrency: opts.Concurrency,
		maxSize:     opts.MaxSize,
	}
}

// ScoreBatch scores every company and returns the rows in input order.
// A company that fails is reported in its row and does not stop the others;
// only context cancellation aborts the batch.
func (s *BatchService) ScoreBatch(
	ctx context.Context,
	companies []domain.CompanyRecord,
	explain bool,
) (domain.BatchResult, error) {

	if len(companies) == 0 {
		return domain.BatchResult{}, ErrEmptyBatch
	}
	if len(companies) > s.maxSize {
		return domain.BatchResult{}, fmt.Errorf("%w: %d companies, limit is %d", ErrBatchTooLarge, len(companies), s.maxSize)
	}

	start := time.Now()
	batchID := uuid.New()
	rows := make([]domain.ScoredCompany, len(companies))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, c := range companies {
		i, c := i, c
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows[i] = s.scoreOne(gctx, c, explain)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.BatchResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.BatchResult{}, err
	}

	failed := 0
	for _, row := range rows {
		if row.Error != "" {
			failed++
		}
	}

	if s.metrics != nil {
		s.metrics.BatchSeconds.Observe(time.Since(start).Seconds())
	}
	log.Info().
		Str("batch_id", batchID.String()).
		Int("companies", len(companies)).
		Int("failed", failed).
		Dur("elapsed", time.Since(start)).
		Msg("batch scored")

	return domain.BatchResult{
		BatchID:   batchID,
		Companies: rows,
		Failed:    failed,
	}, nil
}

func (s *BatchService) scoreOne(
	ctx context.Context,
	c domain.CompanyRecord,
	explain bool,
) domain.ScoredCompany {
	row := domain.ScoredCompany{Company: c.Company}

	result, err := s.scorer.ScoreCompany(ctx, c.Company, c.Record)
	if err != nil {
		log.Warn().Err(err).Str("company", c.Company).Msg("failed to score company")
		row.Error = err.Error()
		return row
	}
	row.Result = &result

	if explain && s.explainer != nil {
		// Score already succeeded, so the divisors are non-zero.
		ratios, _ := ComputeRatios(c.Record)
		row.Explanation = s.explainer.ExplainScore(ctx, c.Company, ratios, result)
	}
	return row
}
