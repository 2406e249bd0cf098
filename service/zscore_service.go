package service

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"solvency-engine/domain"
	"solvency-engine/metrics"
	"solvency-engine/repository"
)

// ZScoreService wraps Score with input validation, result memoization and
// score history.
type ZScoreService struct {
	repo    repository.ScoreRepository
	cache   repository.CacheRepository
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewZScoreService creates a new ZScoreService. m may be nil.
func NewZScoreService(
	repo repository.ScoreRepository,
	cache repository.CacheRepository,
	m *metrics.Metrics,
) *ZScoreService {
	return &ZScoreService{repo: repo, cache: cache, metrics: m, now: time.Now}
}

// cacheEntry keeps the input beside the result so a hash collision is
// detected on read instead of returning another record's score.
type cacheEntry struct {
	Input  domain.FinancialRecord `json:"input"`
	Result domain.ScoreResult     `json:"result"`
}

// cacheKey hashes the exact bit patterns of the inputs; Score is a pure
// function of them.
func cacheKey(r domain.FinancialRecord) string {
	values := [...]float64{
		r.TotalAssets,
		r.TotalLiabilities,
		r.RetainedEarnings,
		r.EBIT,
		r.MarketCapitalization,
		r.Sales,
	}
	var buf [len(values) * 8]byte
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return strconv.FormatUint(xxhash.Sum64(buf[:]), 16)
}

// ScoreCompany validates and scores record on behalf of company.
func (s *ZScoreService) ScoreCompany(
	ctx context.Context,
	company string,
	record domain.FinancialRecord,
) (domain.ScoreResult, error) {

	if err := ValidateRecord(record); err != nil {
		s.countError("invalid_record")
		return domain.ScoreResult{}, err
	}

	key := cacheKey(record)
	result, hit := s.cached(key, record)
	if !hit {
		var err error
		result, err = Score(record)
		if err != nil {
			switch {
			case errors.Is(err, ErrDivisionByZero):
				s.countError("division_by_zero")
			case errors.Is(err, ErrInvalidRecord):
				s.countError("invalid_record")
			}
			return domain.ScoreResult{}, err
		}
		if encoded, err := json.Marshal(cacheEntry{Input: record, Result: result}); err == nil {
			if err := s.cache.Set(key, string(encoded)); err != nil {
				log.Warn().Err(err).Str("company", company).Msg("failed to cache score")
			}
		}
	}

	if s.metrics != nil {
		s.metrics.Scores.WithLabelValues(result.Tier.String()).Inc()
	}

	// Saving history is not critical
	entry := domain.ScoreRecord{
		ID:        uuid.New(),
		Company:   company,
		Input:     record,
		Result:    result,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Save(ctx, entry); err != nil {
		log.Warn().Err(err).Str("company", company).Msg("failed to save score record")
	}

	log.Debug().
		Str("company", company).
		Float64("z_score", result.ZScore).
		Str("tier", result.Tier.String()).
		Bool("cached", hit).
		Msg("scored company")

	return result, nil
}

// History returns the most recent score records.
func (s *ZScoreService) History(ctx context.Context, limit int) ([]domain.ScoreRecord, error) {
	return s.repo.Recent(ctx, limit)
}

func (s *ZScoreService) cached(key string, record domain.FinancialRecord) (domain.ScoreResult, bool) {
	raw, ok := s.cache.Get(key)
	if !ok {
		return domain.ScoreResult{}, false
	}
	var entry cacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("discarding malformed cache entry")
		return domain.ScoreResult{}, false
	}
	if entry.Input != record {
		log.Debug().Str("key", key).Msg("cache entry belongs to another record")
		return domain.ScoreResult{}, false
	}
	if s.metrics != nil {
		s.metrics.CacheHits.Inc()
	}
	return entry.Result, true
}

func (s *ZScoreService) countError(reason string) {
	if s.metrics != nil {
		s.metrics.ScoreErrors.WithLabelValues(reason).Inc()
	}
}
