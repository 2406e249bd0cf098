package cmd

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"solvency-engine/config"
	"solvency-engine/metrics"
	"solvency-engine/repository"
	"solvency-engine/service"
)

// app holds the wired services shared by the score and serve commands.
type app struct {
	scorer    *service.ZScoreService
	batch     *service.BatchService
	explainer *service.AIService
	metrics   *metrics.Metrics
	closers   []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{metrics: metrics.New()}

	var cache repository.CacheRepository
	if cfg.Redis.Addr != "" {
		redisCache := repository.NewRedisCache(repository.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		})
		if err := redisCache.Ping(ctx); err != nil {
			redisCache.Close()
			a.Close()
			return nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
		}
		a.closers = append(a.closers, func() { redisCache.Close() })
		cache = redisCache
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis score cache")
	} else {
		cache = repository.NewMemoryCache(cfg.Redis.MemoryCacheSize)
	}

	var repo repository.ScoreRepository
	if cfg.Database.URL != "" {
		poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
		}
		poolCfg.MaxConns = cfg.Database.MaxConns

		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect database: %w", err)
		}
		a.closers = append(a.closers, pool.Close)

		pgRepo := repository.NewScoreRepositoryPostgres(pool)
		if err := pgRepo.Migrate(ctx); err != nil {
			a.Close()
			return nil, err
		}
		repo = pgRepo
		log.Info().Msg("using postgres score history")
	} else {
		repo = repository.NewScoreRepositoryMemory(cfg.Database.MemoryHistorySize)
	}

	a.explainer = service.NewAIService(cfg.AI.APIKey)
	a.scorer = service.NewZScoreService(repo, cache, a.metrics)
	a.batch = service.NewBatchService(a.scorer, a.explainer, a.metrics, service.BatchOptions{
		Concurrency: cfg.Scoring.BatchConcurrency,
		MaxSize:     cfg.Scoring.MaxBatchSize,
	})
	return a, nil
}
