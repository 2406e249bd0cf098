package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"solvency-engine/domain"
)

// Schema expected by ScoreRepositoryPostgres.
const ScoreHistorySchema = `
CREATE TABLE IF NOT EXISTS zscore_history (
	id                      UUID PRIMARY KEY,
	company                 TEXT NOT NULL,
	total_assets            DOUBLE PRECISION NOT NULL,
	total_liabilities       DOUBLE PRECISION NOT NULL,
	retained_earnings       DOUBLE PRECISION NOT NULL,
	ebit                    DOUBLE PRECISION NOT NULL,
	market_cap              DOUBLE PRECISION NOT NULL,
	sales                   DOUBLE PRECISION NOT NULL,
	z_score                 DOUBLE PRECISION NOT NULL,
	retained_earnings_ratio DOUBLE PRECISION NOT NULL,
	tier                    TEXT NOT NULL,
	created_at              TIMESTAMPTZ NOT NULL
)`

// ScoreRepositoryPostgres stores score history in PostgreSQL.
type ScoreRepositoryPostgres struct {
	db *pgxpool.Pool
}

func NewScoreRepositoryPostgres(db *pgxpool.Pool) *ScoreRepositoryPostgres {
	return &ScoreRepositoryPostgres{db: db}
}

// Migrate creates the history table if it does not exist.
func (r *ScoreRepositoryPostgres) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, ScoreHistorySchema); err != nil {
		return fmt.Errorf("create zscore_history: %w", err)
	}
	return nil
}

func (r *ScoreRepositoryPostgres) Save(ctx context.Context, record domain.ScoreRecord) error {
	query := `
		INSERT INTO zscore_history (
			id, company, total_assets, total_liabilities, retained_earnings,
			ebit, market_cap, sales, z_score, retained_earnings_ratio, tier, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO NOTHING
	`

	in := record.Input
	_, err := r.db.Exec(ctx, query,
		record.ID,
		record.Company,
		in.TotalAssets,
		in.TotalLiabilities,
		in.RetainedEarnings,
		in.EBIT,
		in.MarketCapitalization,
		in.Sales,
		record.Result.ZScore,
		record.Result.RetainedEarningsRatio,
		record.Result.Tier.String(),
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert score record: %w", err)
	}
	return nil
}

func (r *ScoreRepositoryPostgres) Recent(ctx context.Context, limit int) ([]domain.ScoreRecord, error) {
	query := `
		SELECT id, company, total_assets, total_liabilities, retained_earnings,
		       ebit, market_cap, sales, z_score, retained_earnings_ratio, tier, created_at
		FROM zscore_history
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query score history: %w", err)
	}
	defer rows.Close()

	var records []domain.ScoreRecord
	for rows.Next() {
		var (
			rec  domain.ScoreRecord
			tier string
		)
		err := rows.Scan(
			&rec.ID,
			&rec.Company,
			&rec.Input.TotalAssets,
			&rec.Input.TotalLiabilities,
			&rec.Input.RetainedEarnings,
			&rec.Input.EBIT,
			&rec.Input.MarketCapitalization,
			&rec.Input.Sales,
			&rec.Result.ZScore,
			&rec.Result.RetainedEarningsRatio,
			&tier,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan score record: %w", err)
		}
		if rec.Result.Tier, err = domain.ParseRiskTier(tier); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate score history: %w", err)
	}
	return records, nil
}
