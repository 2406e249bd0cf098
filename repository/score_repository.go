package repository

import (
	"context"

	"solvency-engine/domain"
)

type ScoreRepository interface {
	Save(ctx context.Context, record domain.ScoreRecord) error
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.ScoreRecord, error)
}
