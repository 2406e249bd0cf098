package repository

import (
	"context"
	"sync"

	"solvency-engine/domain"
)

// DefaultHistorySize bounds a ScoreRepositoryMemory created with a
// non-positive size.
const DefaultHistorySize = 1_000

// ScoreRepositoryMemory is an in-memory implementation of ScoreRepository.
// It keeps the newest records in a ring buffer; older ones are overwritten.
type ScoreRepositoryMemory struct {
	mu   sync.RWMutex
	data []domain.ScoreRecord
	next int // slot of the next write once data is full
}

// NewScoreRepositoryMemory creates an in-memory score repository holding at
// most size records.
func NewScoreRepositoryMemory(size int) *ScoreRepositoryMemory {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &ScoreRepositoryMemory{
		data: make([]domain.ScoreRecord, 0, size),
	}
}

// Save stores the score record in memory.
func (r *ScoreRepositoryMemory) Save(
	_ context.Context,
	record domain.ScoreRecord,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.data) < cap(r.data) {
		r.data = append(r.data, record)
		return nil
	}
	r.data[r.next] = record
	r.next = (r.next + 1) % len(r.data)
	return nil
}

func (r *ScoreRepositoryMemory) Recent(
	_ context.Context,
	limit int,
) ([]domain.ScoreRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.data)
	if limit <= 0 || limit > n {
		limit = n
	}
	// Until the buffer wraps, next is 0 and the newest record sits at n-1.
	out := make([]domain.ScoreRecord, 0, limit)
	for i := 1; i <= limit; i++ {
		out = append(out, r.data[(r.next-i+n)%n])
	}
	return out, nil
}

func (r *ScoreRepositoryMemory) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}
