package repository

import (
	"context"
	"fmt"

	"audioathlete/pkg/database"

	"go.uber.org/zap"
)

// HealthRepository checks that the database answers queries.
type HealthRepository interface {
	Probe(ctx context.Context) (int, error)
}

type healthRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewHealthRepository(db database.Querier, log *zap.Logger) HealthRepository {
	return &healthRepository{
		db:  db,
		log: log.With(zap.String("repository", "health")),
	}
}

// Probe runs SELECT 1 and returns the value read back
func (r *healthRepository) Probe(ctx context.Context) (int, error) {
	var value int
	if err := r.db.QueryRow(ctx, `SELECT 1 AS test_value`).Scan(&value); err != nil {
		r.log.Error("Database probe failed", zap.Error(err))
		return 0, fmt.Errorf("probe database: %w", err)
	}
	return value, nil
}
