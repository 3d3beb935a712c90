package repository

import (
	"context"

	"audioathlete/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	User       UserRepository
	Team       TeamRepository
	TeamPlayer TeamPlayerRepository
	Workout    WorkoutRepository
	Prompt     PromptRepository
	Health     HealthRepository

	// Tx opens a unit of work whose repositories share one transaction
	Tx Transactor
}

// Transactor runs fn with a Repository bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(tx *Repository) error) error
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newRepository(db, log)
	repo.Tx = &pgTransactor{db: db, log: log}
	return repo
}

func newRepository(db database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		User:       NewUserRepository(db, log),
		Team:       NewTeamRepository(db, log),
		TeamPlayer: NewTeamPlayerRepository(db, log),
		Workout:    NewWorkoutRepository(db, log),
		Prompt:     NewPromptRepository(db, log),
		Health:     NewHealthRepository(db, log),
	}
}

type pgTransactor struct {
	db  database.PgxIface
	log *zap.Logger
}

func (t *pgTransactor) WithinTx(ctx context.Context, fn func(tx *Repository) error) error {
	return database.WithTx(ctx, t.db, func(tx pgx.Tx) error {
		txRepo := newRepository(tx, t.log)
		txRepo.Tx = joinedTransactor{repo: txRepo}
		return fn(txRepo)
	})
}

// joinedTransactor lets code already inside a transaction call WithinTx
// again; the inner unit joins the outer transaction.
type joinedTransactor struct {
	repo *Repository
}

func (j joinedTransactor) WithinTx(_ context.Context, fn func(tx *Repository) error) error {
	return fn(j.repo)
}
