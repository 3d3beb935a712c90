package repository

import (
	"context"
	"errors"
	"fmt"

	"audioathlete/internal/data/entity"
	"audioathlete/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TeamRepository interface {
	Create(ctx context.Context, team *entity.Team) error
	FindByID(ctx context.Context, id int64) (*entity.Team, error)
	FindByCoachID(ctx context.Context, coachID int64) (*entity.Team, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Team, error)
	Delete(ctx context.Context, id int64) error
}

type teamRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewTeamRepository(db database.Querier, log *zap.Logger) TeamRepository {
	return &teamRepository{
		db:  db,
		log: log.With(zap.String("repository", "team")),
	}
}

const teamSelect = `
	SELECT t.id, t.name, t.coach_id, u.name AS coach_name, t.created_at
	FROM teams t
	LEFT JOIN users u ON t.coach_id = u.id
`

func scanTeam(row rowScanner, team *entity.Team) error {
	return row.Scan(
		&team.ID,
		&team.Name,
		&team.CoachID,
		&team.CoachName,
		&team.CreatedAt,
	)
}

func (r *teamRepository) Create(ctx context.Context, team *entity.Team) error {
	query := `
		INSERT INTO teams (coach_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, team.CoachID, team.Name).Scan(&team.ID, &team.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create team",
			zap.Error(err),
			zap.String("name", team.Name),
			zap.Int64("coach_id", team.CoachID),
		)
		return fmt.Errorf("create team %s: %w", team.Name, classify(err))
	}

	return nil
}

func (r *teamRepository) FindByID(ctx context.Context, id int64) (*entity.Team, error) {
	return r.findOne(ctx, teamSelect+` WHERE t.id = $1`, id, "find team by ID")
}

func (r *teamRepository) FindByCoachID(ctx context.Context, coachID int64) (*entity.Team, error) {
	return r.findOne(ctx, teamSelect+` WHERE t.coach_id = $1`, coachID, "find team by coach")
}

func (r *teamRepository) findOne(ctx context.Context, query string, arg int64, op string) (*entity.Team, error) {
	var team entity.Team
	err := scanTeam(r.db.QueryRow(ctx, query, arg), &team)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err), zap.Int64("id", arg))
		return nil, fmt.Errorf("%s %d: %w", op, arg, err)
	}

	return &team, nil
}

func (r *teamRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Team, error) {
	query := teamSelect + `
		ORDER BY t.id ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to get all teams",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all teams limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	teams := make([]*entity.Team, 0)
	for rows.Next() {
		var team entity.Team
		if err := scanTeam(rows, &team); err != nil {
			r.log.Error("Failed to scan team row", zap.Error(err))
			return nil, fmt.Errorf("scan team row: %w", err)
		}
		teams = append(teams, &team)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate teams rows: %w", err)
	}

	return teams, nil
}

func (r *teamRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete team", zap.Error(err), zap.Int64("id", id))
		return fmt.Errorf("delete team %d: %w", id, classify(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete team %d: %w", id, ErrNotFound)
	}

	r.log.Info("Team deleted", zap.Int64("id", id))
	return nil
}
