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

type WorkoutRepository interface {
	Create(ctx context.Context, workout *entity.Workout) error
	FindByID(ctx context.Context, id int64) (*entity.Workout, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Workout, error)
	CountByTeam(ctx context.Context, teamID int64) (int64, error)
	UpdateTotalLength(ctx context.Context, id int64, totalSec int) error
	Delete(ctx context.Context, id int64) error
}

type workoutRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewWorkoutRepository(db database.Querier, log *zap.Logger) WorkoutRepository {
	return &workoutRepository{
		db:  db,
		log: log.With(zap.String("repository", "workout")),
	}
}

const workoutColumns = `id, team_id, coach_id, title, total_length_sec, scheduled_date, created_at`

func scanWorkout(row rowScanner, workout *entity.Workout) error {
	return row.Scan(
		&workout.ID,
		&workout.TeamID,
		&workout.CoachID,
		&workout.Title,
		&workout.TotalLengthSec,
		&workout.ScheduledDate,
		&workout.CreatedAt,
	)
}

func (r *workoutRepository) Create(ctx context.Context, workout *entity.Workout) error {
	query := `
		INSERT INTO workouts (team_id, coach_id, title, total_length_sec, scheduled_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		workout.TeamID,
		workout.CoachID,
		workout.Title,
		workout.TotalLengthSec,
		workout.ScheduledDate,
	).Scan(&workout.ID, &workout.CreatedAt)

	if err != nil {
		r.log.Error("Failed to create workout",
			zap.Error(err),
			zap.Int64("team_id", workout.TeamID),
			zap.Int64("coach_id", workout.CoachID),
		)
		return fmt.Errorf("create workout %s: %w", workout.Title, classify(err))
	}

	return nil
}

func (r *workoutRepository) FindByID(ctx context.Context, id int64) (*entity.Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE id = $1`

	var workout entity.Workout
	err := scanWorkout(r.db.QueryRow(ctx, query, id), &workout)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find workout by ID", zap.Error(err), zap.Int64("workout_id", id))
		return nil, fmt.Errorf("find workout by ID %d: %w", id, err)
	}

	return &workout, nil
}

// FindAll lists workouts, most recently scheduled first
func (r *workoutRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Workout, error) {
	query := `
		SELECT ` + workoutColumns + `
		FROM workouts
		ORDER BY scheduled_date DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to get all workouts",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all workouts limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	workouts := make([]*entity.Workout, 0)
	for rows.Next() {
		var workout entity.Workout
		if err := scanWorkout(rows, &workout); err != nil {
			r.log.Error("Failed to scan workout row", zap.Error(err))
			return nil, fmt.Errorf("scan workout row: %w", err)
		}
		workouts = append(workouts, &workout)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate workouts rows: %w", err)
	}

	return workouts, nil
}

func (r *workoutRepository) CountByTeam(ctx context.Context, teamID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM workouts WHERE team_id = $1`, teamID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count team workouts", zap.Error(err), zap.Int64("team_id", teamID))
		return 0, fmt.Errorf("count workouts of team %d: %w", teamID, err)
	}

	return count, nil
}

func (r *workoutRepository) UpdateTotalLength(ctx context.Context, id int64, totalSec int) error {
	result, err := r.db.Exec(ctx, `UPDATE workouts SET total_length_sec = $2 WHERE id = $1`, id, totalSec)
	if err != nil {
		r.log.Error("Failed to update workout length",
			zap.Error(err),
			zap.Int64("workout_id", id),
			zap.Int("total_length_sec", totalSec),
		)
		return fmt.Errorf("update length of workout %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update length of workout %d: %w", id, ErrNotFound)
	}

	return nil
}

func (r *workoutRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM workouts WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete workout", zap.Error(err), zap.Int64("id", id))
		return fmt.Errorf("delete workout %d: %w", id, classify(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete workout %d: %w", id, ErrNotFound)
	}

	r.log.Info("Workout deleted", zap.Int64("id", id))
	return nil
}
