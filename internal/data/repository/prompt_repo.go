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

type PromptRepository interface {
	Create(ctx context.Context, prompt *entity.WorkoutPrompt) error
	FindByID(ctx context.Context, id int64) (*entity.WorkoutPrompt, error)
	// FindByWorkoutID returns prompts in creation order
	FindByWorkoutID(ctx context.Context, workoutID int64) ([]*entity.WorkoutPrompt, error)
	// SumBlockLength returns the total minutes of a workout's prompts
	SumBlockLength(ctx context.Context, workoutID int64) (int, error)
	Delete(ctx context.Context, id int64) error
}

type promptRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewPromptRepository(db database.Querier, log *zap.Logger) PromptRepository {
	return &promptRepository{
		db:  db,
		log: log.With(zap.String("repository", "prompt")),
	}
}

const promptColumns = `id, workout_id, block_length, instruction, created_at`

func scanPrompt(row rowScanner, prompt *entity.WorkoutPrompt) error {
	return row.Scan(
		&prompt.ID,
		&prompt.WorkoutID,
		&prompt.BlockLength,
		&prompt.Instruction,
		&prompt.CreatedAt,
	)
}

func (r *promptRepository) Create(ctx context.Context, prompt *entity.WorkoutPrompt) error {
	query := `
		INSERT INTO workout_prompts (workout_id, block_length, instruction)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		prompt.WorkoutID,
		prompt.BlockLength,
		prompt.Instruction,
	).Scan(&prompt.ID, &prompt.CreatedAt)

	if err != nil {
		r.log.Error("Failed to create prompt",
			zap.Error(err),
			zap.Int64("workout_id", prompt.WorkoutID),
		)
		return fmt.Errorf("create prompt for workout %d: %w", prompt.WorkoutID, classify(err))
	}

	return nil
}

func (r *promptRepository) FindByID(ctx context.Context, id int64) (*entity.WorkoutPrompt, error) {
	query := `SELECT ` + promptColumns + ` FROM workout_prompts WHERE id = $1`

	var prompt entity.WorkoutPrompt
	err := scanPrompt(r.db.QueryRow(ctx, query, id), &prompt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find prompt by ID", zap.Error(err), zap.Int64("prompt_id", id))
		return nil, fmt.Errorf("find prompt by ID %d: %w", id, err)
	}

	return &prompt, nil
}

func (r *promptRepository) FindByWorkoutID(ctx context.Context, workoutID int64) ([]*entity.WorkoutPrompt, error) {
	query := `
		SELECT ` + promptColumns + `
		FROM workout_prompts
		WHERE workout_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.Query(ctx, query, workoutID)
	if err != nil {
		r.log.Error("Failed to get workout prompts", zap.Error(err), zap.Int64("workout_id", workoutID))
		return nil, fmt.Errorf("find prompts of workout %d: %w", workoutID, err)
	}
	defer rows.Close()

	prompts := make([]*entity.WorkoutPrompt, 0)
	for rows.Next() {
		var prompt entity.WorkoutPrompt
		if err := scanPrompt(rows, &prompt); err != nil {
			r.log.Error("Failed to scan prompt row", zap.Error(err))
			return nil, fmt.Errorf("scan prompt row: %w", err)
		}
		prompts = append(prompts, &prompt)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate prompt rows: %w", err)
	}

	return prompts, nil
}

func (r *promptRepository) SumBlockLength(ctx context.Context, workoutID int64) (int, error) {
	query := `SELECT COALESCE(SUM(block_length), 0) FROM workout_prompts WHERE workout_id = $1`

	var total int
	if err := r.db.QueryRow(ctx, query, workoutID).Scan(&total); err != nil {
		r.log.Error("Failed to sum prompt lengths", zap.Error(err), zap.Int64("workout_id", workoutID))
		return 0, fmt.Errorf("sum prompt lengths of workout %d: %w", workoutID, err)
	}

	return total, nil
}

func (r *promptRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM workout_prompts WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete prompt", zap.Error(err), zap.Int64("id", id))
		return fmt.Errorf("delete prompt %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete prompt %d: %w", id, ErrNotFound)
	}

	r.log.Info("Prompt deleted", zap.Int64("id", id))
	return nil
}
