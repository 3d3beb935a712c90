package usecase

import (
	"context"
	"errors"

	"audioathlete/internal/data/entity"
	"audioathlete/internal/data/repository"
	"audioathlete/internal/dto/request"
	"audioathlete/internal/dto/response"
	"audioathlete/pkg/utils"

	"go.uber.org/zap"
)

const (
	msgPromptFieldsRequired = "WorkoutId, BlockLength, and Instruction are required."
	msgPromptNotFound       = "Prompt not found."
)

type PromptService interface {
	GetWorkoutPrompts(ctx context.Context, workoutID int64) (*response.WorkoutPromptsResponse, error)
	CreatePrompt(ctx context.Context, req *request.CreatePromptRequest) (*response.CreatePromptResponse, error)
	DeletePrompt(ctx context.Context, id int64) error
}

type promptService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPromptService(repo *repository.Repository, log *zap.Logger) PromptService {
	return &promptService{
		repo: repo,
		log:  log.With(zap.String("service", "prompt")),
	}
}

// GetWorkoutPrompts lists prompts in creation order with their summed
// length in minutes. An unknown workout yields an empty list.
func (s *promptService) GetWorkoutPrompts(ctx context.Context, workoutID int64) (*response.WorkoutPromptsResponse, error) {
	prompts, err := s.repo.Prompt.FindByWorkoutID(ctx, workoutID)
	if err != nil {
		s.log.Error("Failed to get workout prompts", zap.Error(err), zap.Int64("workout_id", workoutID))
		return nil, StoreError(err)
	}

	resp := &response.WorkoutPromptsResponse{
		WorkoutID: workoutID,
		Prompts:   make([]response.PromptResponse, len(prompts)),
	}
	for i, prompt := range prompts {
		resp.TotalLengthMinutes += prompt.BlockLength
		resp.Prompts[i] = response.PromptToResponse(prompt)
	}
	return resp, nil
}

func (s *promptService) CreatePrompt(ctx context.Context, req *request.CreatePromptRequest) (*response.CreatePromptResponse, error) {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create prompt validation failed", zap.String("errors", utils.FormatValidationErrors(errs)))
		return nil, FieldValidationError(msgPromptFieldsRequired, errs)
	}

	prompt := &entity.WorkoutPrompt{
		WorkoutID:   req.WorkoutID,
		BlockLength: req.BlockLength,
		Instruction: req.Instruction,
	}

	var totalSec int
	err := s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		workout, err := tx.Workout.FindByID(ctx, req.WorkoutID)
		if err != nil {
			return err
		}
		if workout == nil {
			return ReferenceError(msgWorkoutNotFound)
		}

		if err := tx.Prompt.Create(ctx, prompt); err != nil {
			if errors.Is(err, repository.ErrReferenced) {
				return ReferenceError(msgWorkoutNotFound)
			}
			return err
		}

		totalSec, err = recomputeWorkoutLength(ctx, tx, req.WorkoutID)
		return err
	})
	if err != nil {
		svcErr := asServiceError(err)
		if svcErr.Kind == KindStore {
			s.log.Error("Failed to add prompt", zap.Error(err), zap.Int64("workout_id", req.WorkoutID))
		}
		return nil, svcErr
	}

	s.log.Info("Prompt added",
		zap.Int64("prompt_id", prompt.ID),
		zap.Int64("workout_id", prompt.WorkoutID),
		zap.Int("total_length_sec", totalSec),
	)

	return &response.CreatePromptResponse{
		Message:  "Prompt added successfully!",
		PromptID: prompt.ID,
	}, nil
}

func (s *promptService) DeletePrompt(ctx context.Context, id int64) error {
	err := s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		prompt, err := tx.Prompt.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if prompt == nil {
			return NotFoundError(msgPromptNotFound)
		}

		if err := tx.Prompt.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return NotFoundError(msgPromptNotFound)
			}
			return err
		}

		_, err = recomputeWorkoutLength(ctx, tx, prompt.WorkoutID)
		return err
	})
	if err != nil {
		svcErr := asServiceError(err)
		if svcErr.Kind == KindStore {
			s.log.Error("Failed to delete prompt", zap.Error(err), zap.Int64("prompt_id", id))
		}
		return svcErr
	}

	s.log.Info("Prompt deleted", zap.Int64("prompt_id", id))
	return nil
}

// recomputeWorkoutLength stores sum(block_length) minutes as seconds on the
// workout and returns the new total.
func recomputeWorkoutLength(ctx context.Context, tx *repository.Repository, workoutID int64) (int, error) {
	minutes, err := tx.Prompt.SumBlockLength(ctx, workoutID)
	if err != nil {
		return 0, err
	}

	totalSec := minutes * 60
	if err := tx.Workout.UpdateTotalLength(ctx, workoutID, totalSec); err != nil {
		return 0, err
	}
	return totalSec, nil
}
