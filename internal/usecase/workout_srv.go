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
	DefaultWorkoutsPerPage = 50

	msgWorkoutFieldsRequired = "Missing or invalid required fields."
	msgWorkoutTeamNotFound   = "Team not found."
	msgWorkoutCoachInvalid   = "Coach ID not found or not a coach."
	msgWorkoutNotFound       = "Workout not found."
)

type WorkoutService interface {
	GetAllWorkouts(ctx context.Context, req request.PaginatedRequest) ([]response.WorkoutResponse, error)
	GetWorkout(ctx context.Context, id int64) (*response.WorkoutResponse, error)
	CreateWorkout(ctx context.Context, req *request.CreateWorkoutRequest) (*response.CreateWorkoutResponse, error)
	DeleteWorkout(ctx context.Context, id int64) error
}

type workoutService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewWorkoutService(repo *repository.Repository, log *zap.Logger) WorkoutService {
	return &workoutService{
		repo: repo,
		log:  log.With(zap.String("service", "workout")),
	}
}

func (s *workoutService) GetAllWorkouts(ctx context.Context, req request.PaginatedRequest) ([]response.WorkoutResponse, error) {
	workouts, err := s.repo.Workout.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get all workouts", zap.Error(err), zap.Int("page", req.Page))
		return nil, StoreError(err)
	}

	workoutResponses := make([]response.WorkoutResponse, len(workouts))
	for i, workout := range workouts {
		workoutResponses[i] = response.WorkoutToResponse(workout)
	}
	return workoutResponses, nil
}

func (s *workoutService) GetWorkout(ctx context.Context, id int64) (*response.WorkoutResponse, error) {
	workout, err := s.repo.Workout.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find workout", zap.Error(err), zap.Int64("workout_id", id))
		return nil, StoreError(err)
	}
	if workout == nil {
		return nil, NotFoundError(msgWorkoutNotFound)
	}

	resp := response.WorkoutToResponse(workout)
	return &resp, nil
}

// CreateWorkout inserts an empty workout; its length grows as prompts are added
func (s *workoutService) CreateWorkout(ctx context.Context, req *request.CreateWorkoutRequest) (*response.CreateWorkoutResponse, error) {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create workout validation failed", zap.String("errors", utils.FormatValidationErrors(errs)))
		return nil, FieldValidationError(msgWorkoutFieldsRequired, errs)
	}

	// 1. Check parents
	team, err := s.repo.Team.FindByID(ctx, req.TeamID)
	if err != nil {
		s.log.Error("Failed to find workout team", zap.Error(err), zap.Int64("team_id", req.TeamID))
		return nil, StoreError(err)
	}
	if team == nil {
		return nil, ReferenceError(msgWorkoutTeamNotFound)
	}

	coach, err := s.repo.User.FindByID(ctx, req.CoachID)
	if err != nil {
		s.log.Error("Failed to find workout coach", zap.Error(err), zap.Int64("coach_id", req.CoachID))
		return nil, StoreError(err)
	}
	if coach == nil || !coach.IsCoach() {
		return nil, ReferenceError(msgWorkoutCoachInvalid)
	}

	// 2. Insert
	workout := &entity.Workout{
		TeamID:         req.TeamID,
		CoachID:        req.CoachID,
		Title:          req.Title,
		TotalLengthSec: 0,
		ScheduledDate:  req.ScheduledDate.Time,
	}
	if err := s.repo.Workout.Create(ctx, workout); err != nil {
		// a parent deleted between the check and the insert
		if errors.Is(err, repository.ErrReferenced) {
			return nil, ReferenceError(msgWorkoutTeamNotFound)
		}
		s.log.Error("Failed to create workout", zap.Error(err), zap.String("title", workout.Title))
		return nil, StoreError(err)
	}

	s.log.Info("Workout created",
		zap.Int64("workout_id", workout.ID),
		zap.Int64("team_id", workout.TeamID),
		zap.Time("scheduled_date", workout.ScheduledDate),
	)

	return &response.CreateWorkoutResponse{
		Message:   "Workout created successfully!",
		WorkoutID: workout.ID,
	}, nil
}

// DeleteWorkout removes the workout; its prompts cascade
func (s *workoutService) DeleteWorkout(ctx context.Context, id int64) error {
	if err := s.repo.Workout.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundError(msgWorkoutNotFound)
		}
		s.log.Error("Failed to delete workout", zap.Error(err), zap.Int64("workout_id", id))
		return StoreError(err)
	}

	s.log.Info("Workout deleted", zap.Int64("workout_id", id))
	return nil
}
