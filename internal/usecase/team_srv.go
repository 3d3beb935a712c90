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
	DefaultTeamsPerPage = 25

	msgTeamFieldsRequired = "Team name and valid coach_id are required."
	msgCoachNotFound      = "Coach ID not found or not a coach."
	msgCoachHasTeam       = "Coach already owns a team."
	msgTeamNotFound       = "Team not found."
	msgTeamHasWorkouts    = "Team still has workouts; delete them first."
)

type TeamService interface {
	GetAllTeams(ctx context.Context, req request.PaginatedRequest) ([]response.TeamResponse, error)
	GetTeam(ctx context.Context, id int64) (*response.TeamResponse, error)
	CreateTeam(ctx context.Context, req *request.CreateTeamRequest) (*response.CreateTeamResponse, error)
	DeleteTeam(ctx context.Context, id int64) error
}

type teamService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTeamService(repo *repository.Repository, log *zap.Logger) TeamService {
	return &teamService{
		repo: repo,
		log:  log.With(zap.String("service", "team")),
	}
}

func (s *teamService) GetAllTeams(ctx context.Context, req request.PaginatedRequest) ([]response.TeamResponse, error) {
	teams, err := s.repo.Team.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get all teams", zap.Error(err), zap.Int("page", req.Page))
		return nil, StoreError(err)
	}

	teamResponses := make([]response.TeamResponse, len(teams))
	for i, team := range teams {
		teamResponses[i] = response.TeamToResponse(team)
	}
	return teamResponses, nil
}

// GetTeam returns the team with its coach name and player ids
func (s *teamService) GetTeam(ctx context.Context, id int64) (*response.TeamResponse, error) {
	team, err := s.repo.Team.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find team", zap.Error(err), zap.Int64("team_id", id))
		return nil, StoreError(err)
	}
	if team == nil {
		return nil, NotFoundError(msgTeamNotFound)
	}

	playerIDs, err := s.repo.TeamPlayer.FindPlayerIDs(ctx, id)
	if err != nil {
		s.log.Error("Failed to list team players", zap.Error(err), zap.Int64("team_id", id))
		return nil, StoreError(err)
	}

	resp := response.TeamToResponse(team)
	resp.PlayerIDs = playerIDs
	return &resp, nil
}

func (s *teamService) CreateTeam(ctx context.Context, req *request.CreateTeamRequest) (*response.CreateTeamResponse, error) {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create team validation failed", zap.String("errors", utils.FormatValidationErrors(errs)))
		return nil, FieldValidationError(msgTeamFieldsRequired, errs)
	}

	team := &entity.Team{Name: req.Name, CoachID: req.CoachID}

	err := s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		coach, err := tx.User.FindByID(ctx, req.CoachID)
		if err != nil {
			return err
		}
		if coach == nil || !coach.IsCoach() {
			return ReferenceError(msgCoachNotFound)
		}

		if err := tx.Team.Create(ctx, team); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ConflictError(msgCoachHasTeam, err)
			}
			return err
		}

		// keep an existing team reference untouched
		if coach.TeamID == nil {
			return tx.User.UpdateTeam(ctx, coach.ID, team.ID)
		}
		return nil
	})
	if err != nil {
		svcErr := asServiceError(err)
		if svcErr.Kind == KindStore {
			s.log.Error("Failed to create team", zap.Error(err), zap.String("name", team.Name))
		} else {
			s.log.Warn("Create team rejected", zap.Error(err), zap.Int64("coach_id", req.CoachID))
		}
		return nil, svcErr
	}

	s.log.Info("Team created", zap.Int64("team_id", team.ID), zap.Int64("coach_id", team.CoachID))

	return &response.CreateTeamResponse{
		Message: "Team added successfully!",
		TeamID:  team.ID,
	}, nil
}

// DeleteTeam refuses teams that still have workouts. Otherwise memberships
// and user references go with the team.
func (s *teamService) DeleteTeam(ctx context.Context, id int64) error {
	err := s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		team, err := tx.Team.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if team == nil {
			return NotFoundError(msgTeamNotFound)
		}

		workouts, err := tx.Workout.CountByTeam(ctx, id)
		if err != nil {
			return err
		}
		if workouts > 0 {
			return ConflictError(msgTeamHasWorkouts, nil)
		}

		if err := tx.TeamPlayer.DeleteByTeam(ctx, id); err != nil {
			return err
		}
		if err := tx.User.ClearTeam(ctx, id); err != nil {
			return err
		}

		if err := tx.Team.Delete(ctx, id); err != nil {
			switch {
			case errors.Is(err, repository.ErrNotFound):
				return NotFoundError(msgTeamNotFound)
			case errors.Is(err, repository.ErrReferenced):
				return ConflictError(msgTeamHasWorkouts, err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		svcErr := asServiceError(err)
		if svcErr.Kind == KindStore {
			s.log.Error("Failed to delete team", zap.Error(err), zap.Int64("team_id", id))
		}
		return svcErr
	}

	s.log.Info("Team deleted", zap.Int64("team_id", id))
	return nil
}
