package usecase

import (
	"context"
	"errors"
	"fmt"

	"audioathlete/internal/data/entity"
	"audioathlete/internal/data/repository"
	"audioathlete/internal/dto/request"
	"audioathlete/internal/dto/response"
	"audioathlete/pkg/utils"

	"go.uber.org/zap"
)

const (
	DefaultUsersPerPage = 10

	msgUserFieldsRequired  = "Name, Username, Password, and UserType are required."
	msgInvalidUserFields   = "Invalid user fields."
	msgPasswordTooLong     = "Password must be at most 72 bytes."
	msgCoachFieldsRequired = "Email and team name are required for coaches."
	msgCoachIDRequired     = "A valid coach ID is required for players."
	msgUnknownUserType     = "User type must be 'coach' or 'player'."
	msgInvalidCoach        = "Invalid coach or coach has no team."
	msgUsernameTaken       = "Username is already taken."
	msgUserNotFound        = "User not found."
	msgCoachOwnsTeam       = "Coach still owns a team; delete the team first."
	msgUserReferenced      = "User is still referenced by workouts."
)

type UserService interface {
	CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.CreateUserResponse, error)
	GetAllUsers(ctx context.Context, req request.PaginatedRequest) ([]response.UserResponse, error)
	GetUser(ctx context.Context, id int64) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, id int64) error
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

// CreateUser provisions a user and, depending on the role, the coach's team
// or the player's membership. Everything happens in one transaction.
func (s *userService) CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.CreateUserResponse, error) {
	// 1. Validate, no store access before this passes
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create user validation failed", zap.String("errors", utils.FormatValidationErrors(errs)))
		if utils.HasRequiredError(errs) {
			return nil, FieldValidationError(msgUserFieldsRequired, errs)
		}
		return nil, FieldValidationError(msgInvalidUserFields, errs)
	}

	// bcrypt limits bytes, the max tag counts runes
	if len(req.Password) > utils.MaxPasswordBytes {
		return nil, FieldValidationError(msgPasswordTooLong, map[string]string{
			"password": fmt.Sprintf("Maximum length is %d bytes", utils.MaxPasswordBytes),
		})
	}

	role := entity.UserRole(req.UserType)
	switch role {
	case entity.RoleCoach:
		if req.Email == nil || req.TeamName == nil {
			return nil, ValidationError(msgCoachFieldsRequired)
		}
	case entity.RolePlayer:
		if req.CoachID == nil || *req.CoachID <= 0 {
			return nil, ValidationError(msgCoachIDRequired)
		}
	default:
		s.log.Warn("Unknown user type", zap.String("user_type", req.UserType))
		return nil, ValidationError(msgUnknownUserType)
	}

	// 2. Hash password
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, StoreError(err)
	}

	user := &entity.User{
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: hashed,
		Role:         role,
	}
	if role == entity.RoleCoach {
		user.Email = req.Email
	}

	// 3. Insert user and link the team in one unit of work
	var teamID int64
	err = s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		existing, err := tx.User.FindByUsername(ctx, user.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			return ConflictError(msgUsernameTaken, nil)
		}

		if err := tx.User.Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ConflictError(msgUsernameTaken, err)
			}
			return err
		}

		if role == entity.RoleCoach {
			teamID, err = s.provisionCoachTeam(ctx, tx, user, *req.TeamName)
		} else {
			teamID, err = s.joinCoachTeam(ctx, tx, user, *req.CoachID)
		}
		return err
	})
	if err != nil {
		svcErr := asServiceError(err)
		if svcErr.Kind == KindStore {
			s.log.Error("Failed to provision user", zap.Error(err), zap.String("username", user.Username))
		} else {
			s.log.Warn("User provisioning rejected", zap.Error(err), zap.String("username", user.Username))
		}
		return nil, svcErr
	}

	s.log.Info("User created",
		zap.Int64("user_id", user.ID),
		zap.String("user_type", string(role)),
		zap.Int64("team_id", teamID),
	)

	return &response.CreateUserResponse{
		Message:        "User created successfully!",
		UserID:         user.ID,
		AssignedTeamID: &teamID,
	}, nil
}

// provisionCoachTeam creates the coach's team and points the coach at it
func (s *userService) provisionCoachTeam(ctx context.Context, tx *repository.Repository, coach *entity.User, teamName string) (int64, error) {
	team := &entity.Team{Name: teamName, CoachID: coach.ID}
	if err := tx.Team.Create(ctx, team); err != nil {
		return 0, err
	}
	if err := tx.User.UpdateTeam(ctx, coach.ID, team.ID); err != nil {
		return 0, err
	}
	coach.TeamID = &team.ID
	return team.ID, nil
}

// joinCoachTeam places a player on the team owned by coachID
func (s *userService) joinCoachTeam(ctx context.Context, tx *repository.Repository, player *entity.User, coachID int64) (int64, error) {
	teamID, err := tx.User.FindCoachTeamID(ctx, coachID)
	if err != nil {
		return 0, err
	}
	if teamID == nil {
		return 0, ReferenceError(msgInvalidCoach)
	}

	if err := tx.User.UpdateTeam(ctx, player.ID, *teamID); err != nil {
		return 0, err
	}
	if err := tx.TeamPlayer.Create(ctx, *teamID, player.ID); err != nil {
		return 0, err
	}
	player.TeamID = teamID
	return *teamID, nil
}

func (s *userService) GetAllUsers(ctx context.Context, req request.PaginatedRequest) ([]response.UserResponse, error) {
	users, err := s.repo.User.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, StoreError(err)
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	s.log.Debug("Users retrieved", zap.Int("count", len(users)), zap.Int("page", req.Page))
	return userResponses, nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.Int64("user_id", id))
		return nil, StoreError(err)
	}
	if user == nil {
		return nil, NotFoundError(msgUserNotFound)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// DeleteUser removes a user and their memberships. A coach who still owns a
// team is refused, as is any user still referenced by workouts.
func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	err := s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		user, err := tx.User.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return NotFoundError(msgUserNotFound)
		}

		if user.IsCoach() {
			team, err := tx.Team.FindByCoachID(ctx, id)
			if err != nil {
				return err
			}
			if team != nil {
				return ConflictError(msgCoachOwnsTeam, nil)
			}
		}

		if err := tx.TeamPlayer.DeleteByPlayer(ctx, id); err != nil {
			return err
		}

		if err := tx.User.Delete(ctx, id); err != nil {
			switch {
			case errors.Is(err, repository.ErrNotFound):
				return NotFoundError(msgUserNotFound)
			case errors.Is(err, repository.ErrReferenced):
				return ConflictError(msgUserReferenced, err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		svcErr := asServiceError(err)
		if svcErr.Kind == KindStore {
			s.log.Error("Failed to delete user", zap.Error(err), zap.Int64("user_id", id))
		}
		return svcErr
	}

	s.log.Info("User deleted", zap.Int64("user_id", id))
	return nil
}
