package usecase

import (
	"audioathlete/internal/data/repository"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	User        UserService
	Team        TeamService
	Workout     WorkoutService
	Prompt      PromptService
	Diagnostics DiagnosticsService
}

func NewService(repo *repository.Repository, issuer TokenIssuer, log *zap.Logger) *Service {
	return &Service{
		Auth:        NewAuthService(repo.User, issuer, log),
		User:        NewUserService(repo, log),
		Team:        NewTeamService(repo, log),
		Workout:     NewWorkoutService(repo, log),
		Prompt:      NewPromptService(repo, log),
		Diagnostics: NewDiagnosticsService(repo.Health, log),
	}
}
