package adaptor

import (
	"audioathlete/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Team    *TeamHandler
	Workout *WorkoutHandler
	Prompt  *PromptHandler
	Test    *TestHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Team:    NewTeamHandler(service.Team, log),
		Workout: NewWorkoutHandler(service.Workout, log),
		Prompt:  NewPromptHandler(service.Prompt, log),
		Test:    NewTestHandler(service.Diagnostics, log),
	}
}
