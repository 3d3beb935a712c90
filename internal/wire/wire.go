// internal/wire/wire.go
package wire

import (
	"audioathlete/internal/adaptor"
	"audioathlete/internal/data/repository"
	"audioathlete/internal/usecase"
	"audioathlete/pkg/middleware"
	"audioathlete/pkg/token"
	"audioathlete/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the assembled HTTP surface
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and the router on top of repo
func Wiring(repo *repository.Repository, config *utils.Config, issuer *token.Issuer, logger *zap.Logger) *App {
	service := usecase.NewService(repo, issuer, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, issuer, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	verifier middleware.TokenVerifier,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))

	// Apply routes
	wireAuth(r, handler.Auth)
	wireUser(r, handler.User, verifier, logger)
	wireTeam(r, handler.Team)
	wireWorkout(r, handler.Workout)
	wirePrompt(r, handler.Prompt)
	wireTest(r, handler.Test)

	return r
}
