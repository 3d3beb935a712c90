package wire

import (
	"audioathlete/internal/adaptor"
	"audioathlete/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures registration and user management routes
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	verifier middleware.TokenVerifier,
	log *zap.Logger,
) {
	r.Route("/api/users", func(r chi.Router) {
		// ==================== PROTECTED ROUTES ====================
		r.With(middleware.AuthJWT(verifier, log)).Get("/me", userHandler.GetMe)

		// ==================== PUBLIC ROUTES ====================
		r.Post("/", userHandler.CreateUser)       // POST /api/users
		r.Get("/", userHandler.GetAllUsers)       // GET /api/users?page=1&per_page=10
		r.Get("/{id}", userHandler.GetUser)       // GET /api/users/{id}
		r.Delete("/{id}", userHandler.DeleteUser) // DELETE /api/users/{id}
	})
}
