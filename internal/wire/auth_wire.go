package wire

import (
	"audioathlete/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/login", authHandler.Login)
}
