package wire

import (
	"audioathlete/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireTest mounts the connectivity checks
func wireTest(r chi.Router, testHandler *adaptor.TestHandler) {
	r.Get("/api/test", testHandler.Probe)
	r.Post("/api/test", testHandler.Echo)

	// Health check endpoint
	r.Get("/health", testHandler.Health)
}
