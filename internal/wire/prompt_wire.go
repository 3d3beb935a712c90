package wire

import (
	"audioathlete/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePrompt(r chi.Router, promptHandler *adaptor.PromptHandler) {
	r.Route("/api/prompts", func(r chi.Router) {
		r.Post("/", promptHandler.CreatePrompt)
		// GET takes a workout id, DELETE a prompt id
		r.Get("/{id}", promptHandler.GetWorkoutPrompts)
		r.Delete("/{id}", promptHandler.DeletePrompt)
	})
}
