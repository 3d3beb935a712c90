package wire

import (
	"audioathlete/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTeam(r chi.Router, teamHandler *adaptor.TeamHandler) {
	r.Route("/api/teams", func(r chi.Router) {
		r.Get("/", teamHandler.GetTeams)
		r.Post("/", teamHandler.CreateTeam)
		r.Get("/{id}", teamHandler.GetTeam)
		r.Delete("/{id}", teamHandler.DeleteTeam)
	})
}
