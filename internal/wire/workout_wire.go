package wire

import (
	"audioathlete/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireWorkout(r chi.Router, workoutHandler *adaptor.WorkoutHandler) {
	r.Route("/api/workouts", func(r chi.Router) {
		r.Get("/", workoutHandler.GetWorkouts)
		r.Post("/", workoutHandler.CreateWorkout)
		r.Get("/{id}", workoutHandler.GetWorkout)
		r.Delete("/{id}", workoutHandler.DeleteWorkout)
	})
}
