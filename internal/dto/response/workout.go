package response

import (
	"time"

	"audioathlete/internal/data/entity"
)

type WorkoutResponse struct {
	ID             int64     `json:"id"`
	TeamID         int64     `json:"teamId"`
	CoachID        int64     `json:"coachId"`
	Title          string    `json:"title"`
	TotalLengthSec int       `json:"totalLengthSec"`
	ScheduledDate  time.Time `json:"scheduledDate"`
	CreatedAt      time.Time `json:"createdAt"`
}

type CreateWorkoutResponse struct {
	Message   string `json:"message"`
	WorkoutID int64  `json:"workout_id"`
}

func WorkoutToResponse(workout *entity.Workout) WorkoutResponse {
	return WorkoutResponse{
		ID:             workout.ID,
		TeamID:         workout.TeamID,
		CoachID:        workout.CoachID,
		Title:          workout.Title,
		TotalLengthSec: workout.TotalLengthSec,
		ScheduledDate:  workout.ScheduledDate,
		CreatedAt:      workout.CreatedAt,
	}
}
