package response

import (
	"time"

	"audioathlete/internal/data/entity"
)

type TeamResponse struct {
	ID        int64     `json:"id"`
	TeamName  string    `json:"teamName"`
	CoachID   int64     `json:"coachId"`
	CoachName *string   `json:"coachName"`
	PlayerIDs []int64   `json:"playerIds,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateTeamResponse struct {
	Message string `json:"message"`
	TeamID  int64  `json:"team_id"`
}

func TeamToResponse(team *entity.Team) TeamResponse {
	return TeamResponse{
		ID:        team.ID,
		TeamName:  team.Name,
		CoachID:   team.CoachID,
		CoachName: team.CoachName,
		CreatedAt: team.CreatedAt,
	}
}
