package request

import "strings"

type CreateTeamRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	CoachID int64  `json:"coachId" validate:"gt=0"`
}

func (r *CreateTeamRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}
