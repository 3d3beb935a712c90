package request

import "strings"

type CreatePromptRequest struct {
	WorkoutID   int64  `json:"workoutId" validate:"gt=0"`
	BlockLength int    `json:"blockLength" validate:"gt=0"`
	Instruction string `json:"instruction" validate:"required,max=1000"`
}

func (r *CreatePromptRequest) Normalize() {
	r.Instruction = strings.TrimSpace(r.Instruction)
}
