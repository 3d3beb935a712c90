package response

import (
	"time"

	"audioathlete/internal/data/entity"
)

type PromptResponse struct {
	ID          int64     `json:"id"`
	WorkoutID   int64     `json:"workoutId"`
	BlockLength int       `json:"blockLength"`
	Instruction string    `json:"instruction"`
	CreatedAt   time.Time `json:"createdAt"`
}

// WorkoutPromptsResponse lists a workout's prompts in creation order.
type WorkoutPromptsResponse struct {
	WorkoutID          int64            `json:"workoutId"`
	TotalLengthMinutes int              `json:"totalLengthMinutes"`
	Prompts            []PromptResponse `json:"prompts"`
}

type CreatePromptResponse struct {
	Message  string `json:"message"`
	PromptID int64  `json:"prompt_id"`
}

func PromptToResponse(prompt *entity.WorkoutPrompt) PromptResponse {
	return PromptResponse{
		ID:          prompt.ID,
		WorkoutID:   prompt.WorkoutID,
		BlockLength: prompt.BlockLength,
		Instruction: prompt.Instruction,
		CreatedAt:   prompt.CreatedAt,
	}
}
