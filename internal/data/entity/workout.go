package entity

import "time"

type Workout struct {
	Base
	TeamID         int64     `db:"team_id"`
	CoachID        int64     `db:"coach_id"`
	Title          string    `db:"title"`
	TotalLengthSec int       `db:"total_length_sec"`
	ScheduledDate  time.Time `db:"scheduled_date"`
}

// WorkoutPrompt is one timed instruction block of a workout. BlockLength is
// in minutes.
type WorkoutPrompt struct {
	Base
	WorkoutID   int64  `db:"workout_id"`
	BlockLength int    `db:"block_length"`
	Instruction string `db:"instruction"`
}
