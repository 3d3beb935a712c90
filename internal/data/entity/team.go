package entity

type Team struct {
	Base
	Name    string `db:"name"`
	CoachID int64  `db:"coach_id"`

	// filled by reads that join the coach's user row
	CoachName *string `db:"coach_name"`
}

// TeamPlayer links a player to the team of the coach they registered under.
type TeamPlayer struct {
	TeamID   int64 `db:"team_id"`
	PlayerID int64 `db:"player_id"`
}
