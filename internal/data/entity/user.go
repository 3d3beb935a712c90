package entity

type UserRole string

const (
	RoleCoach  UserRole = "coach"
	RolePlayer UserRole = "player"
)

func (r UserRole) Valid() bool {
	return r == RoleCoach || r == RolePlayer
}

type User struct {
	Base
	Name         string   `db:"name"`
	Username     string   `db:"username"`
	PasswordHash string   `db:"password"`
	Role         UserRole `db:"user_type"`
	Email        *string  `db:"coach_email"`
	TeamID       *int64   `db:"team_id"`
}

func (u *User) IsCoach() bool {
	return u.Role == RoleCoach
}
