package response

import (
	"time"

	"audioathlete/internal/data/entity"
)

// UserResponse is the sanitized view of a user; it never carries the
// password hash.
type UserResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Username  string          `json:"username"`
	UserType  entity.UserRole `json:"userType"`
	Email     *string         `json:"email"`
	TeamID    *int64          `json:"teamId"`
	CreatedAt time.Time       `json:"createdAt"`
}

type CreateUserResponse struct {
	Message        string `json:"message"`
	UserID         int64  `json:"user_id"`
	AssignedTeamID *int64 `json:"assigned_team_id"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Username:  user.Username,
		UserType:  user.Role,
		Email:     user.Email,
		TeamID:    user.TeamID,
		CreatedAt: user.CreatedAt,
	}
}
