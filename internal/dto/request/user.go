package request

import "strings"

// CreateUserRequest is the role-tagged registration payload. Role specific
// fields are checked by the provisioning service, not by tags.
type CreateUserRequest struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Username string  `json:"username" validate:"required,max=50"`
	Password string  `json:"password" validate:"required,max=72"`
	UserType string  `json:"userType" validate:"required"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	TeamName *string `json:"teamName,omitempty" validate:"omitempty,max=100"`
	CoachID  *int64  `json:"coachId,omitempty"`
}

func (r *CreateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Username = strings.TrimSpace(r.Username)
	r.UserType = strings.ToLower(strings.TrimSpace(r.UserType))
	r.Email = trimOptional(r.Email)
	r.TeamName = trimOptional(r.TeamName)
	if strings.TrimSpace(r.Password) == "" {
		r.Password = ""
	}
}

// trimOptional trims s and drops it when nothing is left
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
