package request

import "strings"

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,max=72"`
}

// Normalize trims the username; the password is taken as sent.
func (r *LoginRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
}
