package request

import "strings"

// EchoRequest is the body of the diagnostics echo endpoint.
type EchoRequest struct {
	Message string `json:"message" validate:"required"`
}

func (r *EchoRequest) Normalize() {
	r.Message = strings.TrimSpace(r.Message)
}
