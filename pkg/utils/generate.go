package utils

import (
	"github.com/google/uuid"
)

// GenerateRequestID returns a random id for correlating a request's log lines.
func GenerateRequestID() string {
	return uuid.New().String()
}

// ValidRequestID reports whether a caller-supplied X-Request-ID can be reused.
func ValidRequestID(id string) bool {
	if id == "" || len(id) > 64 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
