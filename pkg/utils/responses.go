package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// MessageResponse is returned by endpoints that only confirm an action.
type MessageResponse struct {
	Message string `json:"message"`
}

// ResponseJSON writes payload as JSON with a custom status code
func ResponseJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, payload any) {
	ResponseJSON(w, http.StatusOK, payload)
}

// returns 200 OK with {"message": ...}
func ResponseMessage(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusOK, MessageResponse{Message: message})
}

// ------------- Error responses -------------

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string, fields map[string]string) {
	ResponseJSON(w, http.StatusBadRequest, ErrorResponse{Error: message, Fields: fields})
}

// returns 401 Unauthorized
func ResponseUnauthorized(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusUnauthorized, ErrorResponse{Error: message})
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusNotFound, ErrorResponse{Error: message})
}

// returns 409 Conflict
func ResponseConflict(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusConflict, ErrorResponse{Error: message})
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusInternalServerError, ErrorResponse{Error: message})
}
