package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the JSON body of every failed HTTP request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

var statusByCode = map[string]int{
	ErrCodeInvalidRequest:         http.StatusBadRequest,
	ErrCodeValidationFailed:       http.StatusBadRequest,
	ErrCodeMissingField:           http.StatusBadRequest,
	ErrCodeInvalidRoomCode:        http.StatusBadRequest,
	ErrCodeInvalidPayload:         http.StatusBadRequest,
	ErrCodeInvalidDigits:          http.StatusUnprocessableEntity,
	ErrCodeInvalidFormula:         http.StatusUnprocessableEntity,
	ErrCodeNotFound:               http.StatusNotFound,
	ErrCodeRoomNotFound:           http.StatusNotFound,
	ErrCodePlayerNotFound:         http.StatusNotFound,
	ErrCodeResultsNotFound:        http.StatusNotFound,
	ErrCodeRoomFull:               http.StatusConflict,
	ErrCodeGameAlreadyStarted:     http.StatusConflict,
	ErrCodeGameNotActive:          http.StatusConflict,
	ErrCodeGameEnded:              http.StatusConflict,
	ErrCodeUpstreamError:          http.StatusBadGateway,
	ErrCodeServiceUnavailable:     http.StatusServiceUnavailable,
	ErrCodeRoomCreationFailed:     http.StatusServiceUnavailable,
	ErrCodeLeaderboardFetchFailed: http.StatusServiceUnavailable,
}

// StatusFor maps an error code to its HTTP status. Unknown codes are 500.
func StatusFor(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// RespondJSON writes v with the given status.
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Respond writes code with the status StatusFor assigns to it.
func Respond(w http.ResponseWriter, code, message string) {
	RespondJSON(w, StatusFor(code), ErrorResponse{Error: code, Message: message})
}

// RespondValidationError reports a bad query or body field.
func RespondValidationError(w http.ResponseWriter, message, field string) {
	RespondJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:   ErrCodeValidationFailed,
		Message: message,
		Field:   field,
	})
}

// RespondInternalError hides detail behind a generic 500.
func RespondInternalError(w http.ResponseWriter, message string) {
	Respond(w, ErrCodeInternalError, message)
}
