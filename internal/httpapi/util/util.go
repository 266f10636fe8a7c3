package util

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"attendance-monitor/internal/attendance"
	"attendance-monitor/internal/auth"
	"attendance-monitor/internal/importer"
	"attendance-monitor/internal/schedule"
)

// JSONResponse structure for successful responses
type JSONResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// JSONError structure for error responses
type JSONError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WriteJSON is a helper to write JSON responses
func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := JSONResponse{Success: true, Data: payload}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error writing JSON response: %v", err)
	}
}

// WriteJSONError is a helper to write standardized error JSON responses
func WriteJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errorResponse := JSONError{
		Success: false,
		Message: message,
	}

	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		log.Printf("Error writing JSON error response: %v", err)
	}
}

// HandleServiceError translates domain errors to appropriate HTTP responses.
func HandleServiceError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		WriteJSONError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrUsernameTaken),
		errors.Is(err, schedule.ErrRoomConflict):
		WriteJSONError(w, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrInvalidResetToken),
		errors.Is(err, schedule.ErrInvalidSlot),
		errors.Is(err, attendance.ErrSubjectRequired),
		errors.Is(err, importer.ErrNoData):
		WriteJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, schedule.ErrScheduleNotFound),
		errors.Is(err, attendance.ErrStudentNotFound),
		errors.Is(err, mongo.ErrNoDocuments):
		WriteJSONError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &validationErrs):
		WriteJSONError(w, http.StatusBadRequest, validationMessage(validationErrs))
	default:
		log.Printf("Internal error: %v", err)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// validationMessage flattens validator errors into one readable line.
func validationMessage(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		parts = append(parts, fe.Field()+" failed on the '"+fe.Tag()+"' rule")
	}
	return "Validation failed: " + strings.Join(parts, "; ")
}

// ExtractToken extracts the token from the Authorization header (Bearer <token>)
func ExtractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header missing")
	}

	// Expect header: "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}

// DecodeJSON decodes a request body into dst and rejects malformed input.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("invalid JSON request body")
	}
	return nil
}
