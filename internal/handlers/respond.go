package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abenov/lingopal/internal/services"
	"github.com/sirupsen/logrus"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps service errors to HTTP status codes. Unrecognized
// errors become a generic 500 so internals never leak to the caller.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrSelfRequest):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, services.ErrNotRecipient):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, services.ErrUserNotFound), errors.Is(err, services.ErrRequestNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrAlreadyFriends),
		errors.Is(err, services.ErrDuplicateRequest):
		status = http.StatusConflict
		message = err.Error()
	default:
		logrus.WithError(err).Error("Unhandled error in request")
	}

	respondJSON(w, status, map[string]string{"message": message})
}
