package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"wheelshare-backend/internal/logger"
	"wheelshare-backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError maps service sentinel errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrAccountDisabled):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrAlreadyReviewed):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrDatesUnavailable),
		errors.Is(err, service.ErrStartDateInPast),
		errors.Is(err, service.ErrVehicleNotBookable),
		errors.Is(err, service.ErrOwnBooking),
		errors.Is(err, service.ErrPaymentNotPending),
		errors.Is(err, service.ErrSignatureMismatch),
		errors.Is(err, service.ErrNotRefundable),
		errors.Is(err, service.ErrBookingNotActive),
		errors.Is(err, service.ErrBookingStarted),
		errors.Is(err, service.ErrBookingNotEnded),
		errors.Is(err, service.ErrVehicleHasBooking),
		errors.Is(err, service.ErrBookingNotCompleted),
		errors.Is(err, service.ErrInvalidRating):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
