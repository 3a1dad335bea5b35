package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"chorepoints/internal/service"
	"chorepoints/internal/validation"
)

// errorBody is the JSON shape of every non-2xx response
type errorBody struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorBody{Message: message})
}

// respondServiceError maps service sentinel errors to their HTTP status and
// client message. Anything unmapped is an internal failure: the cause is
// logged and the client sees a generic message.
func respondServiceError(w http.ResponseWriter, log *logrus.Logger, err error) {
	var ve validation.Error
	if errors.As(err, &ve) {
		respondMessage(w, http.StatusBadRequest, ve.Error())
		return
	}

	switch {
	case errors.Is(err, service.ErrUserNotFound):
		respondMessage(w, http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrSessionNotFound):
		respondMessage(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, service.ErrInvalidToken):
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, service.ErrChildNotFound):
		respondMessage(w, http.StatusNotFound, "Child not found")
	case errors.Is(err, service.ErrHabitNotFound):
		respondMessage(w, http.StatusNotFound, "Habit not found")
	case errors.Is(err, service.ErrDayNotFound):
		respondMessage(w, http.StatusNotFound, "Day not found in habit days")
	case errors.Is(err, service.ErrDayAlreadyConfirmed):
		respondMessage(w, http.StatusForbidden, "This day has already been confirmed")
	case errors.Is(err, service.ErrDayAlreadyCanceled):
		respondMessage(w, http.StatusForbidden, "This day has already been canceled")
	case errors.Is(err, service.ErrTaskNotFound):
		respondMessage(w, http.StatusNotFound, "Task not found")
	case errors.Is(err, service.ErrTaskAlreadyConfirmed):
		respondMessage(w, http.StatusForbidden, "Task is already confirmed")
	case errors.Is(err, service.ErrTaskAlreadyCanceled):
		respondMessage(w, http.StatusForbidden, "Task is already canceled")
	case errors.Is(err, service.ErrTaskAlreadyReset):
		respondMessage(w, http.StatusForbidden, "Task has been already reset")
	case errors.Is(err, service.ErrNoFinishedTasks):
		respondMessage(w, http.StatusNotFound, "No finished tasks found for this child")
	case errors.Is(err, service.ErrGiftNotFound):
		respondMessage(w, http.StatusNotFound, "Gift not found")
	case errors.Is(err, service.ErrGiftAlreadyPurchased):
		respondMessage(w, http.StatusForbidden, "This gift has already been purchased")
	case errors.Is(err, service.ErrGiftAlreadyReset):
		respondMessage(w, http.StatusForbidden, "This gift has been already reset")
	case errors.Is(err, service.ErrNotEnoughRewards):
		respondMessage(w, http.StatusConflict, "Not enough rewards for gaining this gift")
	default:
		log.WithError(err).Error("request failed")
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeJSON parses a request body into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// pathID parses the named path segment as a positive integer ID
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
