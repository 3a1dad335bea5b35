package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"chorepoints/internal/service"
	"chorepoints/internal/validation"
)

// HabitHandler handles habit HTTP requests
type HabitHandler struct {
	habitService *service.HabitService
	log          *logrus.Logger
}

// NewHabitHandler creates a new habit handler
func NewHabitHandler(habitService *service.HabitService, log *logrus.Logger) *HabitHandler {
	return &HabitHandler{habitService: habitService, log: log}
}

type habitRequest struct {
	Name         *string `json:"name"`
	RewardPerDay *int    `json:"rewardPerDay"`
}

type habitDayRequest struct {
	Date string `json:"date"`
}

// Create adds a habit with a fresh day window to a child
func (h *HabitHandler) Create(w http.ResponseWriter, r *http.Request) {
	parent := ParentFromContext(r.Context())

	childID, ok := pathID(r, "childId")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid child ID")
		return
	}

	var req habitRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == nil || req.RewardPerDay == nil {
		respondMessage(w, http.StatusBadRequest, "Name and rewardPerDay are required")
		return
	}

	habit, err := h.habitService.CreateHabit(parent.ID, childID, *req.Name, *req.RewardPerDay)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, habit)
}

// List returns the caller's habits grouped per child
func (h *HabitHandler) List(w http.ResponseWriter, r *http.Request) {
	parent := ParentFromContext(r.Context())

	groups, err := h.habitService.ListByParent(parent.ID)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, groups)
}

// Update edits a habit's name and/or per-day reward
func (h *HabitHandler) Update(w http.ResponseWriter, r *http.Request) {
	parent := ParentFromContext(r.Context())

	habitID, ok := pathID(r, "habitId")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid habit ID")
		return
	}

	var req habitRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == nil && req.RewardPerDay == nil {
		respondMessage(w, http.StatusBadRequest, "At least one field is required")
		return
	}

	habit, err := h.habitService.UpdateHabit(parent.ID, habitID, req.Name, req.RewardPerDay)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, habit)
}

// Delete removes a habit
func (h *HabitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	parent := ParentFromContext(r.Context())

	habitID, ok := pathID(r, "habitId")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid habit ID")
		return
	}

	if err := h.habitService.DeleteHabit(parent.ID, habitID); err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeDay parses and validates the {date} body shared by confirm and cancel
func (h *HabitHandler) decodeDay(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req habitDayRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return "", false
	}
	if err := validation.ValidateDate(req.Date); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return req.Date, true
}

// ConfirmDay marks one day confirmed and credits the child
func (h *HabitHandler) ConfirmDay(w http.ResponseWriter, r *http.Request) {
	parent := ParentFromContext(r.Context())

	habitID, ok := pathID(r, "habitId")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid habit ID")
		return
	}
	date, ok := h.decodeDay(w, r)
	if !ok {
		return
	}

	habit, rewards, err := h.habitService.ConfirmDay(parent.ID, habitID, date)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"updatedHabit":   habit,
		"updatedRewards": rewards,
	})
}

// CancelDay marks one day canceled
func (h *HabitHandler) CancelDay(w http.ResponseWriter, r *http.Request) {
	parent := ParentFromContext(r.Context())

	habitID, ok := pathID(r, "habitId")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid habit ID")
		return
	}
	date, ok := h.decodeDay(w, r)
	if !ok {
		return
	}

	habit, err := h.habitService.CancelDay(parent.ID, habitID, date)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, habit)
}
