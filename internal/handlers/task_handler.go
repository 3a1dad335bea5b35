package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"chorepoints/internal/service"
)

// TaskHandler handles task HTTP requests
type TaskHandler struct {
	taskService *service.TaskService
	log         *logrus.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *service.TaskService, log *logrus.Logger) *TaskHandler {
	return &TaskHandler{taskService: taskService, log: log}
}

type taskRequest struct {
	Name           *string `json:"name"`
	Reward         *int    `json:"reward"`
	DaysToComplete *int    `json:"daysToComplete"`
}

// Create adds a task to a child, optionally with a deadline schedule
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	parent := ParentFromContext(r.Context())

	childID, ok := pathID(r, "childId")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid child ID")
		return
	}

	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == nil || req.Reward == nil {
		respondMessage(w, http.StatusBadRequest, "Name and reward are required")
		return
	}

	task, err := h.taskService.CreateTask(parent.ID, childID, *req.Name, *req.Reward, req.DaysToComplete)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, task)
}

// List returns the caller's tasks grouped per child
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	parent := ParentFromContext(r.Context())

	groups, err := h.taskService.ListByParent(parent.ID)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, groups)
}

// Finished returns a child's confirmed tasks
func (h *TaskHandler) Finished(w http.ResponseWriter, r *http.Request) {
	parent := ParentFromContext(r.Context())

	childID, ok := pathID(r, "childId")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid child ID")
		return
	}

	tasks, err := h.taskService.FinishedTasks(parent.ID, childID)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

// Update edits a task
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	parent := ParentFromContext(r.Context())

	taskID, ok := pathID(r, "taskId")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == nil && req.Reward == nil && req.DaysToComplete == nil {
		respondMessage(w, http.StatusBadRequest, "At least one field is required")
		return
	}

	task, err := h.taskService.UpdateTask(parent.ID, taskID, req.Name, req.Reward, req.DaysToComplete)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// Delete removes a task
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	parent := ParentFromContext(r.Context())

	taskID, ok := pathID(r, "taskId")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	if err := h.taskService.DeleteTask(parent.ID, taskID); err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Confirm marks a task done and credits its reward
func (h *TaskHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	parent := ParentFromContext(r.Context())

	taskID, ok := pathID(r, "taskId")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, rewards, err := h.taskService.ConfirmTask(parent.ID, taskID)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"confirmedTask":  task,
		"updatedRewards": rewards,
	})
}

// Cancel marks a task canceled
func (h *TaskHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	parent := ParentFromContext(r.Context())

	taskID, ok := pathID(r, "taskId")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, err := h.taskService.CancelTask(parent.ID, taskID)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// Reset returns a finished task to the open state
func (h *TaskHandler) Reset(w http.ResponseWriter, r *http.Request) {
	parent := ParentFromContext(r.Context())

	taskID, ok := pathID(r, "taskId")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, err := h.taskService.ResetTask(parent.ID, taskID)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}
