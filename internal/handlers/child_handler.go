package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"chorepoints/internal/service"
)

// ChildHandler handles child profile HTTP requests
type ChildHandler struct {
	childService *service.ChildService
	log          *logrus.Logger
}

// NewChildHandler creates a new child handler
func NewChildHandler(childService *service.ChildService, log *logrus.Logger) *ChildHandler {
	return &ChildHandler{childService: childService, log: log}
}

type childRequest struct {
	Name   *string `json:"name"`
	Gender *string `json:"gender"`
}

// Create adds a child profile for the caller
func (h *ChildHandler) Create(w http.ResponseWriter, r *http.Request) {
	parent := ParentFromContext(r.Context())

	var req childRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == nil || req.Gender == nil {
		respondMessage(w, http.StatusBadRequest, "Name and gender are required")
		return
	}

	child, err := h.childService.CreateChild(parent.ID, *req.Name, *req.Gender)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, child)
}

// List returns the caller's children with populated collections
func (h *ChildHandler) List(w http.ResponseWriter, r *http.Request) {
	parent := ParentFromContext(r.Context())

	children, err := h.childService.GetChildren(parent.ID)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, children)
}

// Update edits a child's name and/or gender
func (h *ChildHandler) Update(w http.ResponseWriter, r *http.Request) {
	parent := ParentFromContext(r.Context())

	childID, ok := pathID(r, "childId")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid child ID")
		return
	}

	var req childRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == nil && req.Gender == nil {
		respondMessage(w, http.StatusBadRequest, "At least one field is required")
		return
	}

	child, err := h.childService.UpdateChild(parent.ID, childID, req.Name, req.Gender)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, child)
}

// Delete removes a child and everything attached to it
func (h *ChildHandler) Delete(w http.ResponseWriter, r *http.Request) {
	parent := ParentFromContext(r.Context())

	childID, ok := pathID(r, "childId")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid child ID")
		return
	}

	if err := h.childService.DeleteChild(parent.ID, childID); err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
