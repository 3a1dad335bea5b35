package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"chorepoints/internal/service"
)

// GiftHandler handles gift HTTP requests
type GiftHandler struct {
	giftService *service.GiftService
	log         *logrus.Logger
}

// NewGiftHandler creates a new gift handler
func NewGiftHandler(giftService *service.GiftService, log *logrus.Logger) *GiftHandler {
	return &GiftHandler{giftService: giftService, log: log}
}

type giftRequest struct {
	Name     *string `json:"name"`
	Price    *int    `json:"price"`
	ImageURL *string `json:"imageUrl"`
}

// Create adds a gift to a child
func (h *GiftHandler) Create(w http.ResponseWriter, r *http.Request) {
	parent := ParentFromContext(r.Context())

	childID, ok := pathID(r, "childId")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid child ID")
		return
	}

	var req giftRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == nil || req.Price == nil {
		respondMessage(w, http.StatusBadRequest, "Name and price are required")
		return
	}

	imageURL := ""
	if req.ImageURL != nil {
		imageURL = *req.ImageURL
	}

	gift, err := h.giftService.CreateGift(parent.ID, childID, *req.Name, *req.Price, imageURL)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, gift)
}

// List returns the caller's gifts grouped per child
func (h *GiftHandler) List(w http.ResponseWriter, r *http.Request) {
	parent := ParentFromContext(r.Context())

	groups, err := h.giftService.ListByParent(parent.ID)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, groups)
}

// Update edits a gift
func (h *GiftHandler) Update(w http.ResponseWriter, r *http.Request) {
	parent := ParentFromContext(r.Context())

	giftID, ok := pathID(r, "giftId")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid gift ID")
		return
	}

	var req giftRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == nil && req.Price == nil && req.ImageURL == nil {
		respondMessage(w, http.StatusBadRequest, "At least one field is required")
		return
	}

	gift, err := h.giftService.UpdateGift(parent.ID, giftID, req.Name, req.Price, req.ImageURL)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, gift)
}

// Delete removes a gift
func (h *GiftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	parent := ParentFromContext(r.Context())

	giftID, ok := pathID(r, "giftId")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid gift ID")
		return
	}

	if err := h.giftService.DeleteGift(parent.ID, giftID); err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Buy purchases a gift with the child's reward balance
func (h *GiftHandler) Buy(w http.ResponseWriter, r *http.Request) {
	parent := ParentFromContext(r.Context())

	giftID, ok := pathID(r, "giftId")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid gift ID")
		return
	}

	gift, rewards, err := h.giftService.BuyGift(parent.ID, giftID)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"updatedRewards": rewards,
		"purchasedGift":  gift,
	})
}

// Reset returns a purchased gift to the shop without a refund
func (h *GiftHandler) Reset(w http.ResponseWriter, r *http.Request) {
	parent := ParentFromContext(r.Context())

	giftID, ok := pathID(r, "giftId")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid gift ID")
		return
	}

	gift, err := h.giftService.ResetGift(parent.ID, giftID)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, gift)
}
