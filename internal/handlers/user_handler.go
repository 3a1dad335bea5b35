package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"chorepoints/internal/service"
)

// UserHandler handles account-level HTTP requests
type UserHandler struct {
	accountService *service.AccountService
	log            *logrus.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(accountService *service.AccountService, log *logrus.Logger) *UserHandler {
	return &UserHandler{accountService: accountService, log: log}
}

// Info returns the caller's account with all children populated
func (h *UserHandler) Info(w http.ResponseWriter, r *http.Request) {
	parent := ParentFromContext(r.Context())

	user, children, err := h.accountService.Info(parent)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":       user.ID,
		"email":    user.Email,
		"username": user.Username,
		"children": children,
	})
}

type deleteAccountRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Delete removes the caller's account after re-authentication. Everything
// the account owns goes with it.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	if err := h.accountService.DeleteAccount(req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			respondMessage(w, http.StatusForbidden, fmt.Sprintf("User with %s email doesn't exist", req.Email))
		case errors.Is(err, service.ErrWrongPassword):
			respondMessage(w, http.StatusForbidden, "Password is wrong")
		default:
			respondServiceError(w, h.log, err)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
