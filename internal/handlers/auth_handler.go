package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"chorepoints/internal/models"
	"chorepoints/internal/service"
)

// AuthHandler handles registration, login and the token lifecycle
type AuthHandler struct {
	authService          *service.AuthService
	childService         *service.ChildService
	oauthProviders       map[string]OAuthProvider
	oauthRedirectBaseURL string
	log                  *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, childService *service.ChildService, oauthProviders map[string]OAuthProvider, oauthRedirectBaseURL string, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		authService:          authService,
		childService:         childService,
		oauthProviders:       oauthProviders,
		oauthRedirectBaseURL: oauthRedirectBaseURL,
		log:                  log,
	}
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Username  string `json:"username"`
	OriginURL string `json:"originUrl"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID           int64                 `json:"id"`
	SID          string                `json:"sid"`
	Username     string                `json:"username"`
	Children     []models.ChildDetails `json:"children"`
	AccessToken  string                `json:"accessToken"`
	RefreshToken string                `json:"refreshToken"`
}

// Register creates a new parent account
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.authService.Register(req.Email, req.Password, req.Username, req.OriginURL)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			respondMessage(w, http.StatusConflict, fmt.Sprintf("User with %s email already exists", req.Email))
			return
		}
		respondServiceError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"id":       user.ID,
		"email":    user.Email,
		"username": user.Username,
	})
}

// Login authenticates a parent and returns a session with a token pair and
// the full family snapshot.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, pair, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
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

	children, err := h.childService.GetChildren(user.ID)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{
		ID:           user.ID,
		SID:          pair.SessionID,
		Username:     user.Username,
		Children:     children,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

type refreshRequest struct {
	SID string `json:"sid"`
}

// Refresh rotates a session using the refresh token from the bearer header
// and the session ID from the body.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		respondMessage(w, http.StatusBadRequest, "No token provided")
		return
	}

	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil || req.SID == "" {
		respondMessage(w, http.StatusBadRequest, "Session ID is required")
		return
	}

	pair, err := h.authService.Refresh(req.SID, token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			respondMessage(w, http.StatusNotFound, "Session not found")
		case errors.Is(err, service.ErrInvalidToken):
			respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		default:
			respondServiceError(w, h.log, err)
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"newAccessToken":  pair.AccessToken,
		"newRefreshToken": pair.RefreshToken,
		"newSid":          pair.SessionID,
	})
}

// Logout deletes the caller's session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if session == nil {
		respondMessage(w, http.StatusNotFound, "Session not found")
		return
	}

	if err := h.authService.Logout(session.ID); err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
