package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"chorepoints/internal/models"
	"chorepoints/internal/repository"
	"chorepoints/internal/security"
	"chorepoints/internal/token"
	"chorepoints/internal/validation"
)

var (
	ErrEmailTaken      = errors.New("email already taken")
	ErrUserNotFound    = errors.New("user not found")
	ErrWrongPassword   = errors.New("wrong password")
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidToken    = errors.New("invalid token")
)

// AuthService handles registration, login and the refresh-token session
// lifecycle.
type AuthService struct {
	userRepo *repository.UserRepository
	tokens   *token.Manager
	hasher   *security.Hasher
	email    *EmailService
	log      *logrus.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, tokens *token.Manager, hasher *security.Hasher, email *EmailService, log *logrus.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		hasher:   hasher,
		email:    email,
		log:      log,
	}
}

// TokenPair is a freshly issued access/refresh token set bound to a session
type TokenPair struct {
	SessionID    string
	AccessToken  string
	RefreshToken string
}

// Register creates a new parent account. Registration does not log the
// account in; the client follows up with a login request.
func (s *AuthService) Register(email, password, username, originURL string) (*models.Parent, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.CreateUser(email, passwordHash, username, originURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.email != nil && s.email.IsEnabled() {
		// Delivery failures must not fail registration
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := s.email.SendWelcomeEmail(ctx, user.Email, user.Username); err != nil {
				s.log.WithError(err).WithField("email", user.Email).Warn("welcome email failed")
			}
		}()
	}

	return user, nil
}

// Login authenticates a parent and issues a session with a token pair
func (s *AuthService) Login(email, password string) (*models.Parent, *TokenPair, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		return nil, nil, ErrWrongPassword
	}

	pair, err := s.issueSession(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// issueSession creates a session row and signs a token pair bound to it
func (s *AuthService) issueSession(userID int64) (*TokenPair, error) {
	sessionID := security.GenerateSessionID()
	expiresAt := time.Now().Add(s.tokens.RefreshTTL())

	if _, err := s.userRepo.CreateSession(sessionID, userID, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	accessToken, err := s.tokens.GenerateAccessToken(userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &TokenPair{
		SessionID:    sessionID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Authenticate resolves an access token to its parent and session. Used by
// the authorization middleware on every protected request.
func (s *AuthService) Authenticate(accessToken string) (*models.Parent, *models.Session, error) {
	claims, err := s.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}

	session, err := s.userRepo.GetSession(claims.SID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil || session.IsExpired() {
		return nil, nil, ErrSessionNotFound
	}

	user, err := s.userRepo.GetUserByID(claims.UID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}

	return user, session, nil
}

// Refresh rotates a session: the presented session and refresh token are
// consumed and a fresh session with a new token pair takes their place. A
// refresh token that fails verification kills the session it names.
func (s *AuthService) Refresh(sessionID, refreshToken string) (*TokenPair, error) {
	session, err := s.userRepo.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil || claims.SID != session.ID || claims.UID != session.UserID {
		// The token is bad but the session exists. Treat it as a
		// possible replay and revoke the session.
		if delErr := s.userRepo.DeleteSession(sessionID); delErr != nil {
			s.log.WithError(delErr).WithField("sid", sessionID).Error("failed to revoke session")
		}
		return nil, ErrInvalidToken
	}

	if session.IsExpired() {
		if delErr := s.userRepo.DeleteSession(sessionID); delErr != nil {
			s.log.WithError(delErr).WithField("sid", sessionID).Error("failed to revoke session")
		}
		return nil, ErrSessionNotFound
	}

	if err := s.userRepo.DeleteSession(sessionID); err != nil {
		return nil, fmt.Errorf("failed to rotate session: %w", err)
	}
	return s.issueSession(session.UserID)
}

// Logout deletes a session. Logging out an already-deleted session succeeds.
func (s *AuthService) Logout(sessionID string) error {
	if err := s.userRepo.DeleteSession(sessionID); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

// OAuthLogin authenticates or creates a parent using an OAuth provider and
// issues a session like a password login would.
func (s *AuthService) OAuthLogin(provider, subject, email, username string) (*models.Parent, *TokenPair, error) {
	if provider == "" || subject == "" {
		return nil, nil, errors.New("missing oauth provider information")
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.GetUserByOAuth(provider, subject)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to lookup oauth user: %w", err)
	}

	if user == nil {
		existing, err := s.userRepo.GetUserByEmail(email)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check existing user: %w", err)
		}
		if existing != nil {
			if existing.OAuthProvider != "" && existing.OAuthProvider != provider {
				return nil, nil, ErrEmailTaken
			}
			if err := s.userRepo.LinkOAuthProvider(existing.ID, provider, subject); err != nil {
				return nil, nil, fmt.Errorf("failed to link oauth provider: %w", err)
			}
			user = existing
		} else {
			if username == "" {
				username = strings.Split(email, "@")[0]
			}
			// OAuth accounts get an unguessable placeholder password
			randomHash, err := s.hasher.Hash(security.GenerateSessionID())
			if err != nil {
				return nil, nil, fmt.Errorf("failed to generate oauth password hash: %w", err)
			}
			created, err := s.userRepo.CreateUser(email, randomHash, username, "")
			if err != nil {
				return nil, nil, fmt.Errorf("failed to create oauth user: %w", err)
			}
			if err := s.userRepo.LinkOAuthProvider(created.ID, provider, subject); err != nil {
				return nil, nil, fmt.Errorf("failed to link oauth provider: %w", err)
			}
			user = created
		}
	}

	pair, err := s.issueSession(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// CleanupExpiredSessions removes expired sessions from the database
func (s *AuthService) CleanupExpiredSessions() error {
	if err := s.userRepo.DeleteExpiredSessions(); err != nil {
		return fmt.Errorf("failed to cleanup sessions: %w", err)
	}
	return nil
}
