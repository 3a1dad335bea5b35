package repository

import (
	"database/sql"
	"fmt"
	"time"

	"chorepoints/internal/database"
	"chorepoints/internal/models"
)

// UserRepository handles database operations for parent accounts and sessions
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new parent account
func (r *UserRepository) CreateUser(email, passwordHash, username, originURL string) (*models.Parent, error) {
	query := `
		INSERT INTO users (email, password_hash, username, origin_url)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, email, passwordHash, username, originURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &models.Parent{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Username:     username,
		OriginURL:    originURL,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}, nil
}

// GetUserByEmail retrieves a parent by email address
func (r *UserRepository) GetUserByEmail(email string) (*models.Parent, error) {
	query := `
		SELECT id, email, password_hash, username, COALESCE(origin_url, ''),
		       COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''), created_at, updated_at
		FROM users
		WHERE email = ?
	`
	return r.scanUser(r.db.QueryRow(query, email))
}

// GetUserByID retrieves a parent by ID
func (r *UserRepository) GetUserByID(id int64) (*models.Parent, error) {
	query := `
		SELECT id, email, password_hash, username, COALESCE(origin_url, ''),
		       COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''), created_at, updated_at
		FROM users
		WHERE id = ?
	`
	return r.scanUser(r.db.QueryRow(query, id))
}

// GetUserByOAuth retrieves a parent by OAuth provider and subject
func (r *UserRepository) GetUserByOAuth(provider, subject string) (*models.Parent, error) {
	query := `
		SELECT id, email, password_hash, username, COALESCE(origin_url, ''),
		       COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''), created_at, updated_at
		FROM users
		WHERE oauth_provider = ? AND oauth_subject = ?
	`
	return r.scanUser(r.db.QueryRow(query, provider, subject))
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.Parent, error) {
	user := &models.Parent{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Username,
		&user.OriginURL,
		&user.OAuthProvider,
		&user.OAuthSubject,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// LinkOAuthProvider links an existing parent to an OAuth provider
func (r *UserRepository) LinkOAuthProvider(userID int64, provider, subject string) error {
	query := `
		UPDATE users
		SET oauth_provider = ?, oauth_subject = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
		AND (oauth_provider IS NULL OR oauth_provider = '')
	`
	result, err := r.db.Exec(query, provider, subject, userID)
	if err != nil {
		return fmt.Errorf("failed to link oauth provider: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read link result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("oauth provider already linked")
	}
	return nil
}

// DeleteUser deletes a parent account; sessions and children cascade
func (r *UserRepository) DeleteUser(id int64) error {
	query := "DELETE FROM users WHERE id = ?"
	_, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// CreateSession creates a new session for a parent
func (r *UserRepository) CreateSession(sessionID string, userID int64, expiresAt time.Time) (*models.Session, error) {
	query := `
		INSERT INTO sessions (id, user_id, expires_at)
		VALUES (?, ?, ?)
	`
	_, err := r.db.Exec(query, sessionID, userID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &models.Session{
		ID:        sessionID,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}, nil
}

// GetSession retrieves a session by ID
func (r *UserRepository) GetSession(sessionID string) (*models.Session, error) {
	query := `
		SELECT id, user_id, expires_at, created_at
		FROM sessions
		WHERE id = ?
	`
	session := &models.Session{}
	err := r.db.QueryRow(query, sessionID).Scan(
		&session.ID,
		&session.UserID,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// DeleteSession removes a session
func (r *UserRepository) DeleteSession(sessionID string) error {
	query := "DELETE FROM sessions WHERE id = ?"
	_, err := r.db.Exec(query, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteUserSessions removes every session belonging to a parent
func (r *UserRepository) DeleteUserSessions(userID int64) error {
	query := "DELETE FROM sessions WHERE user_id = ?"
	_, err := r.db.Exec(query, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user sessions: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes all expired sessions
func (r *UserRepository) DeleteExpiredSessions() error {
	query := "DELETE FROM sessions WHERE expires_at < ?"
	_, err := r.db.Exec(query, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}
