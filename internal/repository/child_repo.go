package repository

import (
	"database/sql"
	"fmt"

	"chorepoints/internal/database"
	"chorepoints/internal/models"
)

// ChildRepository handles database operations for child profiles
type ChildRepository struct {
	db *database.DB
}

// NewChildRepository creates a new child repository
func NewChildRepository(db *database.DB) *ChildRepository {
	return &ChildRepository{db: db}
}

// CreateChild inserts a new child profile for a parent
func (r *ChildRepository) CreateChild(parentID int64, name string, gender models.Gender) (*models.Child, error) {
	query := `
		INSERT INTO children (parent_id, name, gender, rewards)
		VALUES (?, ?, ?, 0)
	`
	id, err := r.db.ExecReturningID(query, parentID, name, string(gender))
	if err != nil {
		return nil, fmt.Errorf("failed to create child: %w", err)
	}

	return &models.Child{
		ID:       id,
		ParentID: parentID,
		Name:     name,
		Gender:   gender,
		Rewards:  0,
	}, nil
}

// GetChild retrieves a child by ID
func (r *ChildRepository) GetChild(childID int64) (*models.Child, error) {
	query := `
		SELECT id, parent_id, name, gender, rewards, created_at, updated_at
		FROM children
		WHERE id = ?
	`
	return scanChild(r.db.QueryRow(query, childID))
}

// GetChildForParent retrieves a child only when it belongs to the parent.
// Returns nil for both a missing child and one owned by someone else so the
// caller cannot distinguish the two.
func (r *ChildRepository) GetChildForParent(childID, parentID int64) (*models.Child, error) {
	query := `
		SELECT id, parent_id, name, gender, rewards, created_at, updated_at
		FROM children
		WHERE id = ? AND parent_id = ?
	`
	return scanChild(r.db.QueryRow(query, childID, parentID))
}

func scanChild(row *sql.Row) (*models.Child, error) {
	child := &models.Child{}
	var gender string
	err := row.Scan(
		&child.ID,
		&child.ParentID,
		&child.Name,
		&gender,
		&child.Rewards,
		&child.CreatedAt,
		&child.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	child.Gender = models.Gender(gender)
	return child, nil
}

// GetChildrenByParent retrieves all children of a parent, oldest first
func (r *ChildRepository) GetChildrenByParent(parentID int64) ([]models.Child, error) {
	query := `
		SELECT id, parent_id, name, gender, rewards, created_at, updated_at
		FROM children
		WHERE parent_id = ?
		ORDER BY id
	`
	rows, err := r.db.Query(query, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query children: %w", err)
	}
	defer rows.Close()

	var children []models.Child
	for rows.Next() {
		var child models.Child
		var gender string
		if err := rows.Scan(
			&child.ID,
			&child.ParentID,
			&child.Name,
			&gender,
			&child.Rewards,
			&child.CreatedAt,
			&child.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan child: %w", err)
		}
		child.Gender = models.Gender(gender)
		children = append(children, child)
	}
	return children, rows.Err()
}

// UpdateChild updates a child's name and gender
func (r *ChildRepository) UpdateChild(childID int64, name string, gender models.Gender) error {
	query := `
		UPDATE children
		SET name = ?, gender = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, name, string(gender), childID)
	if err != nil {
		return fmt.Errorf("failed to update child: %w", err)
	}
	return nil
}

// AddRewards adjusts a child's reward balance by delta. Runs on the given
// DBTX so status changes and their reward movement commit together.
func (r *ChildRepository) AddRewards(q database.DBTX, childID int64, delta int) error {
	query := `
		UPDATE children
		SET rewards = rewards + ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := q.Exec(query, delta, childID)
	if err != nil {
		return fmt.Errorf("failed to update rewards: %w", err)
	}
	return nil
}

// DeleteChild removes a child profile; habits, tasks and gifts cascade
func (r *ChildRepository) DeleteChild(childID int64) error {
	query := "DELETE FROM children WHERE id = ?"
	_, err := r.db.Exec(query, childID)
	if err != nil {
		return fmt.Errorf("failed to delete child: %w", err)
	}
	return nil
}

// DeleteChildrenByParent removes every child profile owned by a parent
func (r *ChildRepository) DeleteChildrenByParent(parentID int64) error {
	query := "DELETE FROM children WHERE parent_id = ?"
	_, err := r.db.Exec(query, parentID)
	if err != nil {
		return fmt.Errorf("failed to delete children: %w", err)
	}
	return nil
}
