package repository

import (
	"database/sql"
	"fmt"

	"chorepoints/internal/database"
	"chorepoints/internal/models"
)

// GiftRepository handles database operations for gifts
type GiftRepository struct {
	db *database.DB
}

// NewGiftRepository creates a new gift repository
func NewGiftRepository(db *database.DB) *GiftRepository {
	return &GiftRepository{db: db}
}

// CreateGift inserts a gift
func (r *GiftRepository) CreateGift(childID int64, name string, price int, imageURL string) (*models.Gift, error) {
	query := `
		INSERT INTO gifts (child_id, name, price, image_url)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, childID, name, price, imageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create gift: %w", err)
	}

	return &models.Gift{
		ID:       id,
		ChildID:  childID,
		Name:     name,
		Price:    price,
		ImageURL: imageURL,
	}, nil
}

// GetGift retrieves a gift by ID
func (r *GiftRepository) GetGift(giftID int64) (*models.Gift, error) {
	query := `
		SELECT id, child_id, name, price, image_url, is_purchased, created_at, updated_at
		FROM gifts
		WHERE id = ?
	`
	gift := &models.Gift{}
	err := r.db.QueryRow(query, giftID).Scan(
		&gift.ID,
		&gift.ChildID,
		&gift.Name,
		&gift.Price,
		&gift.ImageURL,
		&gift.IsPurchased,
		&gift.CreatedAt,
		&gift.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get gift: %w", err)
	}
	return gift, nil
}

// GetGiftsByChild retrieves all gifts of a child
func (r *GiftRepository) GetGiftsByChild(childID int64) ([]models.Gift, error) {
	query := `
		SELECT id, child_id, name, price, image_url, is_purchased, created_at, updated_at
		FROM gifts
		WHERE child_id = ?
		ORDER BY id
	`
	rows, err := r.db.Query(query, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to query gifts: %w", err)
	}
	defer rows.Close()

	var gifts []models.Gift
	for rows.Next() {
		var gift models.Gift
		if err := rows.Scan(
			&gift.ID,
			&gift.ChildID,
			&gift.Name,
			&gift.Price,
			&gift.ImageURL,
			&gift.IsPurchased,
			&gift.CreatedAt,
			&gift.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan gift: %w", err)
		}
		gifts = append(gifts, gift)
	}
	return gifts, rows.Err()
}

// UpdateGift updates a gift's name, price and image
func (r *GiftRepository) UpdateGift(giftID int64, name string, price int, imageURL string) error {
	query := `
		UPDATE gifts
		SET name = ?, price = ?, image_url = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, name, price, imageURL, giftID)
	if err != nil {
		return fmt.Errorf("failed to update gift: %w", err)
	}
	return nil
}

// SetPurchased flips a gift's purchase flag. Runs on the given DBTX so the
// flag and the reward deduction commit together.
func (r *GiftRepository) SetPurchased(q database.DBTX, giftID int64, purchased bool) error {
	query := `
		UPDATE gifts
		SET is_purchased = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := q.Exec(query, purchased, giftID)
	if err != nil {
		return fmt.Errorf("failed to update gift purchase state: %w", err)
	}
	return nil
}

// DeleteGift removes a gift
func (r *GiftRepository) DeleteGift(giftID int64) error {
	query := "DELETE FROM gifts WHERE id = ?"
	_, err := r.db.Exec(query, giftID)
	if err != nil {
		return fmt.Errorf("failed to delete gift: %w", err)
	}
	return nil
}
