package service

import (
	"errors"
	"fmt"

	"chorepoints/internal/database"
	"chorepoints/internal/models"
	"chorepoints/internal/repository"
	"chorepoints/internal/validation"
)

var (
	ErrGiftNotFound         = errors.New("gift not found")
	ErrGiftAlreadyPurchased = errors.New("gift already purchased")
	ErrGiftAlreadyReset     = errors.New("gift already reset")
	ErrNotEnoughRewards     = errors.New("not enough rewards")
)

// GiftService handles gift business logic and the buy/reset lifecycle
type GiftService struct {
	db        *database.DB
	giftRepo  *repository.GiftRepository
	childRepo *repository.ChildRepository
}

// NewGiftService creates a new gift service
func NewGiftService(db *database.DB, giftRepo *repository.GiftRepository, childRepo *repository.ChildRepository) *GiftService {
	return &GiftService{db: db, giftRepo: giftRepo, childRepo: childRepo}
}

// CreateGift adds a gift to one of the parent's children
func (s *GiftService) CreateGift(parentID, childID int64, name string, price int, imageURL string) (*models.Gift, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}
	if err := validation.ValidateNumber("price", price); err != nil {
		return nil, err
	}
	if err := validation.ValidateImageURL(imageURL); err != nil {
		return nil, err
	}

	child, err := s.childRepo.GetChildForParent(childID, parentID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, ErrChildNotFound
	}

	return s.giftRepo.CreateGift(childID, name, price, imageURL)
}

// getOwnedGift loads a gift and checks that it belongs to one of the
// parent's children.
func (s *GiftService) getOwnedGift(parentID, giftID int64) (*models.Gift, *models.Child, error) {
	gift, err := s.giftRepo.GetGift(giftID)
	if err != nil {
		return nil, nil, err
	}
	if gift == nil {
		return nil, nil, ErrGiftNotFound
	}

	child, err := s.childRepo.GetChildForParent(gift.ChildID, parentID)
	if err != nil {
		return nil, nil, err
	}
	if child == nil {
		return nil, nil, ErrChildNotFound
	}
	return gift, child, nil
}

// UpdateGift edits a gift's name, price and/or image
func (s *GiftService) UpdateGift(parentID, giftID int64, name *string, price *int, imageURL *string) (*models.Gift, error) {
	gift, _, err := s.getOwnedGift(parentID, giftID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		if err := validation.ValidateName(*name); err != nil {
			return nil, err
		}
		gift.Name = *name
	}
	if price != nil {
		if err := validation.ValidateNumber("price", *price); err != nil {
			return nil, err
		}
		gift.Price = *price
	}
	if imageURL != nil {
		if err := validation.ValidateImageURL(*imageURL); err != nil {
			return nil, err
		}
		gift.ImageURL = *imageURL
	}

	if err := s.giftRepo.UpdateGift(giftID, gift.Name, gift.Price, gift.ImageURL); err != nil {
		return nil, err
	}
	return gift, nil
}

// DeleteGift removes a gift owned by the parent
func (s *GiftService) DeleteGift(parentID, giftID int64) error {
	if _, _, err := s.getOwnedGift(parentID, giftID); err != nil {
		return err
	}
	return s.giftRepo.DeleteGift(giftID)
}

// BuyGift purchases a gift with the child's reward balance. The price is
// deducted and the purchase flag set in one transaction. A balance below the
// price leaves both untouched.
func (s *GiftService) BuyGift(parentID, giftID int64) (*models.Gift, int, error) {
	gift, child, err := s.getOwnedGift(parentID, giftID)
	if err != nil {
		return nil, 0, err
	}

	if gift.IsPurchased {
		return nil, 0, ErrGiftAlreadyPurchased
	}
	if child.Rewards < gift.Price {
		return nil, 0, ErrNotEnoughRewards
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.giftRepo.SetPurchased(tx, giftID, true); err != nil {
		return nil, 0, err
	}
	if err := s.childRepo.AddRewards(tx, child.ID, -gift.Price); err != nil {
		return nil, 0, err
	}
	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("failed to commit purchase: %w", err)
	}

	gift.IsPurchased = true
	return gift, child.Rewards - gift.Price, nil
}

// ResetGift returns a purchased gift to the unpurchased state. The spent
// rewards are not refunded.
func (s *GiftService) ResetGift(parentID, giftID int64) (*models.Gift, error) {
	gift, _, err := s.getOwnedGift(parentID, giftID)
	if err != nil {
		return nil, err
	}

	if !gift.IsPurchased {
		return nil, ErrGiftAlreadyReset
	}

	if err := s.giftRepo.SetPurchased(s.db, giftID, false); err != nil {
		return nil, err
	}
	gift.IsPurchased = false
	return gift, nil
}

// ListByParent returns the parent's gifts grouped per child
func (s *GiftService) ListByParent(parentID int64) ([][]models.Gift, error) {
	children, err := s.childRepo.GetChildrenByParent(parentID)
	if err != nil {
		return nil, err
	}

	groups := make([][]models.Gift, 0, len(children))
	for _, child := range children {
		gifts, err := s.giftRepo.GetGiftsByChild(child.ID)
		if err != nil {
			return nil, err
		}
		if gifts == nil {
			gifts = []models.Gift{}
		}
		groups = append(groups, gifts)
	}
	return groups, nil
}
