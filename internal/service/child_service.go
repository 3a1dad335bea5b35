package service

import (
	"errors"
	"fmt"

	"chorepoints/internal/models"
	"chorepoints/internal/repository"
	"chorepoints/internal/validation"
)

var ErrChildNotFound = errors.New("child not found")

// ChildService handles child profile business logic. Every operation is
// scoped to the requesting parent; a child owned by another parent is
// indistinguishable from a missing one.
type ChildService struct {
	childRepo *repository.ChildRepository
	habitRepo *repository.HabitRepository
	taskRepo  *repository.TaskRepository
	giftRepo  *repository.GiftRepository
}

// NewChildService creates a new child service
func NewChildService(childRepo *repository.ChildRepository, habitRepo *repository.HabitRepository, taskRepo *repository.TaskRepository, giftRepo *repository.GiftRepository) *ChildService {
	return &ChildService{
		childRepo: childRepo,
		habitRepo: habitRepo,
		taskRepo:  taskRepo,
		giftRepo:  giftRepo,
	}
}

// CreateChild adds a child profile with a zero reward balance
func (s *ChildService) CreateChild(parentID int64, name, gender string) (*models.Child, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}
	if err := validation.ValidateGender(gender); err != nil {
		return nil, err
	}

	child, err := s.childRepo.CreateChild(parentID, name, models.Gender(gender))
	if err != nil {
		return nil, fmt.Errorf("failed to create child: %w", err)
	}
	return child, nil
}

// GetChild returns a child owned by the parent
func (s *ChildService) GetChild(parentID, childID int64) (*models.Child, error) {
	child, err := s.childRepo.GetChildForParent(childID, parentID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, ErrChildNotFound
	}
	return child, nil
}

// GetChildren returns the parent's children with their habits, tasks and
// gifts populated. Collections come back as empty arrays, never null.
func (s *ChildService) GetChildren(parentID int64) ([]models.ChildDetails, error) {
	children, err := s.childRepo.GetChildrenByParent(parentID)
	if err != nil {
		return nil, err
	}

	details := make([]models.ChildDetails, 0, len(children))
	for _, child := range children {
		d := models.ChildDetails{Child: child}

		if d.Habits, err = s.habitRepo.GetHabitsByChild(child.ID); err != nil {
			return nil, err
		}
		if d.Tasks, err = s.taskRepo.GetTasksByChild(child.ID); err != nil {
			return nil, err
		}
		if d.Gifts, err = s.giftRepo.GetGiftsByChild(child.ID); err != nil {
			return nil, err
		}

		if d.Habits == nil {
			d.Habits = []models.Habit{}
		}
		if d.Tasks == nil {
			d.Tasks = []models.Task{}
		}
		if d.Gifts == nil {
			d.Gifts = []models.Gift{}
		}

		details = append(details, d)
	}
	return details, nil
}

// UpdateChild renames a child and/or changes its gender
func (s *ChildService) UpdateChild(parentID, childID int64, name, gender *string) (*models.Child, error) {
	child, err := s.GetChild(parentID, childID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		if err := validation.ValidateName(*name); err != nil {
			return nil, err
		}
		child.Name = *name
	}
	if gender != nil {
		if err := validation.ValidateGender(*gender); err != nil {
			return nil, err
		}
		child.Gender = models.Gender(*gender)
	}

	if err := s.childRepo.UpdateChild(childID, child.Name, child.Gender); err != nil {
		return nil, err
	}
	return child, nil
}

// DeleteChild removes a child and everything attached to it
func (s *ChildService) DeleteChild(parentID, childID int64) error {
	if _, err := s.GetChild(parentID, childID); err != nil {
		return err
	}
	return s.childRepo.DeleteChild(childID)
}
