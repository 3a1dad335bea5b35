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
	ErrHabitNotFound       = errors.New("habit not found")
	ErrDayNotFound         = errors.New("day not found in habit days")
	ErrDayAlreadyConfirmed = errors.New("day already confirmed")
	ErrDayAlreadyCanceled  = errors.New("day already canceled")
)

// HabitService handles habit business logic, including the per-day
// confirmation flow that moves reward points.
type HabitService struct {
	db        *database.DB
	habitRepo *repository.HabitRepository
	childRepo *repository.ChildRepository
}

// NewHabitService creates a new habit service
func NewHabitService(db *database.DB, habitRepo *repository.HabitRepository, childRepo *repository.ChildRepository) *HabitService {
	return &HabitService{db: db, habitRepo: habitRepo, childRepo: childRepo}
}

// CreateHabit adds a habit with a fresh 10-day window to one of the
// parent's children.
func (s *HabitService) CreateHabit(parentID, childID int64, name string, rewardPerDay int) (*models.Habit, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}
	if err := validation.ValidateNumber("rewardPerDay", rewardPerDay); err != nil {
		return nil, err
	}

	child, err := s.childRepo.GetChildForParent(childID, parentID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, ErrChildNotFound
	}

	return s.habitRepo.CreateHabit(childID, name, rewardPerDay)
}

// getOwnedHabit loads a habit and checks that it belongs to one of the
// parent's children.
func (s *HabitService) getOwnedHabit(parentID, habitID int64) (*models.Habit, *models.Child, error) {
	habit, err := s.habitRepo.GetHabit(habitID)
	if err != nil {
		return nil, nil, err
	}
	if habit == nil {
		return nil, nil, ErrHabitNotFound
	}

	child, err := s.childRepo.GetChildForParent(habit.ChildID, parentID)
	if err != nil {
		return nil, nil, err
	}
	if child == nil {
		return nil, nil, ErrChildNotFound
	}
	return habit, child, nil
}

// UpdateHabit edits a habit's name and/or per-day reward
func (s *HabitService) UpdateHabit(parentID, habitID int64, name *string, rewardPerDay *int) (*models.Habit, error) {
	habit, _, err := s.getOwnedHabit(parentID, habitID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		if err := validation.ValidateName(*name); err != nil {
			return nil, err
		}
		habit.Name = *name
	}
	if rewardPerDay != nil {
		if err := validation.ValidateNumber("rewardPerDay", *rewardPerDay); err != nil {
			return nil, err
		}
		habit.RewardPerDay = *rewardPerDay
	}

	if err := s.habitRepo.UpdateHabit(habitID, habit.Name, habit.RewardPerDay); err != nil {
		return nil, err
	}
	return habit, nil
}

// DeleteHabit removes a habit owned by the parent
func (s *HabitService) DeleteHabit(parentID, habitID int64) error {
	if _, _, err := s.getOwnedHabit(parentID, habitID); err != nil {
		return err
	}
	return s.habitRepo.DeleteHabit(habitID)
}

// ConfirmDay marks one day of a habit as confirmed and credits the child.
// Confirming the final open day of a fully confirmed window grants an extra
// bonus of half the window's total base reward, in the same balance update.
// The day status and the reward movement commit in one transaction.
func (s *HabitService) ConfirmDay(parentID, habitID int64, date string) (*models.Habit, int, error) {
	habit, child, err := s.getOwnedHabit(parentID, habitID)
	if err != nil {
		return nil, 0, err
	}

	day := habit.Day(date)
	if day == nil {
		return nil, 0, ErrDayNotFound
	}
	switch day.IsCompleted {
	case models.StatusConfirmed:
		return nil, 0, ErrDayAlreadyConfirmed
	case models.StatusCanceled:
		return nil, 0, ErrDayAlreadyCanceled
	}

	day.IsCompleted = models.StatusConfirmed
	delta := habit.RewardPerDay
	if habit.AllConfirmed() {
		delta += habit.CompletionBonus()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.habitRepo.SetDayStatus(tx, habitID, date, models.StatusConfirmed); err != nil {
		return nil, 0, err
	}
	if err := s.childRepo.AddRewards(tx, child.ID, delta); err != nil {
		return nil, 0, err
	}
	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("failed to commit confirmation: %w", err)
	}

	return habit, child.Rewards + delta, nil
}

// CancelDay marks one day of a habit as canceled. No reward moves.
func (s *HabitService) CancelDay(parentID, habitID int64, date string) (*models.Habit, error) {
	habit, _, err := s.getOwnedHabit(parentID, habitID)
	if err != nil {
		return nil, err
	}

	day := habit.Day(date)
	if day == nil {
		return nil, ErrDayNotFound
	}
	switch day.IsCompleted {
	case models.StatusConfirmed:
		return nil, ErrDayAlreadyConfirmed
	case models.StatusCanceled:
		return nil, ErrDayAlreadyCanceled
	}

	if err := s.habitRepo.SetDayStatus(s.db, habitID, date, models.StatusCanceled); err != nil {
		return nil, err
	}
	day.IsCompleted = models.StatusCanceled
	return habit, nil
}

// ListByParent returns the parent's habits grouped per child
func (s *HabitService) ListByParent(parentID int64) ([][]models.Habit, error) {
	children, err := s.childRepo.GetChildrenByParent(parentID)
	if err != nil {
		return nil, err
	}

	groups := make([][]models.Habit, 0, len(children))
	for _, child := range children {
		habits, err := s.habitRepo.GetHabitsByChild(child.ID)
		if err != nil {
			return nil, err
		}
		if habits == nil {
			habits = []models.Habit{}
		}
		groups = append(groups, habits)
	}
	return groups, nil
}
