package service

import (
	"fmt"

	"chorepoints/internal/models"
	"chorepoints/internal/repository"
	"chorepoints/internal/security"
)

// AccountService handles whole-account operations that span every entity a
// parent owns.
type AccountService struct {
	userRepo  *repository.UserRepository
	childRepo *repository.ChildRepository
	childSvc  *ChildService
	hasher    *security.Hasher
}

// NewAccountService creates a new account service
func NewAccountService(userRepo *repository.UserRepository, childRepo *repository.ChildRepository, childSvc *ChildService, hasher *security.Hasher) *AccountService {
	return &AccountService{
		userRepo:  userRepo,
		childRepo: childRepo,
		childSvc:  childSvc,
		hasher:    hasher,
	}
}

// Info returns the parent's account with all children populated
func (s *AccountService) Info(parent *models.Parent) (*models.Parent, []models.ChildDetails, error) {
	children, err := s.childSvc.GetChildren(parent.ID)
	if err != nil {
		return nil, nil, err
	}
	return parent, children, nil
}

// DeleteAccount re-authenticates the caller and then removes the account
// with everything it owns: children with their habits, tasks and gifts, all
// sessions, and the user row itself.
func (s *AccountService) DeleteAccount(email, password string) error {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	if !s.hasher.Check(password, user.PasswordHash) {
		return ErrWrongPassword
	}

	// Explicit deletes; the schema's cascades back them up
	if err := s.childRepo.DeleteChildrenByParent(user.ID); err != nil {
		return err
	}
	if err := s.userRepo.DeleteUserSessions(user.ID); err != nil {
		return err
	}
	if err := s.userRepo.DeleteUser(user.ID); err != nil {
		return err
	}
	return nil
}
