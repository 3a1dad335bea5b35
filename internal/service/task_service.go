package service

import (
	"errors"
	"fmt"
	"time"

	"chorepoints/internal/database"
	"chorepoints/internal/models"
	"chorepoints/internal/repository"
	"chorepoints/internal/validation"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskAlreadyConfirmed = errors.New("task already confirmed")
	ErrTaskAlreadyCanceled  = errors.New("task already canceled")
	ErrTaskAlreadyReset     = errors.New("task already reset")
	ErrNoFinishedTasks      = errors.New("no finished tasks found")
)

// TaskService handles task business logic and the confirm/cancel/reset
// lifecycle.
type TaskService struct {
	db        *database.DB
	taskRepo  *repository.TaskRepository
	childRepo *repository.ChildRepository
}

// NewTaskService creates a new task service
func NewTaskService(db *database.DB, taskRepo *repository.TaskRepository, childRepo *repository.ChildRepository) *TaskService {
	return &TaskService{db: db, taskRepo: taskRepo, childRepo: childRepo}
}

// newSchedule derives a schedule window of daysToComplete days from start
func newSchedule(start time.Time, daysToComplete int) *models.TaskSchedule {
	return &models.TaskSchedule{
		DaysToComplete: daysToComplete,
		StartDate:      start.Format("2006-01-02"),
		EndDate:        start.AddDate(0, 0, daysToComplete).Format("2006-01-02"),
	}
}

// CreateTask adds a task to one of the parent's children. A task created
// with daysToComplete gets a schedule starting today; without it the task
// has no deadline at all.
func (s *TaskService) CreateTask(parentID, childID int64, name string, reward int, daysToComplete *int) (*models.Task, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}
	if err := validation.ValidateNumber("reward", reward); err != nil {
		return nil, err
	}

	var schedule *models.TaskSchedule
	if daysToComplete != nil {
		if err := validation.ValidateNumber("daysToComplete", *daysToComplete); err != nil {
			return nil, err
		}
		schedule = newSchedule(time.Now(), *daysToComplete)
	}

	child, err := s.childRepo.GetChildForParent(childID, parentID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, ErrChildNotFound
	}

	return s.taskRepo.CreateTask(childID, name, reward, schedule)
}

// getOwnedTask loads a task and checks that it belongs to one of the
// parent's children.
func (s *TaskService) getOwnedTask(parentID, taskID int64) (*models.Task, *models.Child, error) {
	task, err := s.taskRepo.GetTask(taskID)
	if err != nil {
		return nil, nil, err
	}
	if task == nil {
		return nil, nil, ErrTaskNotFound
	}

	child, err := s.childRepo.GetChildForParent(task.ChildID, parentID)
	if err != nil {
		return nil, nil, err
	}
	if child == nil {
		return nil, nil, ErrChildNotFound
	}
	return task, child, nil
}

// UpdateTask edits a task's name, reward and/or schedule. A new
// daysToComplete re-derives the end date from the existing start date, or
// from today when the task had no schedule yet.
func (s *TaskService) UpdateTask(parentID, taskID int64, name *string, reward, daysToComplete *int) (*models.Task, error) {
	task, _, err := s.getOwnedTask(parentID, taskID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		if err := validation.ValidateName(*name); err != nil {
			return nil, err
		}
		task.Name = *name
	}
	if reward != nil {
		if err := validation.ValidateNumber("reward", *reward); err != nil {
			return nil, err
		}
		task.Reward = *reward
	}
	if daysToComplete != nil {
		if err := validation.ValidateNumber("daysToComplete", *daysToComplete); err != nil {
			return nil, err
		}
		start := time.Now()
		if task.Schedule != nil {
			if parsed, err := time.Parse("2006-01-02", task.Schedule.StartDate); err == nil {
				start = parsed
			}
		}
		task.Schedule = newSchedule(start, *daysToComplete)
	}

	if err := s.taskRepo.UpdateTask(taskID, task.Name, task.Reward, task.Schedule); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes a task owned by the parent
func (s *TaskService) DeleteTask(parentID, taskID int64) error {
	if _, _, err := s.getOwnedTask(parentID, taskID); err != nil {
		return err
	}
	return s.taskRepo.DeleteTask(taskID)
}

// ConfirmTask marks a task confirmed and credits its reward to the child.
// The status change and the balance update commit in one transaction.
func (s *TaskService) ConfirmTask(parentID, taskID int64) (*models.Task, int, error) {
	task, child, err := s.getOwnedTask(parentID, taskID)
	if err != nil {
		return nil, 0, err
	}

	switch task.IsCompleted {
	case models.StatusConfirmed:
		return nil, 0, ErrTaskAlreadyConfirmed
	case models.StatusCanceled:
		return nil, 0, ErrTaskAlreadyCanceled
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.taskRepo.SetStatus(tx, taskID, models.StatusConfirmed); err != nil {
		return nil, 0, err
	}
	if err := s.childRepo.AddRewards(tx, child.ID, task.Reward); err != nil {
		return nil, 0, err
	}
	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("failed to commit confirmation: %w", err)
	}

	task.IsCompleted = models.StatusConfirmed
	return task, child.Rewards + task.Reward, nil
}

// CancelTask marks a task canceled. No reward moves.
func (s *TaskService) CancelTask(parentID, taskID int64) (*models.Task, error) {
	task, _, err := s.getOwnedTask(parentID, taskID)
	if err != nil {
		return nil, err
	}

	switch task.IsCompleted {
	case models.StatusConfirmed:
		return nil, ErrTaskAlreadyConfirmed
	case models.StatusCanceled:
		return nil, ErrTaskAlreadyCanceled
	}

	if err := s.taskRepo.SetStatus(s.db, taskID, models.StatusCanceled); err != nil {
		return nil, err
	}
	task.IsCompleted = models.StatusCanceled
	return task, nil
}

// ResetTask returns a terminal task to the open state. Rewards already
// granted by a confirmation stay with the child.
func (s *TaskService) ResetTask(parentID, taskID int64) (*models.Task, error) {
	task, _, err := s.getOwnedTask(parentID, taskID)
	if err != nil {
		return nil, err
	}

	if task.IsCompleted == models.StatusUnknown {
		return nil, ErrTaskAlreadyReset
	}

	if err := s.taskRepo.SetStatus(s.db, taskID, models.StatusUnknown); err != nil {
		return nil, err
	}
	task.IsCompleted = models.StatusUnknown
	return task, nil
}

// ListByParent returns the parent's tasks grouped per child
func (s *TaskService) ListByParent(parentID int64) ([][]models.Task, error) {
	children, err := s.childRepo.GetChildrenByParent(parentID)
	if err != nil {
		return nil, err
	}

	groups := make([][]models.Task, 0, len(children))
	for _, child := range children {
		tasks, err := s.taskRepo.GetTasksByChild(child.ID)
		if err != nil {
			return nil, err
		}
		if tasks == nil {
			tasks = []models.Task{}
		}
		groups = append(groups, tasks)
	}
	return groups, nil
}

// FinishedTasks returns a child's confirmed tasks
func (s *TaskService) FinishedTasks(parentID, childID int64) ([]models.Task, error) {
	child, err := s.childRepo.GetChildForParent(childID, parentID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, ErrChildNotFound
	}

	tasks, err := s.taskRepo.GetFinishedTasksByChild(childID)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, ErrNoFinishedTasks
	}
	return tasks, nil
}
