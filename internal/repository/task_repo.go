package repository

import (
	"database/sql"
	"fmt"

	"chorepoints/internal/database"
	"chorepoints/internal/models"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct {
	db *database.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *database.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// CreateTask inserts a task, with or without a schedule
func (r *TaskRepository) CreateTask(childID int64, name string, reward int, schedule *models.TaskSchedule) (*models.Task, error) {
	var days, start, end interface{}
	if schedule != nil {
		days = schedule.DaysToComplete
		start = schedule.StartDate
		end = schedule.EndDate
	}

	query := `
		INSERT INTO tasks (child_id, name, reward, status, days_to_complete, start_date, end_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, childID, name, reward, string(models.StatusUnknown), days, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return &models.Task{
		ID:          id,
		ChildID:     childID,
		Name:        name,
		Reward:      reward,
		IsCompleted: models.StatusUnknown,
		Schedule:    schedule,
	}, nil
}

// GetTask retrieves a task by ID
func (r *TaskRepository) GetTask(taskID int64) (*models.Task, error) {
	query := `
		SELECT id, child_id, name, reward, status, days_to_complete, start_date, end_date, created_at, updated_at
		FROM tasks
		WHERE id = ?
	`
	return scanTask(r.db.QueryRow(query, taskID))
}

func scanTask(row *sql.Row) (*models.Task, error) {
	task := &models.Task{}
	var status string
	var days sql.NullInt64
	var start, end sql.NullString
	err := row.Scan(
		&task.ID,
		&task.ChildID,
		&task.Name,
		&task.Reward,
		&status,
		&days,
		&start,
		&end,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	task.IsCompleted = models.Status(status)
	if days.Valid {
		task.Schedule = &models.TaskSchedule{
			DaysToComplete: int(days.Int64),
			StartDate:      start.String,
			EndDate:        end.String,
		}
	}
	return task, nil
}

// GetTasksByChild retrieves all tasks of a child
func (r *TaskRepository) GetTasksByChild(childID int64) ([]models.Task, error) {
	return r.queryTasks(`
		SELECT id, child_id, name, reward, status, days_to_complete, start_date, end_date, created_at, updated_at
		FROM tasks
		WHERE child_id = ?
		ORDER BY id
	`, childID)
}

// GetFinishedTasksByChild retrieves a child's confirmed tasks
func (r *TaskRepository) GetFinishedTasksByChild(childID int64) ([]models.Task, error) {
	return r.queryTasks(`
		SELECT id, child_id, name, reward, status, days_to_complete, start_date, end_date, created_at, updated_at
		FROM tasks
		WHERE child_id = ? AND status = ?
		ORDER BY id
	`, childID, string(models.StatusConfirmed))
}

func (r *TaskRepository) queryTasks(query string, args ...interface{}) ([]models.Task, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var task models.Task
		var status string
		var days sql.NullInt64
		var start, end sql.NullString
		if err := rows.Scan(
			&task.ID,
			&task.ChildID,
			&task.Name,
			&task.Reward,
			&status,
			&days,
			&start,
			&end,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		task.IsCompleted = models.Status(status)
		if days.Valid {
			task.Schedule = &models.TaskSchedule{
				DaysToComplete: int(days.Int64),
				StartDate:      start.String,
				EndDate:        end.String,
			}
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// UpdateTask updates a task's name, reward and schedule
func (r *TaskRepository) UpdateTask(taskID int64, name string, reward int, schedule *models.TaskSchedule) error {
	var days, start, end interface{}
	if schedule != nil {
		days = schedule.DaysToComplete
		start = schedule.StartDate
		end = schedule.EndDate
	}

	query := `
		UPDATE tasks
		SET name = ?, reward = ?, days_to_complete = ?, start_date = ?, end_date = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, name, reward, days, start, end, taskID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// SetStatus changes a task's lifecycle status. Runs on the given DBTX so the
// status change commits together with its reward movement.
func (r *TaskRepository) SetStatus(q database.DBTX, taskID int64, status models.Status) error {
	query := `
		UPDATE tasks
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := q.Exec(query, string(status), taskID)
	if err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}
	return nil
}

// DeleteTask removes a task
func (r *TaskRepository) DeleteTask(taskID int64) error {
	query := "DELETE FROM tasks WHERE id = ?"
	_, err := r.db.Exec(query, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
