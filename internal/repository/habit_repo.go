package repository

import (
	"database/sql"
	"fmt"
	"time"

	"chorepoints/internal/database"
	"chorepoints/internal/models"
)

// HabitRepository handles database operations for habits and their day windows
type HabitRepository struct {
	db *database.DB
}

// NewHabitRepository creates a new habit repository
func NewHabitRepository(db *database.DB) *HabitRepository {
	return &HabitRepository{db: db}
}

// CreateHabit inserts a habit and generates its day window starting today.
// Every day starts out unknown.
func (r *HabitRepository) CreateHabit(childID int64, name string, rewardPerDay int) (*models.Habit, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := tx.ExecReturningID(`
		INSERT INTO habits (child_id, name, reward_per_day)
		VALUES (?, ?, ?)
	`, childID, name, rewardPerDay)
	if err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	habit := &models.Habit{
		ID:           id,
		ChildID:      childID,
		Name:         name,
		RewardPerDay: rewardPerDay,
		Days:         make([]models.HabitDay, 0, models.HabitWindowDays),
	}

	start := time.Now()
	for i := 0; i < models.HabitWindowDays; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		if _, err := tx.Exec(`
			INSERT INTO habit_days (habit_id, date, status)
			VALUES (?, ?, ?)
		`, id, date, string(models.StatusUnknown)); err != nil {
			return nil, fmt.Errorf("failed to create habit day: %w", err)
		}
		habit.Days = append(habit.Days, models.HabitDay{Date: date, IsCompleted: models.StatusUnknown})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit habit: %w", err)
	}
	return habit, nil
}

// GetHabit retrieves a habit with its day window
func (r *HabitRepository) GetHabit(habitID int64) (*models.Habit, error) {
	query := `
		SELECT id, child_id, name, reward_per_day, created_at, updated_at
		FROM habits
		WHERE id = ?
	`
	habit := &models.Habit{}
	err := r.db.QueryRow(query, habitID).Scan(
		&habit.ID,
		&habit.ChildID,
		&habit.Name,
		&habit.RewardPerDay,
		&habit.CreatedAt,
		&habit.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}

	habit.Days, err = r.getDays(habitID)
	if err != nil {
		return nil, err
	}
	return habit, nil
}

func (r *HabitRepository) getDays(habitID int64) ([]models.HabitDay, error) {
	rows, err := r.db.Query(`
		SELECT date, status
		FROM habit_days
		WHERE habit_id = ?
		ORDER BY date
	`, habitID)
	if err != nil {
		return nil, fmt.Errorf("failed to query habit days: %w", err)
	}
	defer rows.Close()

	days := make([]models.HabitDay, 0, models.HabitWindowDays)
	for rows.Next() {
		var day models.HabitDay
		var status string
		if err := rows.Scan(&day.Date, &status); err != nil {
			return nil, fmt.Errorf("failed to scan habit day: %w", err)
		}
		day.IsCompleted = models.Status(status)
		days = append(days, day)
	}
	return days, rows.Err()
}

// GetHabitsByChild retrieves all habits of a child, windows included
func (r *HabitRepository) GetHabitsByChild(childID int64) ([]models.Habit, error) {
	query := `
		SELECT id, child_id, name, reward_per_day, created_at, updated_at
		FROM habits
		WHERE child_id = ?
		ORDER BY id
	`
	rows, err := r.db.Query(query, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to query habits: %w", err)
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		var habit models.Habit
		if err := rows.Scan(
			&habit.ID,
			&habit.ChildID,
			&habit.Name,
			&habit.RewardPerDay,
			&habit.CreatedAt,
			&habit.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		habits = append(habits, habit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range habits {
		habits[i].Days, err = r.getDays(habits[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return habits, nil
}

// UpdateHabit updates a habit's name and per-day reward
func (r *HabitRepository) UpdateHabit(habitID int64, name string, rewardPerDay int) error {
	query := `
		UPDATE habits
		SET name = ?, reward_per_day = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, name, rewardPerDay, habitID)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	return nil
}

// SetDayStatus marks one day of a habit's window. Runs on the given DBTX so
// the status change commits together with its reward movement.
func (r *HabitRepository) SetDayStatus(q database.DBTX, habitID int64, date string, status models.Status) error {
	query := `
		UPDATE habit_days
		SET status = ?
		WHERE habit_id = ? AND date = ?
	`
	_, err := q.Exec(query, string(status), habitID, date)
	if err != nil {
		return fmt.Errorf("failed to update habit day: %w", err)
	}
	return nil
}

// DeleteHabit removes a habit; its day window cascades
func (r *HabitRepository) DeleteHabit(habitID int64) error {
	query := "DELETE FROM habits WHERE id = ?"
	_, err := r.db.Exec(query, habitID)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	return nil
}
