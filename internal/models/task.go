package models

import (
	"encoding/json"
	"time"
)

// TaskSchedule carries the optional deadline fields of a task. A task either
// has a full schedule or no schedule at all; the pointer on Task makes that
// variant explicit instead of pruning individual JSON keys per handler.
type TaskSchedule struct {
	DaysToComplete int    `json:"daysToComplete"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
}

// Task is a one-off commitment with a confirm/cancel/reset lifecycle
type Task struct {
	ID          int64         `json:"id"`
	ChildID     int64         `json:"childId"`
	Name        string        `json:"name"`
	Reward      int           `json:"reward"`
	IsCompleted Status        `json:"isCompleted"`
	Schedule    *TaskSchedule `json:"-"`
	CreatedAt   time.Time     `json:"-"`
	UpdatedAt   time.Time     `json:"-"`
}

// taskJSON is the wire shape of a task: schedule fields appear at the top
// level, and only for tasks that have a schedule.
type taskJSON struct {
	ID             int64  `json:"id"`
	ChildID        int64  `json:"childId"`
	Name           string `json:"name"`
	Reward         int    `json:"reward"`
	IsCompleted    Status `json:"isCompleted"`
	DaysToComplete *int   `json:"daysToComplete,omitempty"`
	StartDate      string `json:"startDate,omitempty"`
	EndDate        string `json:"endDate,omitempty"`
}

// MarshalJSON flattens the schedule variant into the wire shape
func (t Task) MarshalJSON() ([]byte, error) {
	out := taskJSON{
		ID:          t.ID,
		ChildID:     t.ChildID,
		Name:        t.Name,
		Reward:      t.Reward,
		IsCompleted: t.IsCompleted,
	}
	if t.Schedule != nil {
		out.DaysToComplete = &t.Schedule.DaysToComplete
		out.StartDate = t.Schedule.StartDate
		out.EndDate = t.Schedule.EndDate
	}
	return json.Marshal(out)
}
