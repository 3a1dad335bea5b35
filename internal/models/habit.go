package models

import "time"

// HabitWindowDays is the length of the lookahead window generated when a
// habit is created. Each day transitions exactly once out of unknown.
const HabitWindowDays = 10

// Habit is a recurring commitment tracked over a fixed 10-day window
type Habit struct {
	ID           int64      `json:"id"`
	ChildID      int64      `json:"childId"`
	Name         string     `json:"name"`
	RewardPerDay int        `json:"rewardPerDay"`
	Days         []HabitDay `json:"days"`
	CreatedAt    time.Time  `json:"-"`
	UpdatedAt    time.Time  `json:"-"`
}

// HabitDay is one addressable day of the habit window
type HabitDay struct {
	Date        string `json:"date"`
	IsCompleted Status `json:"isCompleted"`
}

// Day returns the day entry matching date, or nil when the date is outside
// the habit's window.
func (h *Habit) Day(date string) *HabitDay {
	for i := range h.Days {
		if h.Days[i].Date == date {
			return &h.Days[i]
		}
	}
	return nil
}

// AllConfirmed reports whether every day of the window has been confirmed
func (h *Habit) AllConfirmed() bool {
	if len(h.Days) == 0 {
		return false
	}
	for _, day := range h.Days {
		if day.IsCompleted != StatusConfirmed {
			return false
		}
	}
	return true
}

// CompletionBonus is the extra reward granted when the final day of the
// window is confirmed: half of the full window's base reward.
func (h *Habit) CompletionBonus() int {
	return h.RewardPerDay * HabitWindowDays / 2
}
