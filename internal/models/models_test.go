package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestSessionIsExpired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{"future expiry", time.Now().Add(1 * time.Hour), false},
		{"past expiry", time.Now().Add(-1 * time.Minute), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Session{ID: "abc", UserID: 1, ExpiresAt: tt.expiresAt}
			if got := s.IsExpired(); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHabitDayLookup(t *testing.T) {
	habit := &Habit{
		Days: []HabitDay{
			{Date: "2026-08-28", IsCompleted: StatusUnknown},
			{Date: "2026-08-29", IsCompleted: StatusConfirmed},
		},
	}

	if day := habit.Day("2026-08-29"); day == nil || day.IsCompleted != StatusConfirmed {
		t.Errorf("Day(2026-08-29) = %v, want confirmed day", day)
	}
	if day := habit.Day("2026-09-15"); day != nil {
		t.Errorf("Day(2026-09-15) = %v, want nil for date outside window", day)
	}

	// mutations through the returned pointer must be visible on the habit
	habit.Day("2026-08-28").IsCompleted = StatusCanceled
	if habit.Days[0].IsCompleted != StatusCanceled {
		t.Error("Day() should return a pointer into the habit's day slice")
	}
}

func TestHabitAllConfirmed(t *testing.T) {
	habit := &Habit{RewardPerDay: 4}
	for i := 0; i < HabitWindowDays; i++ {
		habit.Days = append(habit.Days, HabitDay{Date: "d", IsCompleted: StatusConfirmed})
	}
	if !habit.AllConfirmed() {
		t.Error("AllConfirmed() = false with all days confirmed")
	}

	habit.Days[9].IsCompleted = StatusUnknown
	if habit.AllConfirmed() {
		t.Error("AllConfirmed() = true with an unconfirmed day")
	}

	empty := &Habit{}
	if empty.AllConfirmed() {
		t.Error("AllConfirmed() = true for habit without days")
	}
}

func TestHabitCompletionBonus(t *testing.T) {
	habit := &Habit{RewardPerDay: 4}
	// half of the full window's base reward: 4 * 10 * 0.5
	if got := habit.CompletionBonus(); got != 20 {
		t.Errorf("CompletionBonus() = %d, want 20", got)
	}
}

func TestStatusTerminal(t *testing.T) {
	if StatusUnknown.Terminal() {
		t.Error("unknown should not be terminal")
	}
	if !StatusConfirmed.Terminal() || !StatusCanceled.Terminal() {
		t.Error("confirmed and canceled should be terminal")
	}
}

func TestTaskJSONWithoutSchedule(t *testing.T) {
	task := Task{ID: 7, ChildID: 3, Name: "Dishes", Reward: 5, IsCompleted: StatusUnknown}

	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	body := string(data)

	for _, field := range []string{"daysToComplete", "startDate", "endDate"} {
		if strings.Contains(body, field) {
			t.Errorf("task without schedule should omit %q, got %s", field, body)
		}
	}
}

func TestTaskJSONWithSchedule(t *testing.T) {
	task := Task{
		ID: 7, ChildID: 3, Name: "Dishes", Reward: 5, IsCompleted: StatusUnknown,
		Schedule: &TaskSchedule{DaysToComplete: 2, StartDate: "2026-08-28", EndDate: "2026-08-30"},
	}

	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded["daysToComplete"] != float64(2) {
		t.Errorf("daysToComplete = %v, want 2", decoded["daysToComplete"])
	}
	if decoded["startDate"] != "2026-08-28" || decoded["endDate"] != "2026-08-30" {
		t.Errorf("schedule dates = %v / %v", decoded["startDate"], decoded["endDate"])
	}
}
