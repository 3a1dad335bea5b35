package models

import "time"

// Gender of a child profile
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Valid reports whether g is a known gender value
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Child is a tracked profile with an accruing reward-points balance.
// Rewards only move through habit/task confirmation and gift purchase/reset.
type Child struct {
	ID        int64     `json:"id"`
	ParentID  int64     `json:"-"`
	Name      string    `json:"name"`
	Gender    Gender    `json:"gender"`
	Rewards   int       `json:"rewards"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// ChildDetails is a child with its collections populated, as returned by the
// login payload and the user-info endpoint.
type ChildDetails struct {
	Child
	Habits []Habit `json:"habits"`
	Tasks  []Task  `json:"tasks"`
	Gifts  []Gift  `json:"gifts"`
}
