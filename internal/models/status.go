package models

// Status is the completion state shared by tasks and habit days
type Status string

const (
	StatusUnknown   Status = "unknown"
	StatusConfirmed Status = "confirmed"
	StatusCanceled  Status = "canceled"
)

// Terminal reports whether the status can no longer transition
// (habit days are one-shot; tasks can still be reset by a parent)
func (s Status) Terminal() bool {
	return s == StatusConfirmed || s == StatusCanceled
}

// Valid reports whether s is one of the known states
func (s Status) Valid() bool {
	switch s {
	case StatusUnknown, StatusConfirmed, StatusCanceled:
		return true
	}
	return false
}
