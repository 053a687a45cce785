package ui

import "time"

// Status is the foreground state of the terminal session
type Status int

const (
	StatusActive Status = iota
	StatusBackground
)

// String returns the display name for a status
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusBackground:
		return "background"
	default:
		return "unknown"
	}
}

// AppState tracks terminal focus. A session starts active; blur moves it
// to the background and the next focus brings it back.
type AppState struct {
	Status     Status
	LastActive time.Time
}

// NewAppState returns an active state
func NewAppState(now time.Time) AppState {
	return AppState{Status: StatusActive, LastActive: now}
}

// Active reports whether the terminal has focus
func (s AppState) Active() bool { return s.Status == StatusActive }

// Focus marks the session active. regained is true when it was in the
// background before.
func (s AppState) Focus(now time.Time) (next AppState, regained bool) {
	regained = s.Status == StatusBackground
	return AppState{Status: StatusActive, LastActive: now}, regained
}

// Blur moves the session to the background, keeping LastActive
func (s AppState) Blur() AppState {
	s.Status = StatusBackground
	return s
}
