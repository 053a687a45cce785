package model

import (
	"fmt"
	"time"
)

// RemainingKind classifies how much time is left before a deadline
type RemainingKind int

const (
	RemainingNone RemainingKind = iota // no deadline set
	RemainingOverdue
	RemainingDays
	RemainingHours
	RemainingMinutes
)

// Remaining is the broken-down time left until a deadline
type Remaining struct {
	Kind    RemainingKind
	Days    int
	Hours   int // hours left after whole days
	Minutes int // minutes left after whole hours
}

// RemainingAt computes the time left from now until deadline (ms since epoch).
// Only the largest unit(s) are kept: days+hours, hours, or minutes.
func RemainingAt(deadline *int64, now time.Time) Remaining {
	if deadline == nil {
		return Remaining{Kind: RemainingNone}
	}

	diff := time.Duration(*deadline-now.UnixMilli()) * time.Millisecond
	if diff < 0 {
		return Remaining{Kind: RemainingOverdue}
	}

	const day = 24 * time.Hour
	days := int(diff / day)
	hours := int((diff % day) / time.Hour)

	switch {
	case days > 0:
		return Remaining{Kind: RemainingDays, Days: days, Hours: hours}
	case hours > 0:
		return Remaining{Kind: RemainingHours, Hours: hours}
	default:
		return Remaining{Kind: RemainingMinutes, Minutes: int((diff % time.Hour) / time.Minute)}
	}
}

// String renders the remaining time in English
func (r Remaining) String() string {
	switch r.Kind {
	case RemainingNone:
		return "No deadline"
	case RemainingOverdue:
		return "Overdue"
	case RemainingDays:
		return fmt.Sprintf("%dd %dh left", r.Days, r.Hours)
	case RemainingHours:
		return fmt.Sprintf("%dh left", r.Hours)
	default:
		return fmt.Sprintf("%dm left", r.Minutes)
	}
}
