package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// DefaultTaskName is the placeholder name given to freshly created tasks
const DefaultTaskName = "New Task"

// DefaultDeadline is how far in the future a new task's deadline is placed
const DefaultDeadline = 48 * time.Hour

// Priority represents task priority level
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Priorities lists the priority levels from lowest to highest
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ParsePriority maps user input (low, med, h, ...) to a Priority
func ParsePriority(s string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "l":
		return PriorityLow, true
	case "medium", "med", "m":
		return PriorityMedium, true
	case "high", "hi", "h":
		return PriorityHigh, true
	}
	return "", false
}

// Normalize returns p, or PriorityMedium when p is not a known level
func (p Priority) Normalize() Priority {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p
	default:
		return PriorityMedium
	}
}

// Weight returns a numeric weight for sorting by priority
func (p Priority) Weight() int {
	switch p.Normalize() {
	case PriorityHigh:
		return 3
	case PriorityLow:
		return 1
	default:
		return 2
	}
}

// Next cycles LOW -> MEDIUM -> HIGH -> LOW
func (p Priority) Next() Priority {
	switch p.Normalize() {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return PriorityLow
	}
}

// Task represents a todo item. Timestamps are milliseconds since the epoch.
type Task struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Priority    Priority `json:"priority"`
	Description string   `json:"description"`
	Completed   bool     `json:"completed"`
	CreatedAt   int64    `json:"createdAt"`
	UpdatedAt   int64    `json:"updatedAt"`
	Deadline    *int64   `json:"deadline,omitempty"`
}

// NewTask builds a default task created at now, with a two-day deadline
func NewTask(now time.Time) Task {
	ts := now.UnixMilli()
	deadline := now.Add(DefaultDeadline).UnixMilli()
	return Task{
		ID:        strconv.FormatInt(ts, 10),
		Name:      DefaultTaskName,
		Priority:  PriorityMedium,
		CreatedAt: ts,
		UpdatedAt: ts,
		Deadline:  &deadline,
	}
}

// UniqueID returns the timestamp-derived id for now, bumped forward one
// millisecond at a time until it does not collide with any of tasks.
func UniqueID(now time.Time, tasks []Task) string {
	taken := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		taken[t.ID] = true
	}
	ts := now.UnixMilli()
	for taken[strconv.FormatInt(ts, 10)] {
		ts++
	}
	return strconv.FormatInt(ts, 10)
}

// Created returns the creation timestamp as a time.Time
func (t Task) Created() time.Time {
	return time.UnixMilli(t.CreatedAt)
}

// Updated returns the last update timestamp as a time.Time
func (t Task) Updated() time.Time {
	return time.UnixMilli(t.UpdatedAt)
}

// DeadlineTime returns the deadline, or nil when the task has none
func (t Task) DeadlineTime() *time.Time {
	if t.Deadline == nil {
		return nil
	}
	d := time.UnixMilli(*t.Deadline)
	return &d
}

// WithDeadline returns a copy of t due at d
func (t Task) WithDeadline(d time.Time) Task {
	ms := d.UnixMilli()
	t.Deadline = &ms
	return t
}

// Remaining returns the time left until the task's deadline as of now
func (t Task) Remaining(now time.Time) Remaining {
	return RemainingAt(t.Deadline, now)
}

// IsOverdue returns true if the task is past its deadline
func (t Task) IsOverdue(now time.Time) bool {
	return t.Remaining(now).Kind == RemainingOverdue
}

// UnmarshalJSON tolerates unknown priority values by falling back to MEDIUM
func (t *Task) UnmarshalJSON(data []byte) error {
	type plain Task
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*t = Task(p)
	if t.Priority != "" {
		t.Priority = t.Priority.Normalize()
	}
	return nil
}
