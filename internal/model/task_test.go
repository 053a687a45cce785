package model

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestRemainingBoundaries(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	ms := func(d time.Duration) *int64 {
		v := now.Add(d).UnixMilli()
		return &v
	}

	tests := []struct {
		name     string
		deadline *int64
		want     string
	}{
		{"no deadline", nil, "No deadline"},
		{"one millisecond ago", ms(-time.Millisecond), "Overdue"},
		{"exactly now", ms(0), "0m left"},
		{"thirty minutes", ms(30 * time.Minute), "30m left"},
		{"just under an hour", ms(59*time.Minute + 59*time.Second), "59m left"},
		{"one hour", ms(time.Hour), "1h left"},
		{"twenty five hours", ms(25 * time.Hour), "1d 1h left"},
		{"exactly two days", ms(48 * time.Hour), "2d 0h left"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemainingAt(tt.deadline, now).String()
			if got != tt.want {
				t.Fatalf("RemainingAt() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewTaskDefaults(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_123)
	task := NewTask(now)

	if task.ID != "1700000000123" {
		t.Fatalf("expected timestamp id, got %q", task.ID)
	}
	if task.Name != DefaultTaskName {
		t.Fatalf("expected default name, got %q", task.Name)
	}
	if task.Priority != PriorityMedium {
		t.Fatalf("expected MEDIUM priority, got %s", task.Priority)
	}
	if task.Completed {
		t.Fatal("new task should not be completed")
	}
	if task.CreatedAt != now.UnixMilli() || task.UpdatedAt != now.UnixMilli() {
		t.Fatalf("expected created/updated at %d, got %d/%d", now.UnixMilli(), task.CreatedAt, task.UpdatedAt)
	}
	if task.Deadline == nil || *task.Deadline != now.Add(48*time.Hour).UnixMilli() {
		t.Fatalf("expected two-day deadline, got %v", task.Deadline)
	}
	if got := task.Remaining(now).String(); got != "2d 0h left" {
		t.Fatalf("unexpected remaining time %q", got)
	}
}

func TestUniqueIDSkipsTakenMilliseconds(t *testing.T) {
	now := time.UnixMilli(1000)
	tasks := []Task{{ID: "1000"}, {ID: "1001"}}

	if got := UniqueID(now, tasks); got != "1002" {
		t.Fatalf("expected 1002, got %s", got)
	}
	if got := UniqueID(now, nil); got != "1000" {
		t.Fatalf("expected 1000, got %s", got)
	}
}

func TestTaskJSONShape(t *testing.T) {
	task := Task{
		ID:        "1",
		Name:      "Write report",
		Priority:  PriorityHigh,
		CreatedAt: 1,
		UpdatedAt: 2,
	}

	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"id", "name", "priority", "description", "completed", "createdAt", "updatedAt"} {
		if _, ok := fields[key]; !ok {
			t.Fatalf("expected field %q in %s", key, data)
		}
	}
	if _, ok := fields["deadline"]; ok {
		t.Fatalf("deadline should be omitted when unset: %s", data)
	}

	var back Task
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal task: %v", err)
	}
	if !reflect.DeepEqual(back, task) {
		t.Fatalf("round trip mismatch: %+v vs %+v", back, task)
	}
}

func TestUnknownPriorityFallsBackToMedium(t *testing.T) {
	var task Task
	if err := json.Unmarshal([]byte(`{"id":"1","priority":"URGENT"}`), &task); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if task.Priority != PriorityMedium {
		t.Fatalf("expected MEDIUM, got %s", task.Priority)
	}
}

func TestParsePriority(t *testing.T) {
	for input, want := range map[string]Priority{"low": PriorityLow, "M": PriorityMedium, "hi": PriorityHigh} {
		got, ok := ParsePriority(input)
		if !ok || got != want {
			t.Fatalf("ParsePriority(%q) = %s, %v", input, got, ok)
		}
	}
	if _, ok := ParsePriority("urgent"); ok {
		t.Fatal("urgent is not a priority level")
	}
	if PriorityHigh.Next() != PriorityLow {
		t.Fatal("priority should wrap around")
	}
}
