package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/dori/taskdeck/internal/model"
)

// parseQuickAdd builds a task from free text such as
// "Review PR !high due:tomorrow". Unrecognised markers stay in the name.
func parseQuickAdd(text string, now time.Time) model.Task {
	task := model.NewTask(now)

	var nameParts []string
	for _, word := range strings.Fields(text) {
		switch {
		// Priority (!low, !high, etc.)
		case strings.HasPrefix(word, "!"):
			if p, ok := model.ParsePriority(strings.TrimPrefix(word, "!")); ok {
				task.Priority = p
			} else {
				nameParts = append(nameParts, word)
			}

		// Deadline (due:tomorrow, due:friday, due:2024-01-15, due:3d, due:none)
		case strings.HasPrefix(strings.ToLower(word), "due:"):
			value := strings.ToLower(word[len("due:"):])
			if value == "none" {
				task.Deadline = nil
			} else if d := parseNaturalDate(value, now); d != nil {
				task = task.WithDeadline(*d)
			} else {
				nameParts = append(nameParts, word)
			}

		default:
			nameParts = append(nameParts, word)
		}
	}

	if name := strings.Join(nameParts, " "); name != "" {
		task.Name = name
	}
	return task
}

// parseNaturalDate understands day names, relative offsets (3d, 12h) and a
// few absolute formats. Dates without a time resolve to the end of that day.
func parseNaturalDate(s string, now time.Time) *time.Time {
	today := endOfDay(now)

	switch strings.ToLower(s) {
	case "today":
		return &today
	case "tomorrow", "tom":
		t := today.AddDate(0, 0, 1)
		return &t
	case "nextweek":
		t := today.AddDate(0, 0, 7)
		return &t
	}
	if day, ok := weekdays[strings.ToLower(s)]; ok {
		return nextWeekday(day, now)
	}

	if d, ok := parseOffset(s); ok {
		t := now.Add(d)
		return &t
	}

	for _, format := range []string{"2006-01-02", "01/02/2006"} {
		if t, err := time.ParseInLocation(format, s, now.Location()); err == nil {
			t = endOfDay(t)
			return &t
		}
	}

	return nil
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"mon":       time.Monday,
	"tuesday":   time.Tuesday,
	"tue":       time.Tuesday,
	"wednesday": time.Wednesday,
	"wed":       time.Wednesday,
	"thursday":  time.Thursday,
	"thu":       time.Thursday,
	"friday":    time.Friday,
	"fri":       time.Friday,
	"saturday":  time.Saturday,
	"sat":       time.Saturday,
	"sunday":    time.Sunday,
	"sun":       time.Sunday,
}

// parseOffset reads "<n>d", "<n>h" or "<n>m" with n > 0
func parseOffset(s string) (time.Duration, bool) {
	if len(s) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n <= 0 {
		return 0, false
	}
	switch s[len(s)-1] {
	case 'd':
		return time.Duration(n) * 24 * time.Hour, true
	case 'h':
		return time.Duration(n) * time.Hour, true
	case 'm':
		return time.Duration(n) * time.Minute, true
	}
	return 0, false
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// nextWeekday returns the end of the next given weekday, never today
func nextWeekday(day time.Weekday, now time.Time) *time.Time {
	daysUntil := int(day - now.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}

	t := endOfDay(now).AddDate(0, 0, daysUntil)
	return &t
}
