package feedback

import (
	"os/exec"
	"strconv"
	"time"
)

// Urgency levels for desktop notifications
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

func (u Urgency) String() string {
	switch u {
	case UrgencyLow:
		return "low"
	case UrgencyCritical:
		return "critical"
	default:
		return "normal"
	}
}

// Notification is a desktop notification
type Notification struct {
	Title   string
	Body    string
	Urgency Urgency
	Timeout time.Duration
	Icon    string // Optional icon name
}

// Runner executes an external command
type Runner func(name string, args ...string) error

// ExecRunner runs the command with os/exec and waits for it
func ExecRunner(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// notifySendArgs builds the notify-send argument list for n
func notifySendArgs(n Notification) []string {
	args := []string{"-u", n.Urgency.String()}

	// milliseconds
	if n.Timeout > 0 {
		args = append(args, "-t", strconv.Itoa(int(n.Timeout.Milliseconds())))
	}
	if n.Icon != "" {
		args = append(args, "-i", n.Icon)
	}
	args = append(args, "-a", AppName, n.Title)
	if n.Body != "" {
		args = append(args, n.Body)
	}
	return args
}
