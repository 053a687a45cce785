// Package feedback gives the user short physical-style cues for UI events.
// On a terminal the cue is the bell; notification-class cues can also be
// mirrored to the desktop through notify-send.
package feedback

import (
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// AppName is the application name shown on desktop notifications
const AppName = "taskdeck"

// Type names a feedback cue
type Type string

const (
	ImpactLight         Type = "impactLight"
	ImpactMedium        Type = "impactMedium"
	ImpactHeavy         Type = "impactHeavy"
	Rigid               Type = "rigid"
	Soft                Type = "soft"
	NotificationSuccess Type = "notificationSuccess"
	NotificationWarning Type = "notificationWarning"
	NotificationError   Type = "notificationError"
	Selection           Type = "selection"
)

// Types lists every cue
var Types = []Type{
	ImpactLight, ImpactMedium, ImpactHeavy, Rigid, Soft,
	NotificationSuccess, NotificationWarning, NotificationError, Selection,
}

// Rings reports whether t sounds the terminal bell. Light cues are silent.
func (t Type) Rings() bool {
	switch t {
	case ImpactMedium, ImpactHeavy, Rigid, NotificationWarning, NotificationError:
		return true
	default:
		return false
	}
}

// notification returns the desktop notification mirroring t, if any
func (t Type) notification() (Notification, bool) {
	switch t {
	case NotificationSuccess:
		return Notification{Title: AppName, Body: "Done", Urgency: UrgencyLow, Timeout: 3 * time.Second}, true
	case NotificationWarning:
		return Notification{Title: AppName, Body: "Warning", Urgency: UrgencyNormal, Timeout: 5 * time.Second,
			Icon: "dialog-warning-symbolic"}, true
	case NotificationError:
		return Notification{Title: AppName, Body: "Something went wrong", Urgency: UrgencyCritical,
			Timeout: 10 * time.Second, Icon: "dialog-error-symbolic"}, true
	default:
		return Notification{}, false
	}
}

const bell = "\a"

// Option configures a Feedback
type Option func(*Feedback)

// WithWriter sets where the bell is written (stderr by default)
func WithWriter(w io.Writer) Option {
	return func(f *Feedback) { f.out = w }
}

// WithDesktop mirrors notification cues to desktop notifications
func WithDesktop(enabled bool) Option {
	return func(f *Feedback) { f.desktop = enabled }
}

// WithRunner replaces the command runner used for notify-send
func WithRunner(r Runner) Option {
	return func(f *Feedback) { f.run = r }
}

// WithLogger logs cues at debug level and notification failures at warn
func WithLogger(log *zap.Logger) Option {
	return func(f *Feedback) {
		if log != nil {
			f.log = log
		}
	}
}

// Feedback triggers cues. It is safe for concurrent use.
type Feedback struct {
	mu      sync.Mutex
	enabled bool
	desktop bool
	out     io.Writer
	run     Runner
	log     *zap.Logger
}

// New creates an enabled Feedback
func New(opts ...Option) *Feedback {
	f := &Feedback{
		enabled: true,
		out:     os.Stderr,
		run:     ExecRunner,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Enable turns cues on
func (f *Feedback) Enable() { f.setEnabled(true) }

// Disable turns cues off; Trigger becomes a no-op
func (f *Feedback) Disable() { f.setEnabled(false) }

func (f *Feedback) setEnabled(v bool) {
	f.mu.Lock()
	f.enabled = v
	f.mu.Unlock()
}

// IsEnabled reports whether cues are on
func (f *Feedback) IsEnabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enabled
}

// Trigger plays cue t. Failures are logged, never returned.
func (f *Feedback) Trigger(t Type) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.enabled {
		return
	}
	f.log.Debug("feedback", zap.String("type", string(t)))

	if t.Rings() && f.out != nil {
		if _, err := io.WriteString(f.out, bell); err != nil {
			f.log.Warn("failed to ring bell", zap.Error(err))
		}
	}
	if f.desktop {
		if n, ok := t.notification(); ok {
			if err := f.run("notify-send", notifySendArgs(n)...); err != nil {
				f.log.Warn("failed to send desktop notification", zap.Error(err))
			}
		}
	}
}

func (f *Feedback) Success()   { f.Trigger(NotificationSuccess) }
func (f *Feedback) Warning()   { f.Trigger(NotificationWarning) }
func (f *Feedback) Error()     { f.Trigger(NotificationError) }
func (f *Feedback) Light()     { f.Trigger(ImpactLight) }
func (f *Feedback) Medium()    { f.Trigger(ImpactMedium) }
func (f *Feedback) Heavy()     { f.Trigger(ImpactHeavy) }
func (f *Feedback) Selection() { f.Trigger(Selection) }
