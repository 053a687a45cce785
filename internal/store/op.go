package store

import (
	"context"
	"errors"

	"github.com/dori/taskdeck/internal/model"
)

// Action names one store operation
type Action string

const (
	ActionFetch  Action = "task/fetchTasks"
	ActionSave   Action = "task/saveTask"
	ActionDelete Action = "task/deleteTask"
)

// Phase is the lifecycle stage of an operation
type Phase int

const (
	PhasePending Phase = iota
	PhaseFulfilled
	PhaseRejected
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseFulfilled:
		return "fulfilled"
	case PhaseRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Failure messages surfaced through State.Error
const (
	MsgFetchFailed  = "Failed to fetch tasks from storage"
	MsgSaveFailed   = "Failed to save task to storage"
	MsgDeleteFailed = "Failed to delete task from storage"
)

var (
	// ErrClosed rejects operations dispatched after Close
	ErrClosed = errors.New("store: closed")
	// ErrMissingID rejects saves of a task without an id
	ErrMissingID = errors.New("store: task has no id")
	// ErrNotAcknowledged means storage did not confirm the write
	ErrNotAcknowledged = errors.New("store: write not acknowledged")
)

// OpError is the rejection reason of an operation. Error() is the
// human-readable message stored in State.Error.
type OpError struct {
	Action  Action
	Message string
	Err     error
}

func (e *OpError) Error() string { return e.Message }

func (e *OpError) Unwrap() error { return e.Err }

// Op is a handle on a dispatched operation
type Op struct {
	ID     string
	Action Action

	ctx       context.Context
	run       func(ctx context.Context, base []model.Task) ([]model.Task, error)
	announced <-chan struct{}

	done  chan struct{}
	tasks []model.Task
	err   error
}

// Done is closed once the operation has settled
func (o *Op) Done() <-chan struct{} {
	return o.done
}

// Wait blocks until the operation settles or ctx ends. It returns the
// collection committed by the operation.
func (o *Op) Wait(ctx context.Context) ([]model.Task, error) {
	select {
	case <-o.done:
		return o.Result()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Result returns the outcome of a settled operation
func (o *Op) Result() ([]model.Task, error) {
	select {
	case <-o.done:
		return cloneTasks(o.tasks), o.err
	default:
		return nil, errors.New("store: operation still pending")
	}
}

func (o *Op) settle(tasks []model.Task, err error) {
	o.tasks = tasks
	o.err = err
	close(o.done)
}

func failureMessage(a Action) string {
	switch a {
	case ActionFetch:
		return MsgFetchFailed
	case ActionSave:
		return MsgSaveFailed
	default:
		return MsgDeleteFailed
	}
}

func cloneTasks(tasks []model.Task) []model.Task {
	if tasks == nil {
		return nil
	}
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		if t.Deadline != nil {
			d := *t.Deadline
			t.Deadline = &d
		}
		out[i] = t
	}
	return out
}
