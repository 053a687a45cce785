// Package store owns the authoritative task collection and keeps it in step
// with persistent storage.
//
// Every mutation is queued and applied by a single worker goroutine in the
// order it was dispatched. Each operation computes its result from the
// collection committed by the operation before it, so overlapping saves and
// deletes cannot overwrite one another.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/dori/taskdeck/internal/logger"
	"github.com/dori/taskdeck/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TasksKey is the storage key holding the task collection
const TasksKey = "tasks"

// Storage is the part of the persistence adapter the store relies on
type Storage interface {
	GetInto(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any) bool
}

// State is a snapshot of the store
type State struct {
	Tasks   []model.Task
	Loading bool   // an operation is queued or running
	Error   string // message of the last rejected operation
}

// Event reports an operation changing phase, with the state right after
type Event struct {
	Action Action
	Phase  Phase
	OpID   string
	State  State
}

// Listener receives store events. Pending events are delivered on the
// dispatching goroutine, settle events on the store worker.
type Listener func(Event)

// Option configures a Store
type Option func(*Store)

// WithClock replaces time.Now for update timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger for operation lifecycle logs
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// Store holds the task collection
type Store struct {
	storage Storage
	log     *zap.Logger
	now     func() time.Time

	mu       sync.Mutex
	cond     *sync.Cond
	state    State
	queue    []*Op
	inflight int
	closed   bool
	stopped  chan struct{}

	lmu          sync.Mutex
	listeners    map[int]Listener
	nextListener int
}

// New creates a store over storage and starts its worker. The collection
// starts empty; call FetchTasks to load it.
func New(storage Storage, opts ...Option) *Store {
	s := &Store{
		storage:   storage,
		log:       zap.NewNop(),
		now:       time.Now,
		state:     State{Tasks: []model.Task{}},
		stopped:   make(chan struct{}),
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cond = sync.NewCond(&s.mu)

	go s.run()
	return s
}

// State returns a copy of the current state
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Tasks returns a copy of the committed collection
func (s *Store) Tasks() []model.Task {
	return s.State().Tasks
}

// Find returns the committed task with id
func (s *Store) Find(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.state.Tasks {
		if t.ID == id {
			return cloneTasks([]model.Task{t})[0], true
		}
	}
	return model.Task{}, false
}

// Subscribe registers l for every event until the returned func is called
func (s *Store) Subscribe(l Listener) func() {
	s.lmu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = l
	s.lmu.Unlock()

	return func() {
		s.lmu.Lock()
		delete(s.listeners, id)
		s.lmu.Unlock()
	}
}

// FetchTasks replaces the collection with the persisted one. A missing or
// unreadable value loads as an empty collection.
func (s *Store) FetchTasks(ctx context.Context) *Op {
	return s.dispatch(ctx, ActionFetch, func(ctx context.Context, _ []model.Task) ([]model.Task, error) {
		var tasks []model.Task
		if !s.storage.GetInto(ctx, TasksKey, &tasks) || tasks == nil {
			tasks = []model.Task{}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return tasks, nil
	})
}

// SaveTask replaces the task with the same id, stamping UpdatedAt, or
// appends task unchanged when the id is new.
func (s *Store) SaveTask(ctx context.Context, task model.Task) *Op {
	return s.dispatch(ctx, ActionSave, func(ctx context.Context, base []model.Task) ([]model.Task, error) {
		if task.ID == "" {
			return nil, ErrMissingID
		}
		return s.persist(ctx, ApplySave(base, task, s.now()))
	})
}

// CreateTask appends task as a new entry. If its id is already taken by
// the time the operation runs, a fresh timestamp id is derived from
// CreatedAt so the new task never replaces an existing one.
func (s *Store) CreateTask(ctx context.Context, task model.Task) *Op {
	return s.dispatch(ctx, ActionSave, func(ctx context.Context, base []model.Task) ([]model.Task, error) {
		if task.ID == "" || indexOf(base, task.ID) >= 0 {
			task.ID = model.UniqueID(task.Created(), base)
		}
		return s.persist(ctx, append(base, task))
	})
}

// DeleteTask removes the task with id. Deleting an unknown id still
// rewrites the (unchanged) collection.
func (s *Store) DeleteTask(ctx context.Context, id string) *Op {
	return s.dispatch(ctx, ActionDelete, func(ctx context.Context, base []model.Task) ([]model.Task, error) {
		return s.persist(ctx, ApplyDelete(base, id))
	})
}

// Close stops accepting operations, lets queued ones finish and waits for
// the worker to exit.
func (s *Store) Close() error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		s.cond.Broadcast()
	}
	s.mu.Unlock()

	<-s.stopped
	return nil
}

// ApplySave returns tasks with task saved into it
func ApplySave(tasks []model.Task, task model.Task, now time.Time) []model.Task {
	out := cloneTasks(tasks)
	if out == nil {
		out = []model.Task{}
	}
	if i := indexOf(out, task.ID); i >= 0 {
		task.UpdatedAt = now.UnixMilli()
		out[i] = task
		return out
	}
	return append(out, task)
}

// ApplyDelete returns tasks without the entries matching id
func ApplyDelete(tasks []model.Task, id string) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range cloneTasks(tasks) {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

func indexOf(tasks []model.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persist(ctx context.Context, tasks []model.Task) ([]model.Task, error) {
	if !s.storage.Set(ctx, TasksKey, tasks) {
		return nil, ErrNotAcknowledged
	}
	return tasks, nil
}

func (s *Store) dispatch(ctx context.Context, action Action, run func(context.Context, []model.Task) ([]model.Task, error)) *Op {
	if ctx == nil {
		ctx = context.Background()
	}
	op := &Op{
		ID:     uuid.NewString(),
		Action: action,
		run:    run,
		done:   make(chan struct{}),
	}
	op.ctx = logger.ContextWithOpID(ctx, op.ID)
	announced := make(chan struct{})
	op.announced = announced

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		op.settle(nil, &OpError{Action: action, Message: failureMessage(action), Err: ErrClosed})
		return op
	}
	s.queue = append(s.queue, op)
	s.inflight++
	s.state.Loading = true
	s.state.Error = ""
	snap := s.snapshotLocked()
	s.cond.Signal()
	s.mu.Unlock()

	s.log.Debug("operation pending", zap.String("action", string(action)), zap.String("op_id", op.ID))
	s.emit(Event{Action: action, Phase: PhasePending, OpID: op.ID, State: snap})
	// the worker holds the op until its pending event is out
	close(announced)
	return op
}

func (s *Store) run() {
	defer close(s.stopped)
	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if len(s.queue) == 0 {
			s.mu.Unlock()
			return
		}
		op := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		base := cloneTasks(s.state.Tasks)
		s.mu.Unlock()

		<-op.announced
		s.execute(op, base)
	}
}

func (s *Store) execute(op *Op, base []model.Task) {
	start := time.Now()
	tasks, err := s.perform(op, base)

	s.mu.Lock()
	s.inflight--
	s.state.Loading = s.inflight > 0
	phase := PhaseFulfilled
	if err != nil {
		phase = PhaseRejected
		s.state.Error = err.Error()
	} else {
		s.state.Tasks = cloneTasks(tasks)
		if op.Action == ActionFetch {
			s.state.Error = ""
		}
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	fields := []zap.Field{
		zap.String("action", string(op.Action)),
		zap.String("op_id", op.ID),
		zap.Duration("took", time.Since(start)),
	}
	if err != nil {
		s.log.Warn("operation rejected", append(fields, zap.Error(err))...)
	} else {
		s.log.Info("operation fulfilled", append(fields, zap.Int("tasks", len(tasks)))...)
	}

	s.emit(Event{Action: op.Action, Phase: phase, OpID: op.ID, State: snap})
	op.settle(tasks, err)
}

func (s *Store) perform(op *Op, base []model.Task) ([]model.Task, error) {
	opErr := func(err error) error {
		return &OpError{Action: op.Action, Message: failureMessage(op.Action), Err: err}
	}
	if err := op.ctx.Err(); err != nil {
		return nil, opErr(err)
	}
	tasks, err := op.run(op.ctx, base)
	if err != nil {
		return nil, opErr(err)
	}
	return tasks, nil
}

func (s *Store) emit(e Event) {
	s.lmu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.lmu.Unlock()

	for _, l := range listeners {
		l(e)
	}
}

func (s *Store) snapshotLocked() State {
	st := s.state
	st.Tasks = cloneTasks(s.state.Tasks)
	if st.Tasks == nil {
		st.Tasks = []model.Task{}
	}
	return st
}
