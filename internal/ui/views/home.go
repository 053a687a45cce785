package views

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/taskdeck/internal/feedback"
	"github.com/dori/taskdeck/internal/i18n"
	"github.com/dori/taskdeck/internal/model"
	"github.com/dori/taskdeck/internal/store"
	"github.com/dori/taskdeck/internal/ui/theme"
	"go.uber.org/zap"
)

// RefreshInterval is how often remaining times are recomputed
const RefreshInterval = 30 * time.Second

type fetchTasksMsg struct{}

type refreshTickMsg struct{}

// opSettledMsg reports a store operation finishing
type opSettledMsg struct {
	op  *store.Op
	err error
}

// HomeOption configures a HomeView
type HomeOption func(*HomeView)

// WithFeedback plays cues on user actions and their outcomes
func WithFeedback(fb *feedback.Feedback) HomeOption {
	return func(v *HomeView) { v.fb = fb }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) HomeOption {
	return func(v *HomeView) { v.clock = now }
}

// WithLogger logs rejected operations
func WithLogger(log *zap.Logger) HomeOption {
	return func(v *HomeView) {
		if log != nil {
			v.log = log
		}
	}
}

// WithContext sets the context store operations run under
func WithContext(ctx context.Context) HomeOption {
	return func(v *HomeView) { v.ctx = ctx }
}

// HomeView lists tasks as cards and turns key presses into store operations
type HomeView struct {
	store *store.Store
	fb    *feedback.Feedback
	tr    *i18n.Translator
	keys  HomeKeyMap
	help  help.Model
	clock func() time.Time
	ctx   context.Context
	log   *zap.Logger

	width  int
	height int

	state        store.State
	ready        bool // first fetch settled
	cards        map[string]Card
	cursor       int
	scrollOffset int
	createOp     string // id of the last create, to move the cursor onto it
	now          time.Time
}

// NewHomeView creates the home screen over s
func NewHomeView(s *store.Store, tr *i18n.Translator, opts ...HomeOption) HomeView {
	v := HomeView{
		store: s,
		tr:    tr,
		keys:  DefaultHomeKeyMap(tr),
		help:  help.New(),
		clock: time.Now,
		ctx:   context.Background(),
		log:   zap.NewNop(),
		cards: make(map[string]Card),
	}
	for _, opt := range opts {
		opt(&v)
	}
	v.state = s.State()
	v.now = v.clock()
	return v
}

// Init loads the tasks and starts the remaining-time refresh
func (v HomeView) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return fetchTasksMsg{} },
		refreshTick(),
	)
}

func refreshTick() tea.Cmd {
	return tea.Tick(RefreshInterval, func(time.Time) tea.Msg { return refreshTickMsg{} })
}

// IsInputMode returns true while the selected card's input has the keyboard
func (v HomeView) IsInputMode() bool {
	card, _, ok := v.selected()
	return ok && card.Expanded()
}

// Ready reports whether the first fetch has settled
func (v HomeView) Ready() bool { return v.ready }

// State returns the last store state the view rendered
func (v HomeView) State() store.State { return v.state }

// Cursor returns the index of the selected card
func (v HomeView) Cursor() int { return v.cursor }

// Card returns the card of task id
func (v HomeView) Card(id string) (Card, bool) {
	c, ok := v.cards[id]
	return c, ok
}

// Keys returns the home keybindings
func (v HomeView) Keys() HomeKeyMap { return v.keys }

// SetSize updates the view dimensions
func (v HomeView) SetSize(width, height int) HomeView {
	v.width = width
	v.height = height
	v.help.Width = width
	v.ensureCursorVisible()
	return v
}

// Update handles messages for the home view
func (v HomeView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchTasksMsg:
		return v.dispatch(v.store.FetchTasks(v.ctx))

	case opSettledMsg:
		return v.settled(msg)

	case refreshTickMsg:
		v.now = v.clock()
		return v, refreshTick()

	case tea.FocusMsg:
		v.now = v.clock()
		return v, nil

	case RenameTaskMsg:
		task, ok := v.store.Find(msg.ID)
		if !ok {
			return v, nil
		}
		task.Name = msg.Name
		task.UpdatedAt = v.clock().UnixMilli()
		return v.dispatch(v.store.SaveTask(v.ctx, task))

	case RemoveTaskMsg:
		if msg.ID == "" {
			return v, nil
		}
		return v.dispatch(v.store.DeleteTask(v.ctx, msg.ID))

	case cardFrameMsg:
		card, ok := v.cards[msg.id]
		if !ok {
			return v, nil
		}
		card, cmd := card.Update(msg)
		v.cards[msg.id] = card
		v.ensureCursorVisible()
		return v, cmd

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	// cursor blinks and the like belong to the open card
	if card, task, ok := v.selected(); ok && card.Expanded() {
		card, cmd := card.Update(msg)
		v.cards[task.ID] = card
		return v, cmd
	}
	return v, nil
}

func (v HomeView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !v.ready {
		return v, nil
	}

	card, task, ok := v.selected()
	if ok && card.Expanded() {
		var cmd tea.Cmd
		switch {
		case key.Matches(msg, v.keys.Toggle):
			card, cmd = card.Submit(task)
		case key.Matches(msg, v.keys.Collapse):
			card, cmd = card.Collapse()
		case key.Matches(msg, v.keys.Remove):
			cmd = tea.Batch(card.Remove(), v.cue((*feedback.Feedback).Heavy))
		default:
			card, cmd = card.Update(msg)
		}
		v.cards[task.ID] = card
		return v, cmd
	}

	switch {
	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureCursorVisible()
		}

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.state.Tasks)-1 {
			v.cursor++
			v.ensureCursorVisible()
		}

	case key.Matches(msg, v.keys.Create):
		return v.create()

	case key.Matches(msg, v.keys.Toggle):
		if !ok {
			return v, nil
		}
		card, cmd := card.Toggle(task)
		v.cards[task.ID] = card
		return v, tea.Batch(cmd, v.cue((*feedback.Feedback).Selection))

	case key.Matches(msg, v.keys.Check):
		if !ok {
			return v, nil
		}
		v.cards[task.ID] = card.ToggleChecked()
		return v, v.cue((*feedback.Feedback).Light)
	}

	return v, nil
}

// create adds a default task. It is ignored while an operation is in
// flight, like the disabled create button it stands for.
func (v HomeView) create() (tea.Model, tea.Cmd) {
	if v.state.Loading {
		return v, nil
	}
	now := v.clock()
	task := model.NewTask(now)
	task.ID = model.UniqueID(now, v.state.Tasks)

	op := v.store.CreateTask(v.ctx, task)
	v.createOp = op.ID
	return v.dispatch(op)
}

func (v HomeView) dispatch(op *store.Op) (tea.Model, tea.Cmd) {
	v.state = v.store.State()
	return v, waitFor(op)
}

func waitFor(op *store.Op) tea.Cmd {
	return func() tea.Msg {
		<-op.Done()
		_, err := op.Result()
		return opSettledMsg{op: op, err: err}
	}
}

func (v HomeView) settled(msg opSettledMsg) (tea.Model, tea.Cmd) {
	v.state = v.store.State()
	v.syncCards()

	if msg.op.Action == store.ActionFetch {
		v.ready = true
	}
	if msg.err != nil {
		v.log.Warn("task operation failed",
			zap.String("action", string(msg.op.Action)),
			zap.String("op_id", msg.op.ID),
			zap.Error(msg.err))
		return v, v.cue((*feedback.Feedback).Error)
	}

	if msg.op.ID == v.createOp {
		v.createOp = ""
		v.cursor = max(0, len(v.state.Tasks)-1)
		v.ensureCursorVisible()
	}
	if msg.op.Action == store.ActionFetch {
		return v, nil
	}
	return v, v.cue((*feedback.Feedback).Success)
}

// syncCards keeps one card per task, dropping cards of removed tasks
func (v *HomeView) syncCards() {
	live := make(map[string]bool, len(v.state.Tasks))
	for _, t := range v.state.Tasks {
		live[t.ID] = true
		if _, ok := v.cards[t.ID]; !ok {
			v.cards[t.ID] = NewCard(t)
		}
	}
	for id := range v.cards {
		if !live[id] {
			delete(v.cards, id)
		}
	}

	if v.cursor >= len(v.state.Tasks) {
		v.cursor = max(0, len(v.state.Tasks)-1)
	}
	v.ensureCursorVisible()
}

func (v HomeView) selected() (Card, model.Task, bool) {
	if v.cursor < 0 || v.cursor >= len(v.state.Tasks) {
		return Card{}, model.Task{}, false
	}
	task := v.state.Tasks[v.cursor]
	card, ok := v.cards[task.ID]
	if !ok {
		card = NewCard(task)
	}
	return card, task, true
}

// cue plays a feedback pattern off the UI goroutine
func (v HomeView) cue(pattern func(*feedback.Feedback)) tea.Cmd {
	if v.fb == nil {
		return nil
	}
	fb := v.fb
	return func() tea.Msg {
		pattern(fb)
		return nil
	}
}

// listHeight is the number of rows available to cards
func (v HomeView) listHeight() int {
	h := v.height - 4
	if v.state.Error != "" {
		h--
	}
	return max(1, h)
}

// cardRows is the rendered height of card i, border included
func (v HomeView) cardRows(i int) int {
	if c, ok := v.cards[v.state.Tasks[i].ID]; ok {
		return c.Height() + 2
	}
	return collapsedLines + 2
}

// ensureCursorVisible adjusts scrollOffset to keep the selected card in view
func (v *HomeView) ensureCursorVisible() {
	if v.cursor < v.scrollOffset {
		v.scrollOffset = v.cursor
	}
	if v.height == 0 {
		return
	}
	budget := v.listHeight()
	for v.scrollOffset < v.cursor {
		used := 0
		for i := v.scrollOffset; i <= v.cursor && i < len(v.state.Tasks); i++ {
			used += v.cardRows(i)
		}
		if used <= budget {
			break
		}
		v.scrollOffset++
	}
	if v.scrollOffset < 0 {
		v.scrollOffset = 0
	}
}

// ErrorText returns the store error in the view's locale
func (v HomeView) ErrorText() string {
	switch v.state.Error {
	case "":
		return ""
	case store.MsgFetchFailed:
		return v.tr.T(i18n.ErrFetch)
	case store.MsgSaveFailed:
		return v.tr.T(i18n.ErrSave)
	case store.MsgDeleteFailed:
		return v.tr.T(i18n.ErrDelete)
	default:
		return v.state.Error
	}
}

// View renders the home screen
func (v HomeView) View() string {
	styles := theme.Current.Styles

	if !v.ready {
		loading := styles.Header.Render(v.tr.T(i18n.HomeLoading))
		if v.width == 0 || v.height == 0 {
			return loading
		}
		return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, loading)
	}

	var b strings.Builder
	b.WriteString(styles.Header.Render(v.tr.T(i18n.HomeTitle)))
	b.WriteString("\n\n")

	if len(v.state.Tasks) == 0 {
		b.WriteString(styles.Empty.Render(v.tr.T(i18n.HomeEmpty)))
		b.WriteString("\n")
	} else {
		width := v.width
		if width == 0 {
			width = 60
		}
		budget := v.listHeight()
		used := 0
		for i := v.scrollOffset; i < len(v.state.Tasks); i++ {
			rows := v.cardRows(i)
			if used > 0 && v.height > 0 && used+rows > budget {
				break
			}
			task := v.state.Tasks[i]
			card, ok := v.cards[task.ID]
			if !ok {
				card = NewCard(task)
			}
			b.WriteString(card.View(task, v.tr, v.now, i == v.cursor, width))
			b.WriteString("\n")
			used += rows
		}
	}

	if text := v.ErrorText(); text != "" {
		b.WriteString(styles.StatusError.Render(text))
		b.WriteString("\n")
	}

	b.WriteString(v.renderFooter())
	return b.String()
}

func (v HomeView) renderFooter() string {
	styles := theme.Current.Styles

	create := styles.Button
	if v.state.Loading {
		create = create.Faint(true)
	}
	bindings := v.keys.ShortHelp()
	if v.IsInputMode() {
		bindings = v.keys.ExpandedHelp()
	}
	return create.Render(v.tr.T(i18n.TaskCreate)) + "  " + v.help.ShortHelpView(bindings)
}
