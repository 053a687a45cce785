package views

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/taskdeck/internal/i18n"
	"github.com/dori/taskdeck/internal/model"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// collect runs cmd and any batched cmds, keeping the messages that arrive
// within a short window. Slow cmds (cursor blinks, long ticks) are dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(250 * time.Millisecond):
		return nil
	}
}

func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func settle(c Card) Card {
	for i := 0; i < 1000 && c.Animating(); i++ {
		c, _ = c.Update(cardFrameMsg{id: c.taskID, gen: c.gen})
	}
	return c
}

func TestCardToggle(t *testing.T) {
	task := model.NewTask(testNow)
	c := NewCard(task)
	if c.Expanded() || c.Height() != collapsedLines {
		t.Fatalf("new card should be collapsed, state=%v height=%d", c.State(), c.Height())
	}

	task.Name = "Renamed elsewhere"
	c, _ = c.Toggle(task)
	if !c.Expanded() || !c.Focused() {
		t.Fatal("expected expanded card with focused input")
	}
	if c.Value() != "Renamed elsewhere" {
		t.Errorf("input seeded with %q", c.Value())
	}

	c = settle(c)
	if c.Height() != expandedLines {
		t.Errorf("expanded height = %d, want %d", c.Height(), expandedLines)
	}

	c, _ = c.Toggle(task)
	if c.Expanded() || c.Focused() {
		t.Fatal("second toggle should collapse and blur")
	}
	if c = settle(c); c.Height() != collapsedLines {
		t.Errorf("collapsed height = %d", c.Height())
	}
}

func TestCardSubmitRenames(t *testing.T) {
	task := model.NewTask(testNow)
	c, _ := NewCard(task).Toggle(task)
	c.input.SetValue("  Buy milk  ")

	c, cmd := c.Submit(task)
	if c.Expanded() {
		t.Error("submit should collapse")
	}
	rename, ok := findMsg[RenameTaskMsg](collect(cmd))
	if !ok {
		t.Fatal("expected a rename")
	}
	if rename.ID != task.ID || rename.Name != "Buy milk" {
		t.Errorf("rename = %+v", rename)
	}
}

func TestCardSubmitWithoutChange(t *testing.T) {
	task := model.NewTask(testNow)

	for _, input := range []string{task.Name, "", "   ", " " + task.Name + " "} {
		c, _ := NewCard(task).Toggle(task)
		c.input.SetValue(input)

		c, cmd := c.Submit(task)
		if c.Expanded() {
			t.Errorf("input %q: submit should collapse", input)
		}
		if _, ok := findMsg[RenameTaskMsg](collect(cmd)); ok {
			t.Errorf("input %q: unexpected rename", input)
		}
	}
}

func TestCardRemove(t *testing.T) {
	task := model.NewTask(testNow)
	c, _ := NewCard(task).Toggle(task)

	msg, ok := findMsg[RemoveTaskMsg](collect(c.Remove()))
	if !ok || msg.ID != task.ID {
		t.Fatalf("remove = %+v, %v", msg, ok)
	}
	if !c.Expanded() {
		t.Error("remove must not change card state")
	}
}

func TestCardCheckboxIsLocal(t *testing.T) {
	task := model.NewTask(testNow)
	c := NewCard(task).ToggleChecked()
	if !c.Checked() {
		t.Fatal("expected checked")
	}
	if task.Completed {
		t.Error("checkbox leaked into the task")
	}
	if c.ToggleChecked().Checked() {
		t.Error("second toggle should uncheck")
	}
}

func TestCardTyping(t *testing.T) {
	task := model.NewTask(testNow)
	c := NewCard(task)
	key := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}

	c, _ = c.Update(key)
	if c.Value() != task.Name {
		t.Errorf("collapsed card accepted input: %q", c.Value())
	}

	c, _ = c.Toggle(task)
	c, _ = c.Update(key)
	if c.Value() != task.Name+"x" {
		t.Errorf("expanded input = %q", c.Value())
	}
}

func TestCardStaleFramesIgnored(t *testing.T) {
	task := model.NewTask(testNow)
	c, _ := NewCard(task).Toggle(task)
	stale := cardFrameMsg{id: task.ID, gen: c.gen}
	c, _ = c.Toggle(task)

	before := c.height
	c, cmd := c.Update(stale)
	if c.height != before || cmd != nil {
		t.Error("frame from an earlier toggle moved the card")
	}
}

func TestCardView(t *testing.T) {
	tr := i18n.New("en-US")
	task := model.NewTask(testNow)

	collapsed := NewCard(task).View(task, tr, testNow, false, 60)
	for _, want := range []string{"[ ]", "New Task", "Medium", "2d 0h left"} {
		if !strings.Contains(collapsed, want) {
			t.Errorf("collapsed view missing %q:\n%s", want, collapsed)
		}
	}

	c, _ := NewCard(task).Toggle(task)
	expanded := settle(c).View(task, tr, testNow, true, 60)
	for _, want := range []string{"Remove", "Submit", "Created Wed May 01 2024"} {
		if !strings.Contains(expanded, want) {
			t.Errorf("expanded view missing %q:\n%s", want, expanded)
		}
	}
}
