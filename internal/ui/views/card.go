package views

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/taskdeck/internal/i18n"
	"github.com/dori/taskdeck/internal/model"
	"github.com/dori/taskdeck/internal/ui/theme"
)

// CardState is the display state of a task card
type CardState int

const (
	CardCollapsed CardState = iota
	CardExpanded
)

// Content rows of each state, excluding the card border. The expanded
// body has a bordered input, which takes three rows.
const (
	collapsedLines = 2
	expandedLines  = 6
)

const (
	fps          = 60
	springFreq   = 8.0
	springDamp   = 1.0
	settleBounds = 0.01
)

// RenameTaskMsg asks for a task to be renamed
type RenameTaskMsg struct {
	ID   string
	Name string
}

// RemoveTaskMsg asks for a task to be removed
type RemoveTaskMsg struct {
	ID string
}

// cardFrameMsg advances a card's height animation by one frame. gen ties
// the frame to the toggle that started it so stale chains die out.
type cardFrameMsg struct {
	id  string
	gen int
}

// Card holds the interaction state of one task card. The checkbox is
// local to the card and never written back to the task.
type Card struct {
	taskID  string
	state   CardState
	checked bool
	input   textinput.Model

	spring   harmonica.Spring
	height   float64 // animated content height in lines
	velocity float64
	gen      int
}

// NewCard creates a collapsed card for task
func NewCard(task model.Task) Card {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.SetValue(task.Name)

	return Card{
		taskID: task.ID,
		input:  ti,
		spring: harmonica.NewSpring(harmonica.FPS(fps), springFreq, springDamp),
		height: collapsedLines,
	}
}

// State returns the card state
func (c Card) State() CardState { return c.state }

// Expanded reports whether the card is expanded
func (c Card) Expanded() bool { return c.state == CardExpanded }

// Checked reports the local checkbox value
func (c Card) Checked() bool { return c.checked }

// Value returns the current text of the rename input
func (c Card) Value() string { return c.input.Value() }

// Focused reports whether the rename input has focus
func (c Card) Focused() bool { return c.input.Focused() }

// Animating reports whether the height is still moving
func (c Card) Animating() bool {
	return math.Abs(c.height-c.target()) > settleBounds || math.Abs(c.velocity) > settleBounds
}

// Height returns the number of content lines currently shown
func (c Card) Height() int {
	return int(math.Round(c.height))
}

func (c Card) target() float64 {
	if c.state == CardExpanded {
		return expandedLines
	}
	return collapsedLines
}

// Toggle flips between collapsed and expanded. Expanding seeds the input
// with the task's current name and focuses it; collapsing blurs it.
func (c Card) Toggle(task model.Task) (Card, tea.Cmd) {
	if c.state == CardExpanded {
		return c.collapse()
	}

	c.state = CardExpanded
	c.input.SetValue(task.Name)
	c.input.CursorEnd()
	focus := c.input.Focus()
	c, frame := c.animate()
	return c, tea.Batch(focus, frame)
}

// Collapse collapses an expanded card without submitting
func (c Card) Collapse() (Card, tea.Cmd) {
	if c.state == CardCollapsed {
		return c, nil
	}
	return c.collapse()
}

func (c Card) collapse() (Card, tea.Cmd) {
	c.state = CardCollapsed
	c.input.Blur()
	return c.animate()
}

// Submit emits a rename when the trimmed input is non-empty and differs
// from the task name, then collapses the card either way.
func (c Card) Submit(task model.Task) (Card, tea.Cmd) {
	var rename tea.Cmd
	if name := strings.TrimSpace(c.input.Value()); name != "" && name != task.Name {
		id := task.ID
		rename = func() tea.Msg { return RenameTaskMsg{ID: id, Name: name} }
	}

	c, frame := c.collapse()
	return c, tea.Batch(rename, frame)
}

// Remove emits a removal request for the card's task
func (c Card) Remove() tea.Cmd {
	id := c.taskID
	return func() tea.Msg { return RemoveTaskMsg{ID: id} }
}

// ToggleChecked flips the local checkbox
func (c Card) ToggleChecked() Card {
	c.checked = !c.checked
	return c
}

func (c Card) animate() (Card, tea.Cmd) {
	c.gen++
	return c, c.nextFrame()
}

func (c Card) nextFrame() tea.Cmd {
	msg := cardFrameMsg{id: c.taskID, gen: c.gen}
	return tea.Tick(time.Second/fps, func(time.Time) tea.Msg { return msg })
}

// Update advances the animation and feeds keys to the input while expanded
func (c Card) Update(msg tea.Msg) (Card, tea.Cmd) {
	switch msg := msg.(type) {
	case cardFrameMsg:
		if msg.id != c.taskID || msg.gen != c.gen {
			return c, nil
		}
		c.height, c.velocity = c.spring.Update(c.height, c.velocity, c.target())
		if !c.Animating() {
			c.height, c.velocity = c.target(), 0
			return c, nil
		}
		return c, c.nextFrame()

	case tea.KeyMsg:
		if c.state != CardExpanded {
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// View renders the card for task at the given outer width
func (c Card) View(task model.Task, tr *i18n.Translator, now time.Time, selected bool, width int) string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	priority := lipgloss.NewStyle().
		Foreground(t.PriorityColor(task.Priority)).
		Bold(true).
		Render(tr.Priority(task.Priority))

	var lines []string
	if c.state == CardExpanded {
		c.input.Width = max(10, width-6)
		lines = []string{
			styles.ButtonDanger.Render(tr.T(i18n.TaskRemove)),
			styles.InputFocused.Render(c.input.View()),
			styles.Label.Render(tr.T(i18n.TaskCreated, tr.Date(task.Created()))) + "  " + priority,
			styles.Button.Render(tr.T(i18n.TaskSubmit)),
		}
	} else {
		box := "[ ]"
		name := styles.TaskName.Render(task.Name)
		if c.checked {
			box = "[x]"
			name = styles.TaskChecked.Render(task.Name)
		}
		rem := task.Remaining(now)
		remStyle := styles.Remaining
		if rem.Kind == model.RemainingOverdue {
			remStyle = styles.Overdue
		}
		lines = []string{
			box + " " + name,
			priority + styles.Label.Render(" · ") + remStyle.Render(tr.Remaining(rem)),
		}
	}

	lines = strings.Split(strings.Join(lines, "\n"), "\n")
	lines = clipLines(lines, c.Height())

	style := styles.Card
	if selected {
		style = styles.CardSelected
	}
	return style.Width(max(1, width-2)).Render(strings.Join(lines, "\n"))
}

// clipLines fits lines into n rows, cutting or padding as needed
func clipLines(lines []string, n int) []string {
	if n < 1 {
		n = 1
	}
	if len(lines) > n {
		return lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return lines
}
