package views

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/taskdeck/internal/i18n"
	"github.com/dori/taskdeck/internal/ui/theme"
)

// DefaultSplashDuration is how long the splash stays up
const DefaultSplashDuration = 3 * time.Second

// SplashDoneMsg tells the root model to replace the splash with home
type SplashDoneMsg struct{}

type splashTimeoutMsg struct{}

// SplashView shows the app title for a fixed time. Any key skips it.
type SplashView struct {
	tr       *i18n.Translator
	duration time.Duration
	width    int
	height   int
}

// NewSplashView creates a splash lasting d; d <= 0 skips straight to home
func NewSplashView(tr *i18n.Translator, d time.Duration) SplashView {
	return SplashView{tr: tr, duration: d}
}

// Init starts the splash timer
func (v SplashView) Init() tea.Cmd {
	if v.duration <= 0 {
		return done
	}
	return tea.Tick(v.duration, func(time.Time) tea.Msg { return splashTimeoutMsg{} })
}

func done() tea.Msg { return SplashDoneMsg{} }

// SetSize updates the view dimensions
func (v SplashView) SetSize(width, height int) SplashView {
	v.width = width
	v.height = height
	return v
}

// Update handles messages for the splash view
func (v SplashView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case splashTimeoutMsg, tea.KeyMsg:
		return v, done
	}
	return v, nil
}

// View renders the splash title centered
func (v SplashView) View() string {
	title := theme.Current.Styles.Splash.Render(v.tr.T(i18n.SplashTitle))
	if v.width == 0 || v.height == 0 {
		return title
	}
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, title)
}
