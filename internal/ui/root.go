package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/taskdeck/internal/app"
	"github.com/dori/taskdeck/internal/i18n"
	"github.com/dori/taskdeck/internal/ui/theme"
	"github.com/dori/taskdeck/internal/ui/views"
	"go.uber.org/zap"
)

// Options tunes the root model; zero values fall back to the app config
type Options struct {
	Theme          string
	Locale         string
	SplashDuration *time.Duration
	Clock          func() time.Time
}

// RootModel is the main application model that switches from the splash
// to the home screen
type RootModel struct {
	app   *app.App
	log   *zap.Logger
	keys  KeyMap
	help  help.Model
	tr    *i18n.Translator
	clock func() time.Time

	width  int
	height int

	screen      Screen
	splash      views.SplashView
	home        views.HomeView
	appState    AppState
	helpVisible bool

	// Status message
	statusMsg string
}

// NewRootModel creates a new root model
func NewRootModel(application *app.App, opts Options) RootModel {
	cfg := application.Config
	themeName, locale := opts.Theme, opts.Locale
	splash := views.DefaultSplashDuration
	if cfg != nil {
		if themeName == "" {
			themeName = cfg.Theme
		}
		if locale == "" {
			locale = cfg.Locale
		}
		splash = cfg.SplashDuration
	}
	if opts.SplashDuration != nil {
		splash = *opts.SplashDuration
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	log := application.Log
	if log == nil {
		log = zap.NewNop()
	}

	if t, ok := theme.ByName(themeName); ok {
		theme.SetTheme(t)
	} else if themeName != "" {
		log.Warn("unknown theme, keeping default", zap.String("theme", themeName))
	}

	tr := i18n.New(locale)
	h := help.New()
	h.ShowAll = false

	homeOpts := []views.HomeOption{
		views.WithClock(clock),
		views.WithLogger(log.Named("home")),
	}
	if application.Feedback != nil {
		homeOpts = append(homeOpts, views.WithFeedback(application.Feedback))
	}

	return RootModel{
		app:      application,
		log:      log,
		keys:     DefaultKeyMap(tr),
		help:     h,
		tr:       tr,
		clock:    clock,
		screen:   ScreenSplash,
		splash:   views.NewSplashView(tr, splash),
		home:     views.NewHomeView(application.Store, tr, homeOpts...),
		appState: NewAppState(clock()),
	}
}

// Init initializes the model
func (m RootModel) Init() tea.Cmd {
	return m.splash.Init()
}

// Screen returns the screen currently shown
func (m RootModel) Screen() Screen { return m.screen }

// AppState returns the tracked terminal focus state
func (m RootModel) AppState() AppState { return m.appState }

// Home returns the home view
func (m RootModel) Home() views.HomeView { return m.home }

// HelpVisible reports whether the help overlay is open
func (m RootModel) HelpVisible() bool { return m.helpVisible }

// StatusMsg returns the current status line text
func (m RootModel) StatusMsg() string { return m.statusMsg }

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Reserve one line for the root status bar
		m.splash = m.splash.SetSize(m.width, m.height)
		m.home = m.home.SetSize(m.width, max(m.height-1, 0))
		return m, nil

	case tea.BlurMsg:
		m.appState = m.appState.Blur()
		m.log.Debug("terminal blurred")
		return m, nil

	case tea.FocusMsg:
		var regained bool
		m.appState, regained = m.appState.Focus(m.clock())
		if !regained || m.screen != ScreenHome {
			return m, nil
		}
		m.log.Debug("terminal focus regained")
		return m.updateHome(msg)

	case tea.KeyMsg:
		m.statusMsg = ""
		isInputMode := m.screen == ScreenHome && m.home.IsInputMode()

		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, but 'q' only quits when not in input mode
			if msg.String() == "ctrl+c" || !isInputMode {
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.ThemeCycle):
			return m, m.cycleTheme()
		}

		if m.screen == ScreenHome && !isInputMode && key.Matches(msg, m.keys.Help) {
			m.helpVisible = !m.helpVisible
			m.help.ShowAll = m.helpVisible
			return m, nil
		}

	case ThemeChangedMsg:
		m.statusMsg = m.tr.T(i18n.StatusTheme, msg.ThemeName)
		m.log.Debug("theme changed", zap.String("theme", msg.ThemeName))
		return m, nil

	case views.SplashDoneMsg:
		if m.screen == ScreenHome {
			return m, nil
		}
		m.screen = ScreenHome
		return m, m.home.Init()
	}

	switch m.screen {
	case ScreenSplash:
		splash, cmd := m.splash.Update(msg)
		m.splash = splash.(views.SplashView)
		return m, cmd
	default:
		return m.updateHome(msg)
	}
}

func (m RootModel) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	home, cmd := m.home.Update(msg)
	m.home = home.(views.HomeView)
	return m, cmd
}

// View renders the UI
func (m RootModel) View() string {
	if m.screen == ScreenSplash {
		return m.splash.View()
	}

	var content string
	if m.helpVisible {
		content = m.renderHelp()
	} else {
		content = m.home.View()
	}

	if m.height > 0 {
		// Ensure content fills available space
		contentHeight := m.height - 1
		if lines := strings.Count(content, "\n") + 1; lines < contentHeight {
			content += strings.Repeat("\n", contentHeight-lines)
		}
	}
	return content + "\n" + m.renderStatusBar()
}

// renderStatusBar renders the status message and global key hints
func (m RootModel) renderStatusBar() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	hints := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.statusMsg == "" {
		return hints
	}

	status := lipgloss.NewStyle().Foreground(t.Info).Render(m.statusMsg)
	gap := m.width - lipgloss.Width(status) - lipgloss.Width(hints)
	if gap < 1 {
		gap = 1
	}
	return status + styles.HelpSeparator.Render(strings.Repeat(" ", gap)) + hints
}

// renderHelp renders the help overlay
func (m RootModel) renderHelp() string {
	t := theme.Current.Theme

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)

	groups := append(m.home.Keys().FullHelp(), m.keys.FullHelp()...)

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.tr.T(i18n.SplashTitle)))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(groups))
	return b.String()
}

// cycleTheme switches to the next available theme
func (m RootModel) cycleTheme() tea.Cmd {
	themes := theme.Available()
	current := theme.Current.Theme.Name

	next := themes[0]
	for i, t := range themes {
		if t.Name == current {
			next = themes[(i+1)%len(themes)]
			break
		}
	}
	theme.SetTheme(next)
	return func() tea.Msg { return ThemeChangedMsg{ThemeName: next.Name} }
}
