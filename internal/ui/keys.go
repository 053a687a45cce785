package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/dori/taskdeck/internal/i18n"
)

// KeyMap defines the global keybindings, handled before the active screen
type KeyMap struct {
	Quit       key.Binding
	Help       key.Binding
	ThemeCycle key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap(tr *i18n.Translator) KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", tr.T(i18n.HelpQuit)),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", tr.T(i18n.HelpToggle)),
		),
		ThemeCycle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", tr.T(i18n.HelpTheme)),
		),
	}
}

// ShortHelp returns short help bindings (for status bar)
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns full help bindings (for help view)
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ThemeCycle, k.Help, k.Quit},
	}
}
