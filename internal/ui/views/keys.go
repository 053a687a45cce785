package views

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/dori/taskdeck/internal/i18n"
)

// HomeKeyMap defines the keybindings of the home screen
type HomeKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Create   key.Binding
	Toggle   key.Binding
	Collapse key.Binding
	Check    key.Binding
	Remove   key.Binding
}

// DefaultHomeKeyMap returns the home keybindings with help in tr's locale
func DefaultHomeKeyMap(tr *i18n.Translator) HomeKeyMap {
	return HomeKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", tr.T(i18n.HelpNavigate)),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", tr.T(i18n.HelpNavigate)),
		),
		Create: key.NewBinding(
			key.WithKeys("a", "n"),
			key.WithHelp("a", tr.T(i18n.HelpCreate)),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", tr.T(i18n.HelpExpand)),
		),
		Collapse: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", tr.T(i18n.HelpCollapse)),
		),
		Check: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", tr.T(i18n.HelpCheck)),
		),
		Remove: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", tr.T(i18n.HelpRemove)),
		),
	}
}

// ShortHelp returns the bindings shown in the footer
func (k HomeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Create, k.Toggle, k.Check, k.Down}
}

// FullHelp returns every binding, grouped
func (k HomeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Create, k.Toggle, k.Collapse},
		{k.Check, k.Remove},
	}
}

// ExpandedHelp returns the bindings that apply while a card is open
func (k HomeKeyMap) ExpandedHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Collapse, k.Remove}
}
