package ui

// Screen represents the screen currently shown
type Screen int

const (
	ScreenSplash Screen = iota
	ScreenHome
)

// String returns the display name for a screen
func (s Screen) String() string {
	switch s {
	case ScreenSplash:
		return "Splash"
	case ScreenHome:
		return "Home"
	default:
		return "Unknown"
	}
}

// ThemeChangedMsg indicates the theme was changed
type ThemeChangedMsg struct {
	ThemeName string
}
