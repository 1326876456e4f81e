package style

import "github.com/charmbracelet/lipgloss"

// Arena palette.
var (
	Base     = lipgloss.Color("#1a1b26")
	Sakura   = lipgloss.Color("#f7a8c4")
	Lavender = lipgloss.Color("#bb9af7")
	Red      = lipgloss.Color("#f7768e")
	Yellow   = lipgloss.Color("#e0af68")
	Green    = lipgloss.Color("#9ece6a")

	AccentColor  = Sakura
	SuccessColor = Green
	ErrorColor   = Red
)
