package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Init loads the leaderboard and the player, either the one given up front or the one saved last time.
// The name prompt is shown only when neither exists.
func (b *statefulBubble) Init() tea.Cmd {
	b.newState(loadingState)

	if name := b.options.Username; name != "" {
		return tea.Batch(b.spinnerC.Tick, b.loadBoard(), b.startSession(name))
	}

	return tea.Batch(b.spinnerC.Tick, b.loadBoard(), b.restoreUser())
}
