package tui

import (
	"time"

	"github.com/animeverse/animeverse/leaderboard"
	"github.com/animeverse/animeverse/quiz"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
)

// Options configures the arena.
type Options struct {
	// Username skips the name prompt when set.
	Username string

	// Kind starts a quiz of this kind as soon as the player is known.
	Kind mo.Option[quiz.Kind]

	// Preselect highlights a kind in the menu.
	Preselect quiz.Kind

	Credential     string
	Generator      quiz.Generator
	SessionOptions []quiz.SessionOption

	Store leaderboard.Store
	Size  int
}

// Run shows the arena until the player quits.
func Run(options *Options) error {
	bubble := newBubble(options)
	program := tea.NewProgram(bubble, tea.WithAltScreen())

	// Answer fires the finish callback from inside Update, so sends must not block the event loop.
	bubble.session.OnTick(func(remaining time.Duration) {
		go program.Send(tickMsg(remaining))
	})
	bubble.session.OnFinish(func(result quiz.Result) {
		go program.Send(finishedMsg(result))
	})
	defer bubble.session.Reset()

	_, err := program.Run()
	return err
}
