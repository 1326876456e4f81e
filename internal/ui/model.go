// Package ui holds the short-lived toast shown at the bottom of the quiz arena.
package ui

import (
	"strings"
	"time"

	"github.com/animeverse/animeverse/style"
	tea "github.com/charmbracelet/bubbletea"
)

// ToastLifetime is how long a toast stays on screen.
const ToastLifetime = 3 * time.Second

// Model holds the current toast, if any.
type Model struct {
	text string
	kind Kind
	seq  int
}

// Kind selects the toast color.
type Kind int

const (
	Info Kind = iota
	Success
	Failure
)

// ToastMsg shows a toast.
type ToastMsg struct {
	Text string
	Kind Kind
}

// ClearMsg hides the toast it was scheduled for.
type ClearMsg struct {
	seq int
}

// Toast returns a command that shows text.
func Toast(text string, kind Kind) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{Text: text, Kind: kind}
	}
}

// Update shows and expires toasts. Newer toasts are not cleared by older timers.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ToastMsg:
		m.text = msg.Text
		m.kind = msg.Kind
		m.seq++
		seq := m.seq
		return tea.Tick(ToastLifetime, func(time.Time) tea.Msg {
			return ClearMsg{seq: seq}
		})
	case ClearMsg:
		if msg.seq == m.seq {
			m.text = ""
		}
	}
	return nil
}

// Text is the toast currently shown.
func (m *Model) Text() string {
	return m.text
}

// View appends the toast to the last line of the content.
func (m *Model) View(content string) string {
	if m.text == "" {
		return content
	}

	var render func(string) string
	switch m.kind {
	case Success:
		render = style.Fg(style.SuccessColor)
	case Failure:
		render = style.Fg(style.ErrorColor)
	default:
		render = style.Faint
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + render(m.text)
	return strings.Join(lines, "\n")
}
