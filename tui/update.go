package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/animeverse/animeverse/internal/ui"
	"github.com/animeverse/animeverse/leaderboard"
	"github.com/animeverse/animeverse/quiz"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := b.notifier.Update(msg)

	switch msg := msg.(type) {
	case error:
		b.raiseError(msg)
		return b, cmd
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case ui.ToastMsg, ui.ClearMsg:
		return b, cmd
	case spinner.TickMsg:
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	case boardLoadedMsg:
		return b, cmd
	case noSavedUserMsg:
		if b.state == loadingState {
			b.previousState()
		}
		return b, tea.Batch(cmd, textinput.Blink)
	case sessionStartedMsg:
		return b, b.onSessionStarted(leaderboard.UserData(msg))
	case quizReadyMsg:
		return b, b.onQuizReady(msg)
	case tickMsg:
		// ticks are sent concurrently, a late one must not wind the clock back
		if remaining := time.Duration(msg); remaining < b.remaining {
			b.remaining = remaining
		}
		return b, cmd
	case finishedMsg:
		return b, b.onFinished(quiz.Result(msg))
	case recordedMsg:
		u := leaderboard.UserData(msg)
		b.user = mo.Some(u)
		b.menuC.Title = menuTitle(u)
		gained := b.result.OrEmpty().XP
		return b, ui.Toast(fmt.Sprintf("+%d XP, %d XP total", gained, u.XP), ui.Success)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}

		if bubblesKey.Matches(msg, b.keymap.back) {
			switch b.state {
			case usernameState, questionState:
			case loadingState:
				b.session.Reset()
				b.previousState()
				return b, cmd
			default:
				b.previousState()
				return b, cmd
			}
		}
	}

	switch b.state {
	case usernameState:
		return b.updateUsername(msg)
	case menuState:
		return b.updateMenu(msg)
	case questionState:
		return b.updateQuestion(msg)
	case resultsState:
		return b.updateResults(msg)
	case leaderboardState, errorState:
		return b.updateQuitOnly(msg)
	}

	return b, cmd
}

func menuTitle(u leaderboard.UserData) string {
	return fmt.Sprintf("Quiz Arena · %s · %d XP", u.Username, u.XP)
}

func (b *statefulBubble) onSessionStarted(u leaderboard.UserData) tea.Cmd {
	if b.state != loadingState {
		return nil
	}

	b.user = mo.Some(u)
	b.menuC.Title = menuTitle(u)
	b.nameC.Blur()
	b.newState(menuState)

	if kind, ok := b.pending.Get(); ok {
		b.pending = mo.None[quiz.Kind]()
		b.newState(loadingState)
		return b.generate(kind)
	}
	return nil
}

func (b *statefulBubble) onQuizReady(q *quiz.Quiz) tea.Cmd {
	if b.state != loadingState {
		return nil
	}

	b.remaining = q.Duration
	b.result = mo.None[quiz.Result]()
	b.newState(questionState)
	return tea.Batch(b.showQuestion(), ui.Toast("Quiz ready, good luck!", ui.Info))
}

func (b *statefulBubble) onFinished(result quiz.Result) tea.Cmd {
	b.result = mo.Some(result)
	b.question = mo.None[quiz.Question]()
	b.answerC.Blur()
	b.menuAfterQuiz()
	b.newState(resultsState)

	cmds := []tea.Cmd{b.record(result)}
	if result.TimedOut {
		cmds = append(cmds, ui.Toast("Time's up!", ui.Failure))
	}
	return tea.Batch(cmds...)
}

func (b *statefulBubble) updateUsername(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.confirm) {
		name := strings.TrimSpace(b.nameC.Value())
		if name == "" {
			return b, ui.Toast("Enter a name to play", ui.Failure)
		}
		b.newState(loadingState)
		return b, b.startSession(name)
	}

	var cmd tea.Cmd
	b.nameC, cmd = b.nameC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.leaderboard):
			b.newState(leaderboardState)
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.confirm):
			item, ok := b.menuC.SelectedItem().(*listItem)
			if !ok {
				return b, nil
			}
			kind := item.internal.(quiz.Kind)
			b.newState(loadingState)
			return b, b.generate(kind)
		}
	}

	var cmd tea.Cmd
	b.menuC, cmd = b.menuC.Update(msg)
	return b, cmd
}

// currentAnswer is the highlighted choice or the typed text.
func (b *statefulBubble) currentAnswer() string {
	q, ok := b.question.Get()
	if !ok {
		return ""
	}

	switch q.Kind {
	case quiz.MultipleChoice, quiz.TrueFalse:
		item, ok := b.choicesC.SelectedItem().(*listItem)
		if !ok {
			return ""
		}
		return item.internal.(choice).text
	default:
		return strings.TrimSpace(b.answerC.Value())
	}
}

func (b *statefulBubble) updateQuestion(msg tea.Msg) (tea.Model, tea.Cmd) {
	q, ok := b.question.Get()
	if !ok {
		return b, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.giveUp):
			b.session.Finish()
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.answer):
			answer := b.currentAnswer()
			if answer == "" {
				return b, ui.Toast("Type an answer first", ui.Failure)
			}

			finished, err := b.session.Answer(answer)
			switch {
			case errors.Is(err, quiz.ErrNotActive):
				// the countdown won the race, its result is on the way
				return b, nil
			case err != nil:
				b.raiseError(err)
				return b, nil
			case finished:
				b.question = mo.None[quiz.Question]()
				b.progressStatus = "Scoring"
				return b, nil
			}
			return b, b.showQuestion()
		}
	}

	var cmd tea.Cmd
	switch q.Kind {
	case quiz.MultipleChoice, quiz.TrueFalse:
		b.choicesC, cmd = b.choicesC.Update(msg)
	case quiz.FillBlank:
		b.answerC, cmd = b.answerC.Update(msg)
	}
	return b, cmd
}

func (b *statefulBubble) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.leaderboard):
			b.newState(leaderboardState)
		case bubblesKey.Matches(msg, b.keymap.again):
			b.newState(loadingState)
			return b, b.generate(b.lastKind)
		}
	}
	return b, nil
}

func (b *statefulBubble) updateQuitOnly(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.quit) {
		return b, tea.Quit
	}
	return b, nil
}
