package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/animeverse/animeverse/internal/ui"
	"github.com/animeverse/animeverse/leaderboard"
	"github.com/animeverse/animeverse/log"
	"github.com/animeverse/animeverse/quiz"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
)

type (
	boardLoadedMsg    struct{}
	noSavedUserMsg    struct{}
	sessionStartedMsg leaderboard.UserData
	quizReadyMsg      *quiz.Quiz
	tickMsg           time.Duration
	finishedMsg       quiz.Result
	recordedMsg       leaderboard.UserData
)

// ErrMissingCredential explains how to fix a missing API key from inside the arena.
var ErrMissingCredential = fmt.Errorf("%w, run `quiz auth` to save one", quiz.ErrMissingCredential)

func (b *statefulBubble) loadBoard() tea.Cmd {
	return func() tea.Msg {
		if err := b.board.Load(context.Background()); err != nil {
			return err
		}
		return boardLoadedMsg{}
	}
}

func (b *statefulBubble) startSession(username string) tea.Cmd {
	b.progressStatus = "Loading player"
	return func() tea.Msg {
		u, err := b.board.StartSession(context.Background(), username)
		if err != nil {
			return err
		}
		return sessionStartedMsg(u)
	}
}

// restoreUser resumes the player saved by the previous run, if any.
func (b *statefulBubble) restoreUser() tea.Cmd {
	b.progressStatus = "Loading player"
	return func() tea.Msg {
		saved, err := b.board.LoadUser(context.Background())
		if err != nil {
			log.Error(err)
			return noSavedUserMsg{}
		}

		u, ok := saved.Get()
		if !ok {
			return noSavedUserMsg{}
		}

		resumed, err := b.board.StartSession(context.Background(), u.Username)
		if err != nil {
			return err
		}
		return sessionStartedMsg(resumed)
	}
}

// generate asks the session for a quiz. A reset while waiting yields no message.
func (b *statefulBubble) generate(kind quiz.Kind) tea.Cmd {
	b.lastKind = kind
	b.progressStatus = fmt.Sprintf("Generating a %s quiz", kind)

	return func() tea.Msg {
		q, err := b.session.Generate(context.Background(), kind, b.credential)
		switch {
		case errors.Is(err, quiz.ErrAborted):
			return nil
		case errors.Is(err, quiz.ErrMissingCredential):
			return ErrMissingCredential
		case err != nil:
			log.Error(err)
			return err
		}
		return quizReadyMsg(q)
	}
}

// record credits the current player with a finished quiz.
func (b *statefulBubble) record(result quiz.Result) tea.Cmd {
	u, ok := b.user.Get()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		saved, err := b.board.Record(context.Background(), u.Username, result.Score)
		if err != nil {
			log.Error(err)
			return ui.ToastMsg{Text: "Could not save your score", Kind: ui.Failure}
		}
		return recordedMsg(saved)
	}
}

// showQuestion loads the session's current question into the components.
func (b *statefulBubble) showQuestion() tea.Cmd {
	q, index, ok := b.session.Current()
	if !ok {
		return nil
	}

	b.question = mo.Some(q)
	b.index = index
	b.answerC.SetValue("")

	switch q.Kind {
	case quiz.MultipleChoice, quiz.TrueFalse:
		b.answerC.Blur()
		b.choicesC.ResetSelected()
		return b.choicesC.SetItems(choiceItems(q))
	case quiz.FillBlank:
		return b.answerC.Focus()
	default:
		return nil
	}
}

func (b *statefulBubble) total() int {
	if q, ok := b.session.Quiz().Get(); ok {
		return len(q.Questions)
	}
	return 0
}
