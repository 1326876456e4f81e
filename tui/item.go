package tui

import (
	"fmt"

	"github.com/animeverse/animeverse/quiz"
	"github.com/animeverse/animeverse/style"
	"github.com/animeverse/animeverse/util"
	"github.com/charmbracelet/bubbles/list"
	"github.com/samber/lo"
)

// choice is one answer offered for a multiple-choice or true/false question.
type choice struct {
	letter rune
	text   string
}

func choiceItems(q quiz.Question) []list.Item {
	return lo.Map(q.Choices(), func(text string, i int) list.Item {
		return &listItem{internal: choice{letter: rune('A' + i), text: util.Capitalize(text)}}
	})
}

// listItem adapts quiz kinds and answer choices to list.Item.
type listItem struct {
	internal any
}

func (t *listItem) Title() string {
	switch e := t.internal.(type) {
	case quiz.Kind:
		return e.Title()
	case choice:
		return fmt.Sprintf("%s %s", style.Bold(string(e.letter)+"."), e.text)
	default:
		return ""
	}
}

func (t *listItem) Description() string {
	switch e := t.internal.(type) {
	case quiz.Kind:
		duration, difficulty, err := e.Settings()
		if err != nil {
			return ""
		}
		return fmt.Sprintf("%s · %s · %s",
			util.Quantify(quiz.QuestionsPerQuiz, "question", "questions"),
			util.Clock(duration),
			difficulty,
		)
	default:
		return ""
	}
}

func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case quiz.Kind:
		return string(e)
	case choice:
		return e.text
	default:
		return ""
	}
}
