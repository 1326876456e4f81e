package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/animeverse/animeverse/color"
	"github.com/animeverse/animeverse/icon"
	"github.com/animeverse/animeverse/quiz"
	"github.com/animeverse/animeverse/render"
	"github.com/animeverse/animeverse/style"
	"github.com/animeverse/animeverse/util"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

// lowTime is when the clock turns red.
const lowTime = 10 * time.Second

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case usernameState:
		output = b.viewUsername()
	case menuState:
		output = b.viewMenu()
	case questionState:
		output = b.viewQuestion()
	case resultsState:
		output = b.viewResults()
	case leaderboardState:
		output = b.viewLeaderboard()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " " + b.progressStatus,
		},
	)
}

func (b *statefulBubble) viewUsername() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Who's playing?"),
			"",
			style.Faint("Your XP is kept under this name."),
			"",
			b.nameC.View(),
		},
	)
}

func (b *statefulBubble) viewMenu() string {
	return listExtraPaddingStyle.Render(b.menuC.View())
}

func (b *statefulBubble) clock() string {
	c := fmt.Sprintf("%s %s", icon.Get(icon.Timer), util.Clock(b.remaining))
	if b.remaining <= lowTime {
		return style.Fg(color.Red)(c)
	}
	return style.Fg(color.Cyan)(c)
}

func difficultyTag(d quiz.Difficulty) string {
	switch d {
	case quiz.Easy:
		return style.Tag(style.Base, style.Green)(string(d))
	case quiz.Medium:
		return style.Tag(style.Base, style.Yellow)(string(d))
	case quiz.Hard:
		return style.Tag(style.Base, style.Red)(string(d))
	default:
		return ""
	}
}

func (b *statefulBubble) viewQuestion() string {
	q, ok := b.question.Get()
	if !ok {
		return b.renderLines(false, []string{
			style.Title("Quiz"),
			"",
			b.spinnerC.View() + " " + b.progressStatus,
		})
	}

	header := fmt.Sprintf("%s %s  %s  %s",
		icon.Get(icon.Quiz),
		style.Bold(fmt.Sprintf("Question %d of %d", b.index+1, b.total())),
		difficultyTag(q.Difficulty),
		b.clock(),
	)

	lines := []string{
		header,
		"",
		wordwrap.String(q.Prompt, util.Max(b.width, 20)),
		"",
	}

	switch q.Kind {
	case quiz.MultipleChoice, quiz.TrueFalse:
		lines = append(lines, b.choicesC.View())
	case quiz.FillBlank:
		lines = append(lines, b.answerC.View())
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewResults() string {
	result, ok := b.result.Get()
	if !ok {
		return b.renderLines(true, []string{style.Title("Results")})
	}

	var sb strings.Builder
	render.Result(&sb, result)

	lines := []string{style.Title(result.Quiz.Kind.Title() + " Quiz Results"), ""}
	lines = append(lines, strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")...)
	if u, ok := b.user.Get(); ok {
		lines = append(lines, "", style.Faint(fmt.Sprintf("%s · %d XP · %s",
			u.Username, u.XP, util.Quantify(u.QuizzesCompleted, "quiz", "quizzes"))))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewLeaderboard() string {
	var sb strings.Builder
	render.Leaderboard(&sb, b.board.Top(), b.user)

	lines := []string{style.Title(icon.Get(icon.Trophy) + " Leaderboard"), ""}
	lines = append(lines, strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")...)
	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(style.ErrorColor).Bold(true)
	errorMsg := wrap.String(errorStyle.Render(b.lastError.Error()), b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " Something went wrong:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
