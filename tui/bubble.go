package tui

import (
	"time"

	"github.com/animeverse/animeverse/internal/ui"
	"github.com/animeverse/animeverse/leaderboard"
	"github.com/animeverse/animeverse/quiz"
	"github.com/animeverse/animeverse/style"
	"github.com/animeverse/animeverse/util"
	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// statefulBubble is the arena model: the current screen, its history and the components it draws.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]

	keymap *statefulKeymap

	// components
	spinnerC spinner.Model
	nameC    textinput.Model
	answerC  textinput.Model
	menuC    list.Model
	choicesC list.Model
	helpC    help.Model

	session    *quiz.Session
	board      *leaderboard.Board
	user       mo.Option[leaderboard.UserData]
	credential string
	pending    mo.Option[quiz.Kind]
	lastKind   quiz.Kind

	question  mo.Option[quiz.Question]
	index     int
	remaining time.Duration
	result    mo.Option[quiz.Result]

	progressStatus string
	lastError      error

	width, height int
	notifier      *ui.Model

	options *Options
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState moves to s, remembering the current screen unless it is transient.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if !lo.Contains(transient, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
	}
}

// menuAfterQuiz drops everything above the menu so back from the results returns there.
func (b *statefulBubble) menuAfterQuiz() {
	for b.statesHistory.Len() > 0 && b.statesHistory.Peek() != menuState {
		b.statesHistory.Pop()
	}
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	styledWidth := width - x
	styledHeight := height - y

	listWidth := width - xx
	listHeight := height - yy

	b.menuC.SetSize(listWidth, listHeight)
	b.menuC.Help.Width = listWidth

	// the prompt and the clock sit above the choices
	b.choicesC.SetSize(listWidth, util.Max(listHeight-6, 4))
	b.choicesC.Help.Width = listWidth

	b.nameC.Width = styledWidth
	b.answerC.Width = styledWidth

	b.width = styledWidth
	b.height = styledHeight
	b.helpC.Width = listWidth
}

func newBubble(options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,
		session:       quiz.NewSession(options.Generator, options.SessionOptions...),
		board:         leaderboard.New(options.Store, options.Size),
		credential:    options.Credential,
		pending:       options.Kind,
		notifier:      &ui.Model{},
		options:       options,
	}

	makeList := func(title string, description bool, titleStyle lipgloss.Style) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.ShowDescription = description
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.Title = titleStyle
		listC.Styles.NoItems = paddingStyle
		listC.SetFilteringEnabled(false)
		listC.SetShowPagination(false)
		listC.SetShowStatusBar(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.nameC = textinput.New()
	bubble.nameC.Placeholder = "Your name"
	bubble.nameC.CharLimit = 30
	bubble.nameC.Prompt = "> "
	bubble.nameC.Focus()

	bubble.answerC = textinput.New()
	bubble.answerC.Placeholder = "Type your answer"
	bubble.answerC.CharLimit = 80
	bubble.answerC.Prompt = "> "

	bubble.menuC = makeList("Quiz Arena", true,
		lipgloss.NewStyle().Foreground(style.Base).Background(style.AccentColor).Padding(0, 1),
	)
	bubble.menuC.SetItems(lo.Map(quiz.Kinds, func(k quiz.Kind, _ int) list.Item {
		return &listItem{internal: k}
	}))
	if i := lo.IndexOf(quiz.Kinds, options.Preselect); i >= 0 {
		bubble.menuC.Select(i)
	}

	bubble.choicesC = makeList("Answers", false,
		lipgloss.NewStyle().Foreground(style.Base).Background(style.Lavender).Padding(0, 1),
	)
	bubble.choicesC.SetShowHelp(false)
	bubble.choicesC.SetShowTitle(false)

	bubble.setState(usernameState)
	return &bubble
}
