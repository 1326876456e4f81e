// Package render prints catalog cards, quiz results and the leaderboard for the terminal or as JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/animeverse/animeverse/card"
	"github.com/animeverse/animeverse/color"
	"github.com/animeverse/animeverse/icon"
	"github.com/animeverse/animeverse/jikan"
	"github.com/animeverse/animeverse/leaderboard"
	"github.com/animeverse/animeverse/quiz"
	"github.com/animeverse/animeverse/style"
	"github.com/animeverse/animeverse/util"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

const maxWidth = 100

// width is the usable terminal width, capped for readability.
func width() int {
	w, _, err := util.TerminalSize()
	if err != nil || w <= 0 {
		return 80
	}
	return util.Min(w, maxWidth)
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func join(parts ...mo.Option[string]) string {
	present := lo.FilterMap(parts, func(p mo.Option[string], _ int) (string, bool) {
		return p.Get()
	})
	return strings.Join(present, style.Faint(" · "))
}

func mapOption[T any](o mo.Option[T], f func(T) string) mo.Option[string] {
	if v, ok := o.Get(); ok {
		return mo.Some(f(v))
	}
	return mo.None[string]()
}

func score(s mo.Option[float64]) mo.Option[string] {
	return mapOption(s, func(v float64) string {
		return style.Fg(color.Gold)(fmt.Sprintf("%s %.1f", icon.Get(icon.Score), v))
	})
}

func count(n mo.Option[int], singular, plural string) mo.Option[string] {
	return mapOption(n, func(v int) string {
		return util.Quantify(v, singular, plural)
	})
}

func text(s string) mo.Option[string] {
	return mo.EmptyableToOption(s)
}

func genres(g []string) mo.Option[string] {
	return mo.EmptyableToOption(strings.Join(g, ", "))
}

// AnimeList prints one numbered line per anime.
func AnimeList(w io.Writer, items []card.Anime) {
	limit := width()
	for i, a := range items {
		line := fmt.Sprintf("%s %s  %s",
			style.Faint(fmt.Sprintf("%3d.", i+1)),
			style.Bold(a.Title),
			join(
				score(a.Score),
				count(a.Episodes, "episode", "episodes"),
				text(a.Status),
				mapOption(a.Year, func(y int) string { return fmt.Sprint(y) }),
			),
		)
		fmt.Fprintln(w, truncate.StringWithTail(line, uint(limit), "…"))
	}
}

// MangaList prints one numbered line per manga.
func MangaList(w io.Writer, items []card.Manga) {
	limit := width()
	for i, m := range items {
		line := fmt.Sprintf("%s %s  %s",
			style.Faint(fmt.Sprintf("%3d.", i+1)),
			style.Bold(m.Title),
			join(
				score(m.Score),
				count(m.Chapters, "chapter", "chapters"),
				count(m.Volumes, "volume", "volumes"),
				text(m.Status),
			),
		)
		fmt.Fprintln(w, truncate.StringWithTail(line, uint(limit), "…"))
	}
}

// More prints the continuation hint when another page exists.
func More(w io.Writer, shown, page int, hasNext bool) {
	if !hasNext {
		fmt.Fprintln(w, style.Faint(fmt.Sprintf("%s shown", util.Quantify(shown, "result", "results"))))
		return
	}
	fmt.Fprintln(w, style.Faint(fmt.Sprintf("%s shown, more with --page %d", util.Quantify(shown, "result", "results"), page+1)))
}

func synopsis(s mo.Option[string], limit int) string {
	return wordwrap.String(s.OrElse(style.Italic("No synopsis available.")), limit-4)
}

// Anime prints a detailed card.
func Anime(w io.Writer, a card.Anime) {
	limit := width()
	lines := []string{
		style.Title(a.Title),
		join(
			score(a.Score),
			count(a.Episodes, "episode", "episodes"),
			text(a.Status),
			mapOption(a.Year, func(y int) string { return fmt.Sprint(y) }),
		),
		style.Fg(color.Cyan)(genres(a.Genres).OrEmpty()),
		"",
		synopsis(a.Synopsis, limit),
	}
	if trailer, ok := a.Trailer.Get(); ok {
		lines = append(lines, "", style.Faint("Trailer ")+trailer)
	}
	if a.Image != "" {
		lines = append(lines, style.Faint("Image   ")+a.Image)
	}

	fmt.Fprintln(w, style.Card.Width(limit-2).Render(strings.Join(lines, "\n")))
}

// Manga prints a detailed card.
func Manga(w io.Writer, m card.Manga) {
	limit := width()
	lines := []string{
		style.Title(m.Title),
		join(
			score(m.Score),
			count(m.Chapters, "chapter", "chapters"),
			count(m.Volumes, "volume", "volumes"),
			text(m.Status),
		),
		style.Fg(color.Cyan)(genres(m.Genres).OrEmpty()),
	}
	if len(m.Authors) > 0 {
		lines = append(lines, style.Faint("by ")+strings.Join(m.Authors, ", "))
	}
	lines = append(lines, "", synopsis(m.Synopsis, limit))
	if m.Image != "" {
		lines = append(lines, "", style.Faint("Image ")+m.Image)
	}

	fmt.Fprintln(w, style.Card.Width(limit-2).Render(strings.Join(lines, "\n")))
}

// Characters prints the cast, main characters first as returned upstream.
func Characters(w io.Writer, cast []jikan.Character) {
	for _, c := range cast {
		role := style.Faint(c.Role)
		if c.Role == "Main" {
			role = style.Fg(color.Orange)(c.Role)
		}
		fmt.Fprintf(w, "%s %s\n", role, c.Character.Name)
	}
}

// Result prints the outcome of a quiz with the correct answers.
func Result(w io.Writer, r quiz.Result) {
	header := fmt.Sprintf("%s %d/%d correct  +%d XP", icon.Get(icon.Trophy), r.Score, r.Total(), r.XP)
	if r.TimedOut {
		header += style.Fg(color.Red)("  time's up")
	}
	fmt.Fprintln(w, style.Title(header))

	for i, q := range r.Quiz.Questions {
		given := lo.Ternary(i < len(r.Answers) && r.Answers[i] != "", r.Answers[i], "(no answer)")
		if r.Correct[i] {
			fmt.Fprintf(w, "%s %s\n  %s\n", style.Fg(color.Green)(icon.Get(icon.Correct)), q.Prompt, given)
			continue
		}
		fmt.Fprintf(w, "%s %s\n  %s %s\n",
			style.Fg(color.Red)(icon.Get(icon.Wrong)), q.Prompt,
			style.Fg(color.Red)(given), style.Faint("→ "+q.Answer))
	}
}

func medal(m mo.Option[leaderboard.Medal]) string {
	v, ok := m.Get()
	if !ok {
		return "  "
	}
	c := map[leaderboard.Medal]func(string) string{
		leaderboard.Gold:   style.Fg(color.Gold),
		leaderboard.Silver: style.Fg(color.Silver),
		leaderboard.Bronze: style.Fg(color.Bronze),
	}[v]
	return c(v.Emoji())
}

// Leaderboard prints the ranked players, highlighting the current one.
func Leaderboard(w io.Writer, top []leaderboard.Entry, current mo.Option[leaderboard.UserData]) {
	if len(top) == 0 {
		fmt.Fprintln(w, style.Faint("No one has played yet."))
		return
	}

	me := current.OrEmpty().Username
	for _, e := range top {
		name := e.Username
		if name == me {
			name = style.Fg(color.HiPurple)(style.Bold(name))
		}
		fmt.Fprintf(w, "%s %s %-20s %s\n",
			medal(e.Medal),
			style.Faint(fmt.Sprintf("#%-2d", e.Rank)),
			name,
			style.Faint(fmt.Sprintf("%d XP · %s", e.XP, util.Quantify(e.QuizzesCompleted, "quiz", "quizzes"))),
		)
	}
}
