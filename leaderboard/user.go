package leaderboard

import (
	"github.com/animeverse/animeverse/quiz"
	"github.com/samber/mo"
)

// UserData is one player's progress.
type UserData struct {
	Username         string `json:"username"`
	XP               int    `json:"xp"`
	QuizzesCompleted int    `json:"quizzesCompleted"`
}

// Complete credits a finished quiz with the given score.
func (u UserData) Complete(score int) UserData {
	u.XP += quiz.Reward(score)
	u.QuizzesCompleted++
	return u
}

// Medal marks the top three places.
type Medal int

const (
	Gold Medal = iota + 1
	Silver
	Bronze
)

// Emoji returns the medal glyph.
func (m Medal) Emoji() string {
	switch m {
	case Gold:
		return "🥇"
	case Silver:
		return "🥈"
	case Bronze:
		return "🥉"
	default:
		return ""
	}
}

// MedalFor returns the medal awarded to a 1-based rank.
func MedalFor(rank int) mo.Option[Medal] {
	if rank >= 1 && rank <= 3 {
		return mo.Some(Medal(rank))
	}
	return mo.None[Medal]()
}

// Entry is a ranked row of the leaderboard.
type Entry struct {
	UserData
	Rank  int              `json:"rank"`
	Medal mo.Option[Medal] `json:"medal"`
}
