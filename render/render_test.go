package render

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/animeverse/animeverse/card"
	"github.com/animeverse/animeverse/leaderboard"
	"github.com/animeverse/animeverse/quiz"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRender(t *testing.T) {
	Convey("Given some cards", t, func() {
		var buf bytes.Buffer
		items := []card.Anime{
			{ID: 1, Title: "Cowboy Bebop", Score: mo.Some(8.8), Episodes: mo.Some(26), Status: "Finished Airing"},
			{ID: 2, Title: "Untitled", Status: "Not yet aired"},
		}

		Convey("Lists are numbered", func() {
			AnimeList(&buf, items)
			So(buf.String(), ShouldContainSubstring, "Cowboy Bebop")
			So(buf.String(), ShouldContainSubstring, "26 episodes")
			So(buf.String(), ShouldContainSubstring, "2.")
		})

		Convey("Details fall back when the synopsis is missing", func() {
			Anime(&buf, items[1])
			So(buf.String(), ShouldContainSubstring, "No synopsis available.")
			So(buf.String(), ShouldNotContainSubstring, "Trailer")
		})

		Convey("JSON keeps absent fields as null", func() {
			So(JSON(&buf, items), ShouldBeNil)
			var decoded []map[string]any
			So(json.Unmarshal(buf.Bytes(), &decoded), ShouldBeNil)
			So(decoded[1]["score"], ShouldBeNil)
			So(decoded[0]["episodes"], ShouldEqual, 26)
		})

		Convey("The paging hint names the next page", func() {
			More(&buf, 25, 1, true)
			So(buf.String(), ShouldContainSubstring, "--page 2")
		})
	})

	Convey("Given a finished quiz", t, func() {
		var buf bytes.Buffer
		q := &quiz.Quiz{Duration: time.Minute, Questions: []quiz.Question{
			{ID: 1, Kind: quiz.FillBlank, Prompt: "Edward Elric is the _____ Alchemist.", Answer: "Fullmetal"},
			{ID: 2, Kind: quiz.TrueFalse, Prompt: "Death Note aired in 1995.", Answer: "false"},
		}}
		score, correct := quiz.Score(q, []string{"fullmetal"})

		Result(&buf, quiz.Result{Quiz: q, Answers: []string{"fullmetal", ""}, Correct: correct, Score: score, XP: quiz.Reward(score), TimedOut: true})
		So(buf.String(), ShouldContainSubstring, "1/2 correct")
		So(buf.String(), ShouldContainSubstring, "+10 XP")
		So(buf.String(), ShouldContainSubstring, "(no answer)")
		So(buf.String(), ShouldContainSubstring, "time's up")
	})

	Convey("Given a leaderboard", t, func() {
		var buf bytes.Buffer

		Convey("An empty board says so", func() {
			Leaderboard(&buf, nil, mo.None[leaderboard.UserData]())
			So(buf.String(), ShouldContainSubstring, "No one has played yet.")
		})

		Convey("Medals are shown for the podium", func() {
			top := []leaderboard.Entry{
				{UserData: leaderboard.UserData{Username: "Aiko", XP: 70, QuizzesCompleted: 2}, Rank: 1, Medal: leaderboard.MedalFor(1)},
				{UserData: leaderboard.UserData{Username: "Ren", XP: 10, QuizzesCompleted: 1}, Rank: 4, Medal: leaderboard.MedalFor(4)},
			}
			Leaderboard(&buf, top, mo.Some(leaderboard.UserData{Username: "Aiko"}))
			So(buf.String(), ShouldContainSubstring, "🥇")
			So(buf.String(), ShouldContainSubstring, "70 XP")
			So(buf.String(), ShouldContainSubstring, "1 quiz")
		})
	})
}
