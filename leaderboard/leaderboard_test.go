package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/animeverse/animeverse/filesystem"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestBoard(t *testing.T) {
	ctx := context.Background()

	Convey("Given a board over an empty store", t, func() {
		store := NewMemoryStore()
		board := New(store, 10)

		Convey("There is no current user", func() {
			u, err := board.LoadUser(ctx)
			So(err, ShouldBeNil)
			So(u.IsAbsent(), ShouldBeTrue)
			So(board.Load(ctx), ShouldBeNil)
			So(board.Top(), ShouldBeEmpty)
		})

		Convey("A blank username is rejected", func() {
			_, err := board.StartSession(ctx, "   ")
			So(errors.Is(err, ErrEmptyUsername), ShouldBeTrue)
		})

		Convey("When Aiko plays two quizzes", func() {
			u, err := board.StartSession(ctx, " Aiko ")
			So(err, ShouldBeNil)
			So(u, ShouldResemble, UserData{Username: "Aiko"})

			_, err = board.Record(ctx, "Aiko", 4)
			So(err, ShouldBeNil)
			u, err = board.Record(ctx, "Aiko", 3)
			So(err, ShouldBeNil)

			So(u.XP, ShouldEqual, 70)
			So(u.QuizzesCompleted, ShouldEqual, 2)

			Convey("Aiko is the current user and ranked first", func() {
				current, err := board.LoadUser(ctx)
				So(err, ShouldBeNil)
				So(current.MustGet(), ShouldResemble, u)

				top := board.Top()
				So(top, ShouldHaveLength, 1)
				So(top[0].Rank, ShouldEqual, 1)
				So(top[0].Medal.MustGet().Emoji(), ShouldEqual, "🥇")
			})

			Convey("Returning later resumes the progress", func() {
				resumed, err := board.StartSession(ctx, "Aiko")
				So(err, ShouldBeNil)
				So(resumed.XP, ShouldEqual, 70)

				reloaded := New(store, 10)
				So(reloaded.Load(ctx), ShouldBeNil)
				So(reloaded.Top()[0].XP, ShouldEqual, 70)
			})

			Convey("Other players are ranked around Aiko", func() {
				_, _ = board.Record(ctx, "Ren", 5)
				_, _ = board.Record(ctx, "Ren", 5)
				_, _ = board.Record(ctx, "Mei", 2)
				_, _ = board.StartSession(ctx, "Kenji")

				top := board.Top()
				So(top, ShouldHaveLength, 4)
				So(top[0].Username, ShouldEqual, "Ren")
				So(top[1].Username, ShouldEqual, "Aiko")
				So(top[2].Username, ShouldEqual, "Mei")
				So(top[2].Medal.MustGet(), ShouldEqual, Bronze)
				So(top[3].Username, ShouldEqual, "Kenji")
				So(top[3].Medal.IsAbsent(), ShouldBeTrue)
			})
		})

		Convey("Scores outside a quiz's range are refused", func() {
			for _, score := range []int{-1, 6} {
				_, err := board.Record(ctx, "Aiko", score)
				So(errors.Is(err, ErrInvalidScore), ShouldBeTrue)
			}

			current, err := board.LoadUser(ctx)
			So(err, ShouldBeNil)
			So(current.IsAbsent(), ShouldBeTrue)
		})

		Convey("An unreadable pool is backed up before it is replaced", func() {
			So(store.Set(ctx, KeyPool, "{not json"), ShouldBeNil)

			_, err := board.Record(ctx, "Aiko", 2)
			So(err, ShouldBeNil)

			backup, ok, err := store.Get(ctx, KeyPoolBackup)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
			So(backup, ShouldEqual, "{not json")
			So(board.Top()[0].XP, ShouldEqual, 20)
		})

		Convey("Only the best ten are kept, ties in insertion order", func() {
			for i := 0; i < 12; i++ {
				_, err := board.Record(ctx, fmt.Sprintf("player%02d", i), i%3)
				So(err, ShouldBeNil)
			}

			top := board.Top()
			So(top, ShouldHaveLength, 10)
			So(top[0].Username, ShouldEqual, "player02")
			So(top[1].Username, ShouldEqual, "player05")
			for i, e := range top {
				So(e.Rank, ShouldEqual, i+1)
				if i > 0 {
					So(e.XP, ShouldBeLessThanOrEqualTo, top[i-1].XP)
				}
			}
		})
	})
}

func TestFileStore(t *testing.T) {
	Convey("FileStore persists values across instances", t, func() {
		ctx := context.Background()
		store := NewFileStore("/config/leaderboard_test.json")

		_, ok, err := store.Get(ctx, KeyUser)
		So(err, ShouldBeNil)
		So(ok, ShouldBeFalse)

		So(store.Set(ctx, KeyUser, `{"username":"Aiko"}`), ShouldBeNil)

		v, ok, err := NewFileStore("/config/leaderboard_test.json").Get(ctx, KeyUser)
		So(err, ShouldBeNil)
		So(ok, ShouldBeTrue)
		So(v, ShouldEqual, `{"username":"Aiko"}`)
	})
}

func TestRedisStore(t *testing.T) {
	Convey("Given a mocked Redis", t, func() {
		ctx := context.Background()
		db, mock := redismock.NewClientMock()
		store := NewRedisStore(db, "test:")

		Convey("Missing keys are reported absent", func() {
			mock.ExpectGet("test:user").SetErr(redis.Nil)
			_, ok, err := store.Get(ctx, KeyUser)
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
			So(mock.ExpectationsWereMet(), ShouldBeNil)
		})

		Convey("Values round-trip through prefixed keys", func() {
			mock.ExpectSet("test:pool", "[]", 0).SetVal("OK")
			mock.ExpectGet("test:pool").SetVal("[]")

			So(store.Set(ctx, KeyPool, "[]"), ShouldBeNil)
			v, ok, err := store.Get(ctx, KeyPool)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, "[]")
			So(mock.ExpectationsWereMet(), ShouldBeNil)
		})

		Convey("Failures are returned", func() {
			mock.ExpectGet("test:user").SetErr(errors.New("connection refused"))
			_, _, err := store.Get(ctx, KeyUser)
			So(err, ShouldNotBeNil)
		})
	})
}
