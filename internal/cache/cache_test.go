package cache

import (
	"testing"

	"github.com/animeverse/animeverse/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestKeyed(t *testing.T) {
	Convey("Given an empty keyed cache", t, func() {
		c := New[int, string]("/cache/keyed_test.json", 0)

		Convey("Missing keys are absent", func() {
			So(c.Get(1).IsAbsent(), ShouldBeTrue)
		})

		Convey("When a value is set", func() {
			So(c.Set(1, "Cowboy Bebop"), ShouldBeNil)

			Convey("It can be read back", func() {
				v, ok := c.Get(1).Get()
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, "Cowboy Bebop")
			})

			Convey("It survives reopening the file", func() {
				reopened := New[int, string]("/cache/keyed_test.json", 0)
				So(reopened.Get(1).OrEmpty(), ShouldEqual, "Cowboy Bebop")
			})

			Convey("It is listed", func() {
				So(c.All(), ShouldResemble, map[int]string{1: "Cowboy Bebop"})
			})

			Convey("It can be deleted", func() {
				So(c.Delete(1), ShouldBeNil)
				So(c.Get(1).IsAbsent(), ShouldBeTrue)
			})
		})
	})
}
