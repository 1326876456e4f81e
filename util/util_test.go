package util

import (
	"testing"
	"time"

	"github.com/animeverse/animeverse/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "question", "questions"), ShouldEqual, "1 question")
		So(Quantify(5, "question", "questions"), ShouldEqual, "5 questions")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("quick"), ShouldEqual, "Quick")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestClock(t *testing.T) {
	Convey("Clock", t, func() {
		So(Clock(60*time.Second), ShouldEqual, "1:00")
		So(Clock(185*time.Second), ShouldEqual, "3:05")
		So(Clock(9*time.Second), ShouldEqual, "0:09")
		So(Clock(-time.Second), ShouldEqual, "0:00")
	})
}

func TestMaxMin(t *testing.T) {
	Convey("Max/Min", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1, 5, 2), ShouldEqual, 1)
		So(Max[int](), ShouldEqual, 0)
	})
}

func TestStack(t *testing.T) {
	Convey("Stack", t, func() {
		var s Stack[string]
		s.Push("menu")
		s.Push("question")
		So(s.Len(), ShouldEqual, 2)
		So(s.Peek(), ShouldEqual, "question")
		So(s.Pop(), ShouldEqual, "question")
		So(s.Pop(), ShouldEqual, "menu")
		So(s.Pop(), ShouldEqual, "")
	})
}

func TestDelete(t *testing.T) {
	Convey("Delete removes files and directories", t, func() {
		fs := filesystem.API()
		So(fs.MkdirAll("/tmp/cache/sub", 0o755), ShouldBeNil)
		So(fs.WriteFile("/tmp/cache/sub/a.json", []byte("{}"), 0o644), ShouldBeNil)

		So(Delete("/tmp/cache/sub/a.json"), ShouldBeNil)
		exists, _ := fs.Exists("/tmp/cache/sub/a.json")
		So(exists, ShouldBeFalse)

		So(Delete("/tmp/cache"), ShouldBeNil)
		exists, _ = fs.Exists("/tmp/cache")
		So(exists, ShouldBeFalse)
	})
}
