package ui

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestToast(t *testing.T) {
	Convey("Given a toast model", t, func() {
		m := &Model{}

		Convey("Nothing is appended without a toast", func() {
			So(m.View("a\nb"), ShouldEqual, "a\nb")
		})

		Convey("A toast is shown on the last line", func() {
			So(m.Update(ToastMsg{Text: "Quiz ready", Kind: Success}), ShouldNotBeNil)
			So(m.Text(), ShouldEqual, "Quiz ready")
			So(m.View("a\nb"), ShouldStartWith, "a\nb  ")
			So(m.View("a\nb"), ShouldContainSubstring, "Quiz ready")

			Convey("A stale clear keeps the newer toast", func() {
				m.Update(ToastMsg{Text: "+40 XP"})
				m.Update(ClearMsg{seq: 1})
				So(m.Text(), ShouldEqual, "+40 XP")

				m.Update(ClearMsg{seq: 2})
				So(m.Text(), ShouldBeEmpty)
			})
		})
	})
}
