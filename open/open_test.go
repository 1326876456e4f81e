package open

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	Convey("Each platform gets its own launcher", t, func() {
		cmd, err := command("linux", "https://youtu.be/x")
		So(err, ShouldBeNil)
		So(cmd.Args, ShouldResemble, []string{"xdg-open", "https://youtu.be/x"})

		cmd, err = command("darwin", "https://youtu.be/x")
		So(err, ShouldBeNil)
		So(cmd.Args[0], ShouldEqual, "open")

		cmd, err = command("windows", "https://example.com/?a=1&b=2")
		So(err, ShouldBeNil)
		So(cmd.Args[len(cmd.Args)-1], ShouldEqual, "https://example.com/?a=1^&b=2")
	})

	Convey("Unknown platforms are refused", t, func() {
		_, err := command("plan9", "https://youtu.be/x")
		So(err, ShouldNotBeNil)
	})
}
