package where

import (
	"path/filepath"
	"testing"

	"github.com/animeverse/animeverse/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Cache()", func() {
			path := Cache()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Logs()", func() {
			path := Logs()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Leaderboard() lives in the config dir", func() {
			So(filepath.Dir(Leaderboard()), ShouldEqual, Config())
		})

		Convey("Details() is keyed by source", func() {
			So(Details("jikan"), ShouldNotEqual, Details("anilist"))
			So(filepath.Dir(Details("jikan")), ShouldEqual, Cache())
		})

		Convey("ANIMEVERSE_CONFIG_PATH overrides the config dir", func() {
			t.Setenv(EnvConfigPath, "/tmp/animeverse-test")
			So(Config(), ShouldEqual, "/tmp/animeverse-test")
		})
	})
}
