package query

import (
	"testing"

	"github.com/animeverse/animeverse/filesystem"
	"github.com/animeverse/animeverse/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given a query history", t, func() {
		h := Open("/cache/queries_test.json")

		So(h.Remember(Anime, "Naruto"), ShouldBeNil)
		So(h.Remember(Anime, "naruto shippuden"), ShouldBeNil)
		So(h.Remember(Anime, " NARUTO shippuden "), ShouldBeNil)
		So(h.Remember(Manga, "Berserk"), ShouldBeNil)
		So(h.Remember(Anime, "   "), ShouldBeNil)

		Convey("Suggestions are ranked by use", func() {
			So(h.Suggest(Anime, "nar")[:2], ShouldResemble, []string{"naruto shippuden", "naruto"})
		})

		Convey("Scopes are kept apart", func() {
			So(h.Suggest(Manga, "ber"), ShouldResemble, []string{"berserk"})
			So(h.Suggest(Anime, "ber"), ShouldBeEmpty)
		})
	})

	Convey("Suggestions can be disabled", t, func() {
		viper.Set(key.SearchShowQuerySuggestions, false)
		defer viper.Set(key.SearchShowQuerySuggestions, true)
		So(Suggest(Anime, "nar"), ShouldBeEmpty)
	})
}
