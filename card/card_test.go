package card

import (
	"encoding/json"
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAccumulate(t *testing.T) {
	Convey("Given a shown list", t, func() {
		shown := []Anime{{ID: 1}, {ID: 2}}

		Convey("Page 1 replaces it", func() {
			page := Page[Anime]{Items: []Anime{{ID: 9}}, Page: 1}
			So(page.Accumulate(shown), ShouldResemble, []Anime{{ID: 9}})
		})

		Convey("Later pages append to it", func() {
			page := Page[Anime]{Items: []Anime{{ID: 3}}, Page: 2}
			So(page.Accumulate(shown), ShouldResemble, []Anime{{ID: 1}, {ID: 2}, {ID: 3}})
		})

		Convey("An empty page 1 clears it", func() {
			page := Page[Anime]{Page: 1}
			So(page.Accumulate(shown), ShouldBeEmpty)
		})
	})
}

func TestYouTubeURL(t *testing.T) {
	Convey("YouTubeURL", t, func() {
		So(YouTubeURL("dQw4w9WgXcQ"), ShouldResemble, mo.Some("https://www.youtube.com/watch?v=dQw4w9WgXcQ"))
		So(YouTubeURL("").IsAbsent(), ShouldBeTrue)
	})
}

func TestJSON(t *testing.T) {
	Convey("Absent optional fields encode as null", t, func() {
		raw, err := json.Marshal(Anime{ID: 1, Title: "Frieren", Score: mo.Some(9.3)})
		So(err, ShouldBeNil)

		var decoded map[string]any
		So(json.Unmarshal(raw, &decoded), ShouldBeNil)
		So(decoded["score"], ShouldEqual, 9.3)
		So(decoded["trailer"], ShouldBeNil)
	})
}
