package anilist

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/animeverse/animeverse/filesystem"
	"github.com/animeverse/animeverse/throttle"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

const trendingBody = `{"data": {"Page": {
  "pageInfo": {"hasNextPage": true},
  "media": [
    {
      "id": 154587,
      "title": {"romaji": "Sousou no Frieren", "english": "Frieren: Beyond Journey's End"},
      "coverImage": {"large": "", "medium": "https://cdn.test/m.jpg"},
      "averageScore": 91,
      "episodes": 28,
      "status": "FINISHED",
      "genres": ["Adventure", "Drama", "Fantasy"],
      "description": "An elf mage.",
      "startDate": {"year": 2023},
      "trailer": {"id": "qgQ8WQaEbJ8", "site": "youtube"}
    },
    {
      "id": 1,
      "title": {"romaji": "Romaji Only", "english": null},
      "coverImage": {"large": "https://cdn.test/l.jpg"},
      "averageScore": null,
      "episodes": null,
      "status": "NOT_YET_RELEASED",
      "description": null,
      "startDate": {"year": null},
      "trailer": {"id": "x123", "site": "dailymotion"}
    }
  ]
}}}`

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

func newTestClient(handler func(req request, w http.ResponseWriter)) (*Client, *httptest.Server) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var req request
		_ = json.Unmarshal(raw, &req)
		handler(req, w)
	}))

	client := New(
		WithURL(server.URL),
		WithHTTPClient(server.Client()),
		WithThrottle(throttle.New(time.Millisecond)),
		WithCacheDir("/cache/"+time.Now().Format("150405.000000000")),
	)
	return client, server
}

func TestTrending(t *testing.T) {
	Convey("Given an AniList server returning two media", t, func() {
		var received request
		client, server := newTestClient(func(req request, w http.ResponseWriter) {
			received = req
			_, _ = w.Write([]byte(trendingBody))
		})
		defer server.Close()

		Convey("TrendingAnime converts them to cards", func() {
			page, err := client.TrendingAnime(context.Background(), 2, 10)
			So(err, ShouldBeNil)
			So(received.Variables["type"], ShouldEqual, "ANIME")
			So(received.Variables["page"], ShouldEqual, 2.0)
			So(received.Variables["perPage"], ShouldEqual, 10.0)
			So(received.Variables, ShouldNotContainKey, "search")

			So(page.HasNextPage, ShouldBeTrue)
			So(page.Items, ShouldHaveLength, 2)

			frieren := page.Items[0]
			So(frieren.Title, ShouldEqual, "Frieren: Beyond Journey's End")
			So(frieren.Image, ShouldEqual, "https://cdn.test/m.jpg")
			So(frieren.Score.OrEmpty(), ShouldAlmostEqual, 9.1)
			So(frieren.Status, ShouldEqual, "Finished")
			So(frieren.Trailer.OrEmpty(), ShouldEqual, "https://www.youtube.com/watch?v=qgQ8WQaEbJ8")

			other := page.Items[1]
			So(other.Title, ShouldEqual, "Romaji Only")
			So(other.Status, ShouldEqual, "Not yet released")
			So(other.Score.IsAbsent(), ShouldBeTrue)
			So(other.Trailer.IsAbsent(), ShouldBeTrue)
			So(other.Year.IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestSearch(t *testing.T) {
	Convey("Given an AniList server", t, func() {
		var (
			calls    atomic.Int32
			received request
		)
		client, server := newTestClient(func(req request, w http.ResponseWriter) {
			calls.Add(1)
			received = req
			_, _ = w.Write([]byte(`{"data": {"Page": {"pageInfo": {"hasNextPage": false}, "media": [
				{"id": 30002, "title": {"romaji": "Berserk"}, "chapters": null, "volumes": 42,
				 "staff": {"nodes": [{"name": {"full": "Kentarou Miura"}}]}}
			]}}}`))
		})
		defer server.Close()

		Convey("A blank search short-circuits", func() {
			_, err := client.SearchManga(context.Background(), " ", 1, 10)
			So(errors.Is(err, ErrEmptyQuery), ShouldBeTrue)
			So(calls.Load(), ShouldEqual, 0)
		})

		Convey("Manga authors come from staff", func() {
			page, err := client.SearchManga(context.Background(), "berserk", 0, 0)
			So(err, ShouldBeNil)
			So(received.Variables["search"], ShouldEqual, "berserk")
			So(received.Variables["type"], ShouldEqual, "MANGA")
			So(page.Page, ShouldEqual, 1)
			So(page.Items[0].Authors, ShouldResemble, []string{"Kentarou Miura"})
			So(page.Items[0].Volumes.OrEmpty(), ShouldEqual, 42)
			So(page.Items[0].Chapters.IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestErrors(t *testing.T) {
	Convey("GraphQL errors wrap ErrFetch", t, func() {
		client, server := newTestClient(func(req request, w http.ResponseWriter) {
			_, _ = w.Write([]byte(`{"data": null, "errors": [{"message": "Too Many Requests", "status": 429}]}`))
		})
		defer server.Close()

		_, err := client.TrendingManga(context.Background(), 1, 10)
		So(errors.Is(err, ErrFetch), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "Too Many Requests")
	})

	Convey("Non-2xx statuses wrap ErrFetch", t, func() {
		client, server := newTestClient(func(req request, w http.ResponseWriter) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		defer server.Close()

		_, err := client.AnimeDetails(context.Background(), 1)
		So(errors.Is(err, ErrFetch), ShouldBeTrue)
	})
}

func TestDetailsAndClosest(t *testing.T) {
	Convey("Given an AniList server", t, func() {
		var calls atomic.Int32
		client, server := newTestClient(func(req request, w http.ResponseWriter) {
			calls.Add(1)
			if _, ok := req.Variables["id"]; ok {
				_, _ = w.Write([]byte(`{"data": {"Media": {"id": 21, "title": {"romaji": "One Piece"}}}}`))
				return
			}
			if req.Variables["search"] == "nothing here" {
				_, _ = w.Write([]byte(`{"data": {"Page": {"media": []}}}`))
				return
			}
			_, _ = w.Write([]byte(`{"data": {"Page": {"media": [
				{"id": 1, "title": {"romaji": "One Punch Man"}},
				{"id": 21, "title": {"romaji": "One Piece", "english": "ONE PIECE"}}
			]}}}`))
		})
		defer server.Close()

		Convey("Details are cached after the first request", func() {
			_, err := client.AnimeDetails(context.Background(), 21)
			So(err, ShouldBeNil)
			m, err := client.AnimeDetails(context.Background(), 21)
			So(err, ShouldBeNil)
			So(m.Name(), ShouldEqual, "One Piece")
			So(calls.Load(), ShouldEqual, 1)
		})

		Convey("Closest picks the nearest title", func() {
			m, err := client.Closest(context.Background(), "one piece")
			So(err, ShouldBeNil)
			So(m.ID, ShouldEqual, 21)
		})

		Convey("Failed searches are remembered", func() {
			_, err := client.Closest(context.Background(), "Nothing Here")
			So(err, ShouldNotBeNil)
			_, err = client.Closest(context.Background(), "nothing here")
			So(err, ShouldNotBeNil)
			So(calls.Load(), ShouldEqual, 1)
		})
	})
}
