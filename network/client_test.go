package network

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/animeverse/animeverse/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClient(t *testing.T) {
	Convey("Given a server echoing the user agent", t, func() {
		var seen string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = r.Header.Get("User-Agent")
		}))
		defer server.Close()

		client := New(time.Second)

		Convey("Requests carry the application user agent", func() {
			resp, err := client.Get(server.URL)
			So(err, ShouldBeNil)
			_ = resp.Body.Close()
			So(seen, ShouldEqual, constant.UserAgent)
		})

		Convey("An explicit user agent is preserved", func() {
			req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
			req.Header.Set("User-Agent", "custom")
			resp, err := client.Do(req)
			So(err, ShouldBeNil)
			_ = resp.Body.Close()
			So(seen, ShouldEqual, "custom")
		})
	})
}
