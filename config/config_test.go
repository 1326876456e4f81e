package config

import (
	"encoding/json"
	"testing"

	"github.com/animeverse/animeverse/filesystem"
	"github.com/animeverse/animeverse/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetInt(key.CatalogThrottleInterval), ShouldEqual, 334)
			So(viper.GetString(key.QuizModel), ShouldEqual, "gpt-4o")
			So(viper.GetInt(key.LeaderboardSize), ShouldEqual, 10)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("catalog.throttle_interval"), ShouldEqual, "catalog_throttle_interval")
		})

		Convey("Environment variables override defaults", func() {
			t.Setenv("ANIMEVERSE_QUIZ_MODEL", "gpt-4o-mini")
			_ = Setup()
			So(viper.GetString(key.QuizModel), ShouldEqual, "gpt-4o-mini")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.QuizTemperature]

		Convey("Env is prefixed with the application name", func() {
			So(field.Env(), ShouldEqual, "ANIMEVERSE_QUIZ_TEMPERATURE")
		})

		Convey("Section is the key prefix", func() {
			So(field.Section(), ShouldEqual, "quiz")
		})

		Convey("Pretty shows the key and its type", func() {
			So(field.Pretty(), ShouldContainSubstring, key.QuizTemperature)
			So(field.Pretty(), ShouldContainSubstring, "(float)")
		})

		Convey("JSON carries the type name", func() {
			raw, err := json.Marshal(&field)
			So(err, ShouldBeNil)

			var decoded map[string]any
			So(json.Unmarshal(raw, &decoded), ShouldBeNil)
			So(decoded["type"], ShouldEqual, "float")
			So(decoded["section"], ShouldEqual, "quiz")
			So(decoded["key"], ShouldEqual, key.QuizTemperature)
		})
	})
}
