package filesystem

import (
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})

		Convey("Use installs an arbitrary backend", func() {
			ro := afero.NewReadOnlyFs(afero.NewMemMapFs())
			Use(ro)
			So(API().Name(), ShouldEqual, ro.Name())
			SetMemMapFs()
		})
	})
}

func TestGacheFs(t *testing.T) {
	Convey("GacheFs writes through the active backend", t, func() {
		SetMemMapFs()
		fs := GacheFs{}

		So(fs.MkdirAll("/data/dir", os.ModePerm), ShouldBeNil)

		f, err := fs.OpenFile("/data/dir/file.json", os.O_CREATE|os.O_RDWR, 0o644)
		So(err, ShouldBeNil)
		_, err = f.Write([]byte(`{}`))
		So(err, ShouldBeNil)
		So(f.Close(), ShouldBeNil)

		content, err := API().ReadFile("/data/dir/file.json")
		So(err, ShouldBeNil)
		So(string(content), ShouldEqual, `{}`)
	})
}
