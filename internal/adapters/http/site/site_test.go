package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSiteHandler(t *testing.T) {
	Convey("Given a site handler", t, func() {
		ctx := context.Background()
		mux := http.NewServeMux()
		Register(ctx, mux)

		Convey("Then GET / serves the landing page", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
			So(w.Body.String(), ShouldContainSubstring, "/api-docs")
		})

		Convey("And other paths are not served", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/index.html", nil))
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("And writes are rejected", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})

	Convey("Given a nil mux", t, func() {
		So(func() { Register(context.Background(), nil) }, ShouldPanic)
	})

	Convey("Given the embedded filesystem", t, func() {
		f, err := FS().Open("index.html")
		So(err, ShouldBeNil)
		So(f.Close(), ShouldBeNil)
	})
}
