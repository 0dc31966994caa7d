package swagger_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akirun/vdotcoach/internal/adapters/http/swagger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRegister(t *testing.T) {
	Convey("Given the documentation routes", t, func() {
		mux := http.NewServeMux()
		swagger.Register(context.Background(), mux)

		Convey("When requesting the ReDoc page", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api-docs", nil))

			Convey("Then it should serve HTML pointing at the spec", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				So(rec.Body.String(), ShouldContainSubstring, "/openapi.yaml")
			})
		})

		Convey("When requesting the OpenAPI document", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))

			Convey("Then it should serve the embedded YAML", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldContainSubstring, "yaml")
				So(rec.Body.String(), ShouldContainSubstring, "VDOT Coach API")
				So(rec.Body.String(), ShouldContainSubstring, "/api/plan")
			})
		})
	})
}
