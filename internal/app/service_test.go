package service_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	service "github.com/okian/suwen/internal/app"
	"github.com/okian/suwen/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, false)
			So(stats["apiBaseURL"], ShouldEqual, "http://127.0.0.1:3000")
			So(stats["lang"], ShouldEqual, "zh-CN")
			So(stats["tracing"], ShouldEqual, false)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithAPIBaseURL("http://backend:3000"),
			service.WithLang("ja-JP"),
			service.WithHomeLimits(4, 2),
			service.WithListLimit(20),
			service.WithTracing("suwen-test", ""),
		)

		Convey("Then the options are applied", func() {
			stats := svc.GetStats()
			So(stats["apiBaseURL"], ShouldEqual, "http://backend:3000")
			So(stats["lang"], ShouldEqual, "ja-JP")
		})
	})
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a service that is not started", t, func() {
		svc := service.New()

		Convey("Then it refuses to build a handler", func() {
			_, err := svc.Handler()
			So(err, ShouldEqual, service.ErrNotStarted)
		})
	})

	Convey("Given a started service in front of a stub backend", t, func() {
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/site":
				_, _ = io.WriteString(w, `{"statusCode":200,"data":{"siteName":"suwen"}}`)
			case "/api/me":
				_, _ = io.WriteString(w, `{"statusCode":200,"data":{"is_anonymous":true,"is_admin":false}}`)
			case "/api/shorts":
				_, _ = io.WriteString(w, `{"statusCode":200,"data":[{"slug":"s","title":"Short one"}]}`)
			default:
				_, _ = io.WriteString(w, `{"statusCode":404,"message":"not found"}`)
			}
		}))
		defer backend.Close()

		svc := service.New(service.WithAPIBaseURL(backend.URL), service.WithLang("en-US"))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		h, err := svc.Handler()
		So(err, ShouldBeNil)

		Convey("When the shorts page is requested", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/shorts", nil))

			Convey("Then it is rendered from the backend", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "Short one")
				So(w.Header().Get("X-Request-ID"), ShouldNotBeEmpty)
			})
		})

		Convey("When health is requested", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			Convey("Then it reports ok", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
			})
		})

		Convey("When the service is stopped", func() {
			svc.Stop()

			Convey("Then it is marked as stopped", func() {
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})
}
