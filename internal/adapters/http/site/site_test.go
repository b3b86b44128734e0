package site

import (
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/okian/suwen/internal/adapters/apiclient"
	"github.com/okian/suwen/internal/adapters/http/middleware"
	"github.com/okian/suwen/internal/domain/loader"
	"github.com/okian/suwen/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

// stubAPI serves canned envelopes keyed by "METHOD /escaped/path".
type stubAPI struct {
	mu       sync.Mutex
	replies  map[string]string
	requests map[string]http.Header
}

func newStubAPI() *stubAPI {
	s := &stubAPI{replies: map[string]string{}, requests: map[string]http.Header{}}
	s.set("GET /api/site", `{"statusCode":200,"data":{"siteName":"suwen","tabs":[{"name":"Archives","url":"/archives"}]}}`)
	s.set("GET /api/me", `{"statusCode":200,"data":{"is_anonymous":true,"is_admin":false}}`)
	return s
}

func (s *stubAPI) set(key, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[key] = body
}

func (s *stubAPI) header(key string) http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[key]
}

func (s *stubAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.EscapedPath()
	s.mu.Lock()
	s.requests[key] = r.Header.Clone()
	body, ok := s.replies[key]
	s.mu.Unlock()

	if r.URL.Path == "/api/me" || strings.HasSuffix(r.URL.Path, "/likes") {
		w.Header().Add("Set-Cookie", "anonymous_id=v1; Path=/; HttpOnly; SameSite=Lax")
	}
	if !ok {
		body = `{"statusCode":404,"message":"not found"}`
	}
	_, _ = io.WriteString(w, body)
}

func newSite(baseURL string) http.Handler {
	mux := http.NewServeMux()
	NewHandler(loader.New(apiclient.New(baseURL))).Register(mux)
	return middleware.RequestID(mux)
}

func TestSiteHandler(t *testing.T) {
	Convey("Given the site wired to a stub backend", t, func() {
		So(logger.Init(), ShouldBeNil)
		api := newStubAPI()
		srv := httptest.NewServer(api)
		Reset(srv.Close)
		site := newSite(srv.URL)

		get := func(path string, header ...string) *httptest.ResponseRecorder {
			r := httptest.NewRequest(http.MethodGet, path, nil)
			for i := 0; i+1 < len(header); i += 2 {
				r.Header.Set(header[i], header[i+1])
			}
			w := httptest.NewRecorder()
			site.ServeHTTP(w, r)
			return w
		}

		Convey("When the home page loads", func() {
			api.set("GET /api/articles", `{"statusCode":200,"data":[{"slug":"hello","title":"Hello","publishedAt":"2024-01-01T00:00:00Z"}]}`)
			api.set("GET /api/shorts", `{"statusCode":200,"data":[]}`)

			w := get("/", "Cookie", "anonymous_id=v0", middleware.HeaderRequestID, "rid-1")

			Convey("Then it renders with the relayed cookie", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "text/html; charset=utf-8")
				So(w.Header().Values("Set-Cookie"), ShouldResemble, []string{"anonymous_id=v1; Path=/; HttpOnly; SameSite=Lax"})
				So(w.Body.String(), ShouldContainSubstring, `<a href="/articles/hello">`)
				So(w.Body.String(), ShouldContainSubstring, "<title>suwen</title>")
			})

			Convey("Then the visitor cookie and request id reach the backend", func() {
				h := api.header("GET /api/articles")
				So(h.Get("Cookie"), ShouldEqual, "anonymous_id=v0")
				So(h.Get("X-Request-ID"), ShouldEqual, "rid-1")
			})
		})

		Convey("When an article is missing", func() {
			api.set("GET /api/articles/gone/likes", `{"statusCode":200,"data":false}`)
			api.set("POST /api/articles/gone/views", `{"statusCode":200,"data":1}`)

			w := get("/articles/gone")

			Convey("Then a 404 page is rendered", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(w.Body.String(), ShouldContainSubstring, "404 Not Found")
				So(w.Header().Get("Content-Type"), ShouldEqual, "text/html; charset=utf-8")
			})
		})

		Convey("When the backend reports a server error", func() {
			api.set("GET /api/archives", `{"statusCode":500}`)
			api.set("GET /api/tags", `{"statusCode":200,"data":[]}`)

			w := get("/archives")

			Convey("Then a 500 page is rendered", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(w.Body.String(), ShouldContainSubstring, "API Error: 500")
			})
		})

		Convey("When an article renders", func() {
			api.set("GET /api/articles/a%20b", `{"statusCode":200,"data":{"title":"Spaced","renderedHtml":"<h2 id=\"x\">X</h2>"}}`)
			api.set("GET /api/articles/a%20b/likes", `{"statusCode":200,"data":true}`)
			api.set("POST /api/articles/a%20b/views", `{"statusCode":200,"data":9}`)

			w := get("/articles/a%20b")

			Convey("Then the backend HTML is embedded and the view count shown", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `<h2 id="x">X</h2>`)
				So(w.Body.String(), ShouldContainSubstring, "9 views")
				So(w.Body.String(), ShouldContainSubstring, "<title>Spaced | suwen</title>")
			})
		})

		Convey("When the sort parameter is unknown", func() {
			w := get("/articles?sort=random")

			Convey("Then the request is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When a visitor likes an article", func() {
			api.set("POST /api/articles/hello/likes", `{"statusCode":200,"data":3}`)

			form := url.Values{"like": {"true"}}
			r := httptest.NewRequest(http.MethodPost, "/articles/hello/like", strings.NewReader(form.Encode()))
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			w := httptest.NewRecorder()
			site.ServeHTTP(w, r)

			Convey("Then it redirects back with the relayed cookie", func() {
				So(w.Code, ShouldEqual, http.StatusSeeOther)
				So(w.Header().Get("Location"), ShouldEqual, "/articles/hello")
				So(w.Header().Get("Set-Cookie"), ShouldStartWith, "anonymous_id=v1")
			})
		})

		Convey("When the like form is malformed", func() {
			r := httptest.NewRequest(http.MethodPost, "/articles/hello/like", strings.NewReader("like=maybe"))
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			w := httptest.NewRecorder()
			site.ServeHTTP(w, r)

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the stylesheet is requested", func() {
			w := get("/static/style.css")

			Convey("Then it is served from the embedded files", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/css")
			})
		})

		Convey("When an unknown path is requested", func() {
			So(get("/nope").Code, ShouldEqual, http.StatusNotFound)
		})
	})

	Convey("Given a backend that is unreachable", t, func() {
		So(logger.Init(), ShouldBeNil)
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		So(err, ShouldBeNil)
		addr := ln.Addr().String()
		So(ln.Close(), ShouldBeNil)

		w := httptest.NewRecorder()
		newSite("http://"+addr).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/shorts", nil))

		Convey("Then a 502 page is rendered without internal details", func() {
			So(w.Code, ShouldEqual, http.StatusBadGateway)
			So(w.Body.String(), ShouldContainSubstring, "unavailable")
			So(w.Body.String(), ShouldNotContainSubstring, addr)
		})
	})
}
