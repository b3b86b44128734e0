package loader

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/suwen/internal/adapters/apiclient"
	"github.com/okian/suwen/internal/domain/model"
	"github.com/okian/suwen/internal/domain/pagectx"
	. "github.com/smartystreets/goconvey/convey"
)

type call struct {
	method string
	uri    string
	cookie string
	reqID  string
	body   string
}

// fakeAPI answers "METHOD /path" keys with canned envelopes and records calls.
type fakeAPI struct {
	mu      sync.Mutex
	calls   []call
	replies map[string]string
	cookies map[string][]string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{replies: map[string]string{}, cookies: map[string][]string{}}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	key := r.Method + " " + r.URL.EscapedPath()

	f.mu.Lock()
	f.calls = append(f.calls, call{
		method: r.Method,
		uri:    r.URL.RequestURI(),
		cookie: r.Header.Get("Cookie"),
		reqID:  r.Header.Get("X-Request-ID"),
		body:   string(raw),
	})
	reply, ok := f.replies[key]
	setCookies := f.cookies[key]
	f.mu.Unlock()

	for _, c := range setCookies {
		w.Header().Add("Set-Cookie", c)
	}
	if !ok {
		reply = `{"statusCode":404,"message":"no route ` + key + `"}`
	}
	_, _ = io.WriteString(w, reply)
}

func (f *fakeAPI) reply(key, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[key] = body
}

func (f *fakeAPI) setCookies(key string, values ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cookies[key] = values
}

func (f *fakeAPI) find(method, path string) (call, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c.method == method && (c.uri == path || len(c.uri) > len(path) && c.uri[:len(path)+1] == path+"?") {
			return c, true
		}
	}
	return call{}, false
}

func TestLoaders(t *testing.T) {
	Convey("Given loaders bound to a fake backend", t, func() {
		ctx := context.Background()
		api := newFakeAPI()
		srv := httptest.NewServer(api)
		Reset(srv.Close)

		l := New(apiclient.New(srv.URL), WithLang("en-US"), WithHomeLimits(3, 2), WithListLimit(50))
		page := pagectx.New("session=s1", "req-7")

		Convey("Layout loads the site and relays the identity cookie", func() {
			api.reply("GET /api/site", `{"statusCode":200,"data":{"siteName":"suwen","tabs":[{"name":"Home","url":"/"}]}}`)
			api.reply("GET /api/me", `{"statusCode":200,"data":{"is_anonymous":true,"is_admin":false}}`)
			api.setCookies("GET /api/me", "anonymous_id=abc; Path=/; HttpOnly; SameSite=Lax")

			var data LayoutData
			So(l.Layout(ctx, page, &data), ShouldBeNil)
			So(data.Site.SiteName, ShouldEqual, "suwen")
			So(data.Me.IsAnonymous, ShouldBeTrue)
			So(page.Relayed(), ShouldResemble, []string{"anonymous_id=abc; Path=/; HttpOnly; SameSite=Lax"})

			me, ok := api.find(http.MethodGet, "/api/me")
			So(ok, ShouldBeTrue)
			So(me.cookie, ShouldEqual, "session=s1")
			So(me.reqID, ShouldEqual, "req-7")
		})

		Convey("Layout still relays the cookie when the identity envelope fails", func() {
			api.reply("GET /api/site", `{"statusCode":200,"data":{"siteName":"suwen"}}`)
			api.reply("GET /api/me", `{"statusCode":500,"message":"db down"}`)
			api.setCookies("GET /api/me", "anonymous_id=zzz; Path=/")

			var data LayoutData
			err := l.Layout(ctx, page, &data)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldEqual, "db down")
			So(page.Relayed(), ShouldHaveLength, 1)
		})

		Convey("Home sends language and home limits in order", func() {
			api.reply("GET /api/articles", `{"statusCode":200,"data":[{"slug":"a","title":"A","publishedAt":"2024-01-01T00:00:00Z"}]}`)
			api.reply("GET /api/shorts", `{"statusCode":200,"data":[{"slug":"s","title":"S"}]}`)

			var data HomeData
			So(l.Home(ctx, page, &data), ShouldBeNil)
			So(data.Articles, ShouldHaveLength, 1)
			So(data.Shorts[0].Slug, ShouldEqual, "s")

			articles, _ := api.find(http.MethodGet, "/api/articles")
			So(articles.uri, ShouldEqual, "/api/articles?lang=en-US&limit=3")
			shorts, _ := api.find(http.MethodGet, "/api/shorts")
			So(shorts.uri, ShouldEqual, "/api/shorts?lang=en-US&limit=2")
		})

		Convey("Articles adds the sort parameter unless latest", func() {
			api.reply("GET /api/articles", `{"statusCode":200,"data":[]}`)

			var data ArticlesData
			So(l.Articles(ctx, page, model.SortTrending, &data), ShouldBeNil)
			So(data.Sort, ShouldEqual, model.SortTrending)
			c, _ := api.find(http.MethodGet, "/api/articles")
			So(c.uri, ShouldEqual, "/api/articles?lang=en-US&limit=50&sort=trending")
		})

		Convey("Article escapes the slug and records the view", func() {
			api.reply("GET /api/articles/rust%20embed", `{"statusCode":200,"data":{"title":"Embed","renderedHtml":"<p>hi</p>","viewCount":4}}`)
			api.reply("GET /api/articles/rust%20embed/likes", `{"statusCode":200,"data":false}`)
			api.reply("POST /api/articles/rust%20embed/views", `{"statusCode":200,"data":5}`)

			var data ArticleData
			So(l.Article(ctx, page, "rust embed", &data), ShouldBeNil)
			So(data.Slug, ShouldEqual, "rust embed")
			So(data.Article.RenderedHTML, ShouldEqual, "<p>hi</p>")
			So(data.Liked, ShouldBeFalse)
			So(data.Views, ShouldEqual, 5)

			_, viewed := api.find(http.MethodPost, "/api/articles/rust%20embed/views")
			So(viewed, ShouldBeTrue)
		})

		Convey("Article surfaces a missing article as a 404 envelope", func() {
			api.reply("GET /api/articles/gone/likes", `{"statusCode":200,"data":false}`)
			api.reply("POST /api/articles/gone/views", `{"statusCode":200,"data":1}`)

			var data ArticleData
			err := l.Article(ctx, page, "gone", &data)
			status, ok := apiclient.StatusOf(err)
			So(ok, ShouldBeTrue)
			So(status, ShouldEqual, http.StatusNotFound)
		})

		Convey("Like posts the flag and relays cookies", func() {
			api.reply("POST /api/articles/a/likes", `{"statusCode":200,"data":12}`)
			api.setCookies("POST /api/articles/a/likes", "anonymous_id=new; Path=/")

			count, err := l.Like(ctx, page, "a", true)
			So(err, ShouldBeNil)
			So(count, ShouldEqual, 12)
			So(page.Relayed(), ShouldResemble, []string{"anonymous_id=new; Path=/"})

			c, _ := api.find(http.MethodPost, "/api/articles/a/likes")
			So(c.body, ShouldEqual, `{"like":true}`)
		})

		Convey("Shorts and Short load short posts", func() {
			api.reply("GET /api/shorts", `{"statusCode":200,"data":[{"slug":"x"},{"slug":"y"}]}`)
			api.reply("GET /api/shorts/x", `{"statusCode":200,"data":{"slug":"x","content":"hello"}}`)

			var list ShortsData
			So(l.Shorts(ctx, page, &list), ShouldBeNil)
			So(list.Shorts, ShouldHaveLength, 2)

			var one ShortData
			So(l.Short(ctx, page, "x", &one), ShouldBeNil)
			So(one.Short.Content, ShouldEqual, "hello")
			c, _ := api.find(http.MethodGet, "/api/shorts/x")
			So(c.uri, ShouldEqual, "/api/shorts/x?lang=en-US")
		})

		Convey("TagArticles escapes the tag", func() {
			api.reply("GET /api/tags/C++%2Fcli/articles", `{"statusCode":200,"data":[{"slug":"cpp"}]}`)

			var data TagData
			So(l.TagArticles(ctx, page, "C++/cli", &data), ShouldBeNil)
			So(data.Tag, ShouldEqual, "C++/cli")
			So(data.Articles[0].Slug, ShouldEqual, "cpp")
		})

		Convey("Archives loads tags and grouped archives", func() {
			api.reply("GET /api/tags", `{"statusCode":200,"data":[{"name":"Rust","count":3}]}`)
			api.reply("GET /api/archives", `{"statusCode":200,"data":{"2023":[{"slug":"a","title":"A","publishedAt":"2023-01-01T00:00:00Z"}]}}`)

			var data ArchivesData
			So(l.Archives(ctx, page, &data), ShouldBeNil)
			So(data.Tags[0].Count, ShouldEqual, 3)
			So(data.Groups, ShouldHaveLength, 1)
			So(data.Groups[0].Year, ShouldEqual, 2023)
		})
	})
}

func TestAll(t *testing.T) {
	Convey("Given sub-loads where one fails fast", t, func() {
		boom := errors.New("boom")
		var slowDone atomic.Bool

		start := time.Now()
		err := All(context.Background(),
			func(context.Context) error { return boom },
			func(ctx context.Context) error {
				defer slowDone.Store(true)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(5 * time.Second):
					return nil
				}
			},
		)

		Convey("The first error is returned and siblings are cancelled and awaited", func() {
			So(err, ShouldEqual, boom)
			So(slowDone.Load(), ShouldBeTrue)
			So(time.Since(start), ShouldBeLessThan, 5*time.Second)
		})
	})

	Convey("Given sub-loads that all succeed", t, func() {
		var n atomic.Int32
		err := All(context.Background(),
			func(context.Context) error { n.Add(1); return nil },
			nil,
			func(context.Context) error { n.Add(1); return nil },
		)
		So(err, ShouldBeNil)
		So(n.Load(), ShouldEqual, 2)
	})
}
