// Package site serves the blog pages: each route runs the shared layout
// loader and its page loader concurrently, then renders the result.
package site

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/okian/suwen/internal/adapters/http/middleware"
	"github.com/okian/suwen/internal/adapters/http/site/views"
	"github.com/okian/suwen/internal/domain/loader"
	"github.com/okian/suwen/internal/domain/model"
	"github.com/okian/suwen/internal/domain/pagectx"
	"github.com/okian/suwen/pkg/metrics"
)

// Loader is the set of route loaders the pages need.
type Loader interface {
	Layout(ctx context.Context, p *pagectx.Page, out *loader.LayoutData) error
	Home(ctx context.Context, p *pagectx.Page, out *loader.HomeData) error
	Articles(ctx context.Context, p *pagectx.Page, sort model.SortOrder, out *loader.ArticlesData) error
	Article(ctx context.Context, p *pagectx.Page, slug string, out *loader.ArticleData) error
	Like(ctx context.Context, p *pagectx.Page, slug string, like bool) (int, error)
	Shorts(ctx context.Context, p *pagectx.Page, out *loader.ShortsData) error
	Short(ctx context.Context, p *pagectx.Page, slug string, out *loader.ShortData) error
	TagArticles(ctx context.Context, p *pagectx.Page, tag string, out *loader.TagData) error
	Archives(ctx context.Context, p *pagectx.Page, out *loader.ArchivesData) error
}

// Handler serves the page routes.
type Handler struct {
	loader Loader
}

// NewHandler creates a page handler.
func NewHandler(l Loader) *Handler {
	return &Handler{loader: l}
}

// Register attaches all page routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("GET /{$}", middleware.Metrics(h.HandleHome, "home"))
	mux.HandleFunc("GET /articles", middleware.Metrics(h.HandleArticles, "articles"))
	mux.HandleFunc("GET /articles/{slug}", middleware.Metrics(h.HandleArticle, "article"))
	mux.HandleFunc("POST /articles/{slug}/like", middleware.Metrics(h.HandleLike, "like"))
	mux.HandleFunc("GET /shorts", middleware.Metrics(h.HandleShorts, "shorts"))
	mux.HandleFunc("GET /shorts/{slug}", middleware.Metrics(h.HandleShort, "short"))
	mux.HandleFunc("GET /tags/{tag}", middleware.Metrics(h.HandleTag, "tag"))
	mux.HandleFunc("GET /archives", middleware.Metrics(h.HandleArchives, "archives"))
	mux.Handle("GET /static/", staticHandler())
}

// serve runs the layout loader and load concurrently and renders view on
// success or the error page on the first failure.
func (h *Handler) serve(w http.ResponseWriter, r *http.Request, name string,
	load func(context.Context, *pagectx.Page) error, view func() (string, templ.Component),
) {
	start := time.Now()
	ctx := r.Context()
	p := pagectx.FromRequest(r, middleware.RequestIDFrom(ctx))

	var layout loader.LayoutData
	err := loader.All(ctx,
		func(ctx context.Context) error { return h.loader.Layout(ctx, p, &layout) },
		func(ctx context.Context) error { return load(ctx, p) },
	)

	status := http.StatusOK
	if err != nil {
		status = writeError(w, r, p, layout, err)
	} else {
		title, body := view()
		writePage(w, r, p, status, title, layout, body)
	}
	metrics.RecordPageLoad(name, outcomeFor(status), float64(time.Since(start).Milliseconds()))
}

// HandleHome handles GET / requests.
func (h *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	var data loader.HomeData
	h.serve(w, r, "home",
		func(ctx context.Context, p *pagectx.Page) error { return h.loader.Home(ctx, p, &data) },
		func() (string, templ.Component) { return "", views.Home(data) },
	)
}

// HandleArticles handles GET /articles?sort= requests.
func (h *Handler) HandleArticles(w http.ResponseWriter, r *http.Request) {
	sort, sortErr := model.ParseSortOrder(r.URL.Query().Get("sort"))
	var data loader.ArticlesData
	h.serve(w, r, "articles",
		func(ctx context.Context, p *pagectx.Page) error {
			if sortErr != nil {
				return fmt.Errorf("%w: %w", ErrBadRequest, sortErr)
			}
			return h.loader.Articles(ctx, p, sort, &data)
		},
		func() (string, templ.Component) { return "Articles", views.Articles(data) },
	)
}

// HandleArticle handles GET /articles/{slug} requests.
func (h *Handler) HandleArticle(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	var data loader.ArticleData
	h.serve(w, r, "article",
		func(ctx context.Context, p *pagectx.Page) error { return h.loader.Article(ctx, p, slug, &data) },
		func() (string, templ.Component) { return data.Article.Title, views.Article(data) },
	)
}

// HandleLike handles POST /articles/{slug}/like form submissions and
// redirects back to the article.
func (h *Handler) HandleLike(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	slug := r.PathValue("slug")
	p := pagectx.FromRequest(r, middleware.RequestIDFrom(ctx))

	like, err := strconv.ParseBool(r.PostFormValue("like"))
	if err != nil {
		err = fmt.Errorf("%w: like must be true or false", ErrBadRequest)
	} else {
		_, err = h.loader.Like(ctx, p, slug, like)
	}
	if err != nil {
		status := writeError(w, r, p, loader.LayoutData{}, err)
		metrics.RecordPageLoad("like", outcomeFor(status), float64(time.Since(start).Milliseconds()))
		return
	}

	p.Apply(w.Header())
	http.Redirect(w, r, "/articles/"+url.PathEscape(slug), http.StatusSeeOther)
	metrics.RecordPageLoad("like", outcomeOK, float64(time.Since(start).Milliseconds()))
}

// HandleShorts handles GET /shorts requests.
func (h *Handler) HandleShorts(w http.ResponseWriter, r *http.Request) {
	var data loader.ShortsData
	h.serve(w, r, "shorts",
		func(ctx context.Context, p *pagectx.Page) error { return h.loader.Shorts(ctx, p, &data) },
		func() (string, templ.Component) { return "Shorts", views.Shorts(data) },
	)
}

// HandleShort handles GET /shorts/{slug} requests.
func (h *Handler) HandleShort(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	var data loader.ShortData
	h.serve(w, r, "short",
		func(ctx context.Context, p *pagectx.Page) error { return h.loader.Short(ctx, p, slug, &data) },
		func() (string, templ.Component) { return data.Short.Title, views.Short(data) },
	)
}

// HandleTag handles GET /tags/{tag} requests.
func (h *Handler) HandleTag(w http.ResponseWriter, r *http.Request) {
	tag := r.PathValue("tag")
	var data loader.TagData
	h.serve(w, r, "tag",
		func(ctx context.Context, p *pagectx.Page) error { return h.loader.TagArticles(ctx, p, tag, &data) },
		func() (string, templ.Component) { return "#" + tag, views.Tag(data) },
	)
}

// HandleArchives handles GET /archives requests.
func (h *Handler) HandleArchives(w http.ResponseWriter, r *http.Request) {
	var data loader.ArchivesData
	h.serve(w, r, "archives",
		func(ctx context.Context, p *pagectx.Page) error { return h.loader.Archives(ctx, p, &data) },
		func() (string, templ.Component) { return "Archives", views.Archives(data) },
	)
}
