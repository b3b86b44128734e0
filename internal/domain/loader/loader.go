// Package loader holds the route loaders: one function per page that calls
// the backend through the request helper and shapes the payloads the page
// renders.
package loader

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/okian/suwen/internal/adapters/apiclient"
	"github.com/okian/suwen/internal/domain/model"
	"github.com/okian/suwen/internal/domain/pagectx"
	"github.com/okian/suwen/pkg/metrics"
)

// Backend API paths. Names double as metric and span labels.
const (
	pathSite         = "/api/site"
	pathMe           = "/api/me"
	pathArticles     = "/api/articles"
	pathArticle      = "/api/articles/{slug}"
	pathArticleLikes = "/api/articles/{slug}/likes"
	pathArticleViews = "/api/articles/{slug}/views"
	pathShorts       = "/api/shorts"
	pathShort        = "/api/shorts/{slug}"
	pathTags         = "/api/tags"
	pathTagArticles  = "/api/tags/{tag}/articles"
	pathArchives     = "/api/archives"
)

// Loader binds the route loaders to a backend client.
type Loader struct {
	client *apiclient.Client

	lang             string
	homeArticleLimit int
	homeShortLimit   int
	listLimit        int
}

// New creates a Loader with default language and limits.
func New(client *apiclient.Client, opts ...Option) *Loader {
	l := &Loader{
		client:           client,
		lang:             "zh-CN",
		homeArticleLimit: 10,
		homeShortLimit:   6,
		listLimit:        100,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Layout loads the site profile and the visitor identity. The identity call
// may mint an anonymous cookie, which is relayed through p.
func (l *Loader) Layout(ctx context.Context, p *pagectx.Page, out *LayoutData) error {
	return All(ctx,
		func(ctx context.Context) error {
			site, err := apiclient.Do[model.Site](ctx, l.client, l.get(p, pathSite, pathSite))
			out.Site = site
			return err
		},
		func(ctx context.Context) error {
			resp, err := l.client.Raw(ctx, l.get(p, pathMe, pathMe))
			if err != nil {
				return err
			}
			metrics.RecordCookieRelay(p.RelayCookie(resp.Header))
			me, err := apiclient.Unwrap[model.Identity](resp)
			out.Me = me
			return err
		},
	)
}

// Home loads the latest articles and shorts.
func (l *Loader) Home(ctx context.Context, p *pagectx.Page, out *HomeData) error {
	return All(ctx,
		func(ctx context.Context) error {
			req := l.get(p, pathArticles, pathArticles, l.langParam(), limitParam(l.homeArticleLimit))
			articles, err := apiclient.Do[[]model.ArticleByList](ctx, l.client, req)
			out.Articles = articles
			return err
		},
		func(ctx context.Context) error {
			req := l.get(p, pathShorts, pathShorts, l.langParam(), limitParam(l.homeShortLimit))
			shorts, err := apiclient.Do[[]model.Short](ctx, l.client, req)
			out.Shorts = shorts
			return err
		},
	)
}

// Articles loads the article index in the given order.
func (l *Loader) Articles(ctx context.Context, p *pagectx.Page, sort model.SortOrder, out *ArticlesData) error {
	query := []apiclient.Param{l.langParam(), limitParam(l.listLimit)}
	if s := sort.Param(); s != "" {
		query = append(query, apiclient.Q("sort", s))
	}
	articles, err := apiclient.Do[[]model.ArticleByList](ctx, l.client, l.get(p, pathArticles, pathArticles, query...))
	out.Sort = sort
	out.Articles = articles
	return err
}

// Article loads one article, whether the visitor liked it, and records the view.
func (l *Loader) Article(ctx context.Context, p *pagectx.Page, slug string, out *ArticleData) error {
	base := pathArticles + "/" + url.PathEscape(slug)
	out.Slug = slug
	return All(ctx,
		func(ctx context.Context) error {
			article, err := apiclient.Do[model.ArticleBySlug](ctx, l.client, l.get(p, pathArticle, base, l.langParam()))
			out.Article = article
			return err
		},
		func(ctx context.Context) error {
			liked, err := apiclient.Do[bool](ctx, l.client, l.get(p, pathArticleLikes, base+"/likes"))
			out.Liked = liked
			return err
		},
		func(ctx context.Context) error {
			req := l.get(p, pathArticleViews, base+"/views")
			req.Method = http.MethodPost
			views, err := apiclient.Do[int](ctx, l.client, req)
			out.Views = views
			return err
		},
	)
}

// Like sets or clears the visitor's like and returns the new like count.
func (l *Loader) Like(ctx context.Context, p *pagectx.Page, slug string, like bool) (int, error) {
	req := l.get(p, pathArticleLikes, pathArticles+"/"+url.PathEscape(slug)+"/likes")
	req.Method = http.MethodPost
	req.JSONBody = model.LikeRequest{Like: like}

	resp, err := l.client.Raw(ctx, req)
	if err != nil {
		return 0, err
	}
	metrics.RecordCookieRelay(p.RelayCookie(resp.Header))
	return apiclient.Unwrap[int](resp)
}

// Shorts loads the shorts index.
func (l *Loader) Shorts(ctx context.Context, p *pagectx.Page, out *ShortsData) error {
	req := l.get(p, pathShorts, pathShorts, l.langParam(), limitParam(l.listLimit))
	shorts, err := apiclient.Do[[]model.Short](ctx, l.client, req)
	out.Shorts = shorts
	return err
}

// Short loads one short.
func (l *Loader) Short(ctx context.Context, p *pagectx.Page, slug string, out *ShortData) error {
	req := l.get(p, pathShort, pathShorts+"/"+url.PathEscape(slug), l.langParam())
	short, err := apiclient.Do[model.Short](ctx, l.client, req)
	out.Slug = slug
	out.Short = short
	return err
}

// TagArticles loads the articles carrying tag.
func (l *Loader) TagArticles(ctx context.Context, p *pagectx.Page, tag string, out *TagData) error {
	req := l.get(p, pathTagArticles, pathTags+"/"+url.PathEscape(tag)+"/articles", l.langParam(), limitParam(l.listLimit))
	articles, err := apiclient.Do[[]model.ArticleByList](ctx, l.client, req)
	out.Tag = tag
	out.Articles = articles
	return err
}

// Archives loads the tag cloud and the per-year archive.
func (l *Loader) Archives(ctx context.Context, p *pagectx.Page, out *ArchivesData) error {
	return All(ctx,
		func(ctx context.Context) error {
			tags, err := apiclient.Do[[]model.TagWithCount](ctx, l.client, l.get(p, pathTags, pathTags))
			out.Tags = tags
			return err
		},
		func(ctx context.Context) error {
			groups, err := apiclient.Do[model.ArchiveGroups](ctx, l.client, l.get(p, pathArchives, pathArchives, l.langParam()))
			out.Groups = groups
			return err
		},
	)
}

func (l *Loader) get(p *pagectx.Page, name, path string, query ...apiclient.Param) apiclient.Request {
	return apiclient.Request{
		Name:    name,
		Path:    path,
		Query:   query,
		Headers: p.ForwardHeaders(),
	}
}

func (l *Loader) langParam() apiclient.Param { return apiclient.Q("lang", l.lang) }

func limitParam(n int) apiclient.Param { return apiclient.Q("limit", strconv.Itoa(n)) }
