package views

import (
	"strconv"

	"github.com/a-h/templ"
	"github.com/okian/suwen/internal/domain/loader"
	"github.com/okian/suwen/internal/domain/model"
)

// Home renders the latest articles followed by the latest shorts.
func Home(data loader.HomeData) templ.Component {
	return component(func(h *html) {
		h.raw(`<section class="articles"><h2>Articles</h2>`)
		h.render(articleList(data.Articles))
		h.raw(`<a class="more" href="/articles">All articles</a></section>`)
		h.raw(`<section class="shorts"><h2>Shorts</h2>`)
		h.render(shortGrid(data.Shorts))
		h.raw(`<a class="more" href="/shorts">All shorts</a></section>`)
	})
}

var sortLabels = []struct {
	order model.SortOrder
	label string
}{
	{model.SortLatest, "Latest"},
	{model.SortTrending, "Trending"},
	{model.SortTopComments, "Most discussed"},
}

// Articles renders the article index with its sort switcher.
func Articles(data loader.ArticlesData) templ.Component {
	return component(func(h *html) {
		h.raw(`<nav class="sort">`)
		for _, s := range sortLabels {
			h.raw(`<a href="/articles`)
			if p := s.order.Param(); p != "" {
				h.raw(`?sort=`)
				h.text(p)
			}
			h.raw(`"`)
			if s.order == data.Sort {
				h.raw(` aria-current="page"`)
			}
			h.raw(`>`)
			h.text(s.label)
			h.raw(`</a>`)
		}
		h.raw(`</nav>`)
		h.render(articleList(data.Articles))
	})
}

// Article renders one article. The body is backend-rendered HTML.
func Article(data loader.ArticleData) templ.Component {
	return component(func(h *html) {
		a := data.Article
		h.raw(`<article class="post"><h1>`)
		h.text(a.Title)
		h.raw(`</h1><p class="meta">`)
		h.date(a.PublishedAt)
		h.raw(` · <span class="views">`)
		h.num(data.Views)
		h.raw(` views</span> · <span class="comments">`)
		h.num(a.CommentCount)
		h.raw(` comments</span></p>`)
		h.render(tagLinks(a.Tags))

		if len(a.TOC) > 0 {
			h.raw(`<nav class="toc"><ol>`)
			for _, entry := range a.TOC {
				h.raw(`<li class="toc-level-`)
				h.num(entry.Level)
				h.raw(`"><a href="#`)
				h.text(entry.ID)
				h.raw(`">`)
				h.text(entry.Text)
				h.raw(`</a></li>`)
			}
			h.raw(`</ol></nav>`)
		}

		h.raw(`<div class="content">`)
		h.render(templ.Raw(a.RenderedHTML))
		h.raw(`</div>`)

		h.raw(`<form class="like" method="post" action="`)
		h.href(articleURL(data.Slug) + "/like")
		h.raw(`"><input type="hidden" name="like" value="`)
		h.raw(strconv.FormatBool(!data.Liked))
		h.raw(`"><button type="submit"`)
		if data.Liked {
			h.raw(` class="liked">Liked`)
		} else {
			h.raw(`>Like`)
		}
		h.raw(`</button></form></article>`)
	})
}

// Shorts renders the shorts index.
func Shorts(data loader.ShortsData) templ.Component {
	return component(func(h *html) {
		h.raw(`<h1>Shorts</h1>`)
		h.render(shortGrid(data.Shorts))
	})
}

// Short renders one short with all of its images.
func Short(data loader.ShortData) templ.Component {
	return component(func(h *html) {
		s := data.Short
		h.raw(`<article class="short"><h1>`)
		h.text(s.Title)
		h.raw(`</h1><div class="gallery">`)
		for _, img := range s.CoverImages {
			h.raw(`<img src="`)
			h.href(img)
			h.raw(`" alt="" loading="lazy">`)
		}
		h.raw(`</div><p>`)
		h.text(s.Content)
		h.raw(`</p></article>`)
	})
}

// Tag renders the articles carrying one tag.
func Tag(data loader.TagData) templ.Component {
	return component(func(h *html) {
		h.raw(`<h1>#`)
		h.text(data.Tag)
		h.raw(`</h1>`)
		h.render(articleList(data.Articles))
	})
}

// Archives renders the tag cloud and the per-year archive.
func Archives(data loader.ArchivesData) templ.Component {
	return component(func(h *html) {
		h.raw(`<section class="tags"><h2>Tags</h2><ul>`)
		for _, tag := range data.Tags {
			h.raw(`<li><a href="`)
			h.href(tagURL(tag.Name))
			h.raw(`">`)
			h.text(tag.Name)
			h.raw(`</a> <span class="count">`)
			h.num(tag.Count)
			h.raw(`</span></li>`)
		}
		h.raw(`</ul></section><section class="archives"><h2>Archives <span class="count">`)
		h.num(data.Groups.Count())
		h.raw(`</span></h2>`)
		for _, year := range data.Groups {
			h.raw(`<h3>`)
			h.num(year.Year)
			h.raw(`</h3><ul>`)
			for _, entry := range year.Archives {
				h.raw(`<li>`)
				h.date(entry.PublishedAt)
				h.raw(` <a href="`)
				h.href(articleURL(entry.Slug))
				h.raw(`">`)
				h.text(entry.Title)
				h.raw(`</a></li>`)
			}
			h.raw(`</ul>`)
		}
		h.raw(`</section>`)
	})
}

// Error renders an error page body.
func Error(status int, title, detail string) templ.Component {
	return component(func(h *html) {
		h.raw(`<section class="error"><h1>`)
		h.num(status)
		h.raw(` `)
		h.text(title)
		h.raw(`</h1>`)
		if detail != "" {
			h.raw(`<p>`)
			h.text(detail)
			h.raw(`</p>`)
		}
		h.raw(`<a href="/">Back home</a></section>`)
	})
}

func articleList(articles []model.ArticleByList) templ.Component {
	return component(func(h *html) {
		if len(articles) == 0 {
			h.raw(`<p class="empty">Nothing here yet.</p>`)
			return
		}
		h.raw(`<ul class="article-list">`)
		for _, a := range articles {
			h.raw(`<li><a href="`)
			h.href(articleURL(a.Slug))
			h.raw(`">`)
			if len(a.CoverImages) > 0 {
				h.raw(`<img src="`)
				h.href(a.CoverImages[0])
				h.raw(`" alt="" loading="lazy">`)
			}
			h.raw(`<h3>`)
			h.text(a.Title)
			h.raw(`</h3></a><p class="meta">`)
			h.date(a.PublishedAt)
			h.raw(` · `)
			h.num(a.ViewCount)
			h.raw(` views · `)
			h.num(a.CommentCount)
			h.raw(` comments</p>`)
			h.render(tagLinks(a.Tags))
			h.raw(`</li>`)
		}
		h.raw(`</ul>`)
	})
}

func shortGrid(shorts []model.Short) templ.Component {
	return component(func(h *html) {
		h.raw(`<div class="short-grid">`)
		for _, s := range shorts {
			h.raw(`<a class="short-card" href="`)
			h.href(shortURL(s.Slug))
			h.raw(`">`)
			if len(s.CoverImages) > 0 {
				h.raw(`<img src="`)
				h.href(s.CoverImages[0])
				h.raw(`" alt="" loading="lazy">`)
			}
			h.raw(`<span>`)
			h.text(s.Title)
			h.raw(`</span></a>`)
		}
		h.raw(`</div>`)
	})
}

func tagLinks(tags []string) templ.Component {
	return component(func(h *html) {
		if len(tags) == 0 {
			return
		}
		h.raw(`<ul class="tags">`)
		for _, tag := range tags {
			h.raw(`<li><a href="`)
			h.href(tagURL(tag))
			h.raw(`">#`)
			h.text(tag)
			h.raw(`</a></li>`)
		}
		h.raw(`</ul>`)
	})
}
