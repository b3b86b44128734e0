package views

import (
	"github.com/a-h/templ"
	"github.com/okian/suwen/internal/domain/loader"
)

const fallbackSiteName = "suwen"

// Shell wraps a page body (passed as templ children) in the site chrome.
func Shell(title string, layout loader.LayoutData) templ.Component {
	return component(func(h *html) {
		site := layout.Site
		name := site.SiteName
		if name == "" {
			name = fallbackSiteName
		}

		h.raw(`<!DOCTYPE html><html><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		if title != "" {
			h.text(title)
			h.raw(` | `)
		}
		h.text(name)
		h.raw(`</title>`)
		if site.Intro != "" {
			h.raw(`<meta name="description" content="`)
			h.text(site.Intro)
			h.raw(`">`)
		}
		if len(site.Keywords) > 0 {
			h.raw(`<meta name="keywords" content="`)
			for i, k := range site.Keywords {
				if i > 0 {
					h.raw(`, `)
				}
				h.text(k)
			}
			h.raw(`">`)
		}
		h.raw(`<link rel="stylesheet" href="/static/style.css"></head><body>`)

		h.raw(`<header class="site-header"><a class="brand" href="/">`)
		if site.AvatarURL != "" {
			h.raw(`<img class="avatar" src="`)
			h.href(site.AvatarURL)
			h.raw(`" alt="">`)
		}
		h.text(name)
		h.raw(`</a><nav>`)
		for _, tab := range site.Tabs {
			h.raw(`<a href="`)
			h.href(tab.URL)
			h.raw(`">`)
			h.text(tab.Name)
			h.raw(`</a>`)
		}
		h.raw(`</nav><span class="visitor">`)
		h.text(layout.Me.Name(""))
		h.raw(`</span></header><main>`)

		h.render(templ.GetChildren(h.ctx))

		h.raw(`</main><footer class="site-footer">`)
		if site.DisplayName != "" {
			h.raw(`<span>`)
			h.text(site.DisplayName)
			h.raw(`</span>`)
		}
		for _, link := range site.RelatedLinks {
			h.raw(`<a rel="me" href="`)
			h.href(link.URL)
			h.raw(`" title="`)
			h.text(link.Name)
			h.raw(`">`)
			if link.Icon != "" {
				h.raw(`<img class="icon" src="`)
				h.href(link.Icon)
				h.raw(`" alt="`)
				h.text(link.Name)
				h.raw(`">`)
			} else {
				h.text(link.Name)
			}
			h.raw(`</a>`)
		}
		h.raw(`</footer></body></html>`)
	})
}
