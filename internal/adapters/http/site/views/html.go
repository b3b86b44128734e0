// Package views renders the blog pages as templ components. Backend text is
// always escaped; only article bodies, which the backend renders, are
// written raw.
package views

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/a-h/templ"
)

const dateLayout = "2006-01-02"

// html accumulates the first write error so component bodies stay linear.
type html struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (h *html) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *html) text(s string) { h.raw(templ.EscapeString(s)) }

func (h *html) num(n int) { h.raw(strconv.Itoa(n)) }

func (h *html) date(t time.Time) {
	if t.IsZero() {
		return
	}
	h.raw(`<time datetime="`)
	h.text(t.Format(time.RFC3339))
	h.raw(`">`)
	h.text(t.Format(dateLayout))
	h.raw(`</time>`)
}

// href writes a sanitized attribute value for s.
func (h *html) href(s string) { h.text(string(templ.URL(s))) }

func (h *html) render(c templ.Component) {
	if h.err == nil && c != nil {
		h.err = c.Render(h.ctx, h.w)
	}
}

// component adapts a body writer into a templ component.
func component(body func(h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{ctx: ctx, w: w}
		body(h)
		return h.err
	})
}

func articleURL(slug string) string { return "/articles/" + url.PathEscape(slug) }

func shortURL(slug string) string { return "/shorts/" + url.PathEscape(slug) }

func tagURL(tag string) string { return "/tags/" + url.PathEscape(tag) }
