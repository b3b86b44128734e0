package site

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"
	"github.com/okian/suwen/internal/adapters/http/site/views"
	"github.com/okian/suwen/internal/domain/loader"
	"github.com/okian/suwen/internal/domain/pagectx"
	"github.com/okian/suwen/pkg/logger"
)

// writePage renders body inside the site shell and writes it with status.
// Relayed backend cookies are applied before the status line.
func writePage(w http.ResponseWriter, r *http.Request, p *pagectx.Page, status int, title string, layout loader.LayoutData, body templ.Component) {
	ctx := r.Context()

	var buf bytes.Buffer
	if err := views.Shell(title, layout).Render(templ.WithChildren(ctx, body), &buf); err != nil {
		logger.FromContext(ctx).Error(ctx, "failed to render page", logger.Error(err))
		p.Apply(w.Header())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	p.Apply(w.Header())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// writeError renders the error page for a failed load.
func writeError(w http.ResponseWriter, r *http.Request, p *pagectx.Page, layout loader.LayoutData, err error) int {
	status := statusFor(err)
	ctx := r.Context()

	log := logger.FromContext(ctx)
	if status >= http.StatusInternalServerError {
		log.Error(ctx, "page load failed", logger.Int("status", status), logger.Error(err))
	} else {
		log.Info(ctx, "page not served", logger.Int("status", status), logger.Error(err))
	}

	title := http.StatusText(status)
	writePage(w, r, p, status, title, layout, views.Error(status, title, detailFor(err, status)))
	return status
}
