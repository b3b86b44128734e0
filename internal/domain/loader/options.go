package loader

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithLang sets the ?lang= value sent on content endpoints.
func WithLang(lang string) Option {
	return func(l *Loader) {
		if lang != "" {
			l.lang = lang
		}
	}
}

// WithHomeLimits bounds the article and short lists on the home page.
func WithHomeLimits(articles, shorts int) Option {
	return func(l *Loader) {
		if articles > 0 {
			l.homeArticleLimit = articles
		}
		if shorts > 0 {
			l.homeShortLimit = shorts
		}
	}
}

// WithListLimit bounds the index pages.
func WithListLimit(limit int) Option {
	return func(l *Loader) {
		if limit > 0 {
			l.listLimit = limit
		}
	}
}
