package model

import "time"

// ArticleByList is an article summary as listed on index pages.
type ArticleByList struct {
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	CoverImages  []string  `json:"coverImages"`
	Tags         []string  `json:"tags"`
	ViewCount    int       `json:"viewCount"`
	CommentCount int       `json:"commentCount"`
	PublishedAt  time.Time `json:"publishedAt"`
}

// ArticleBySlug is a full article. RenderedHTML is produced by the backend
// and is emitted without escaping.
type ArticleBySlug struct {
	Title        string     `json:"title"`
	RenderedHTML string     `json:"renderedHtml"`
	Tags         []string   `json:"tags"`
	TOC          []TOCEntry `json:"toc"`
	ViewCount    int        `json:"viewCount"`
	CommentCount int        `json:"commentCount"`
	PublishedAt  time.Time  `json:"publishedAt"`
}

// TOCEntry is one heading of an article's table of contents.
type TOCEntry struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// Short is a short-form post.
type Short struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	CoverImages []string `json:"coverImages"`
	Content     string   `json:"content"`
}

// TagWithCount is a tag with the number of articles carrying it.
type TagWithCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// LikeRequest is the body of POST /api/articles/{slug}/likes.
type LikeRequest struct {
	Like bool `json:"like"`
}
