package loader

import "github.com/okian/suwen/internal/domain/model"

// LayoutData is shared by every page: the site profile and the visitor.
type LayoutData struct {
	Site model.Site
	Me   model.Identity
}

// HomeData feeds the home page.
type HomeData struct {
	Articles []model.ArticleByList
	Shorts   []model.Short
}

// ArticlesData feeds the article index.
type ArticlesData struct {
	Sort     model.SortOrder
	Articles []model.ArticleByList
}

// ArticleData feeds an article page. Views is the count after this visit.
type ArticleData struct {
	Slug    string
	Article model.ArticleBySlug
	Liked   bool
	Views   int
}

// ShortsData feeds the shorts index.
type ShortsData struct {
	Shorts []model.Short
}

// ShortData feeds a single short.
type ShortData struct {
	Slug  string
	Short model.Short
}

// TagData feeds the per-tag article list.
type TagData struct {
	Tag      string
	Articles []model.ArticleByList
}

// ArchivesData feeds the archive page.
type ArchivesData struct {
	Tags   []model.TagWithCount
	Groups model.ArchiveGroups
}
