package site

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static/style.css
var assets embed.FS

// staticHandler serves the embedded assets rooted at static/, so
// /static/style.css maps to static/style.css.
func staticHandler() http.Handler {
	root, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err) // the embed pattern above guarantees the directory
	}
	return http.StripPrefix("/static/", http.FileServerFS(root))
}
