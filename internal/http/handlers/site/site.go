// Package site serves the embedded homepage and its static assets.
package site

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

//go:embed static
var staticFS embed.FS

// FS returns the static directory with the "static/" prefix stripped.
func FS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// Only possible if the embed directive above changes.
		panic(err)
	}
	return sub
}

// Home handles GET / with the registration page.
func Home() http.HandlerFunc {
	files := FS()
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, files, "index.html")
	}
}

// Assets serves any embedded file for GET and HEAD requests and hands
// everything else to notFound. It is meant to be the router's fallback.
func Assets(notFound http.HandlerFunc) http.HandlerFunc {
	files := FS()
	fileServer := http.FileServerFS(files)

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			notFound(w, r)
			return
		}

		name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		info, err := fs.Stat(files, name)
		if err != nil || info.IsDir() {
			notFound(w, r)
			return
		}

		fileServer.ServeHTTP(w, r)
	}
}
