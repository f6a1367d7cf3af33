// Package web serves the browser greeting client: an HTML page holding the
// target element and the script that fills it.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/janisto/greeting-demo/internal/platform/respond"
)

// ElementID is the identifier of the element the browser script writes into.
const ElementID = "APIcontent"

//go:embed assets
var assets embed.FS

// Register mounts the page at / and the embedded script under /js/.
func Register(router chi.Router, apiURL string) {
	static, err := fs.Sub(assets, "assets")
	if err != nil {
		panic("web: embedded assets missing: " + err.Error())
	}

	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())
	router.Method(http.MethodGet, "/", templ.Handler(Index(apiURL, ElementID)))
	router.Method(http.MethodGet, "/js/*", http.FileServerFS(static))
}
