package api

import (
	"embed"
	"html/template"
	"io/fs"

	"github.com/okian/indiacovid/internal/domain/layout"
)

// The page shell only; scripts and styles are served by the site package.
//
//go:embed static/dashboard.html
var pageFS embed.FS

const dashboardPageName = "dashboard.html"

var dashboardTemplate = template.Must(parseDashboardTemplate(mustSub(pageFS, "static")))

// parseDashboardTemplate parses dashboard.html from fsys with the helpers
// the layout tree needs: css for Style maps and figure for plotly JSON.
func parseDashboardTemplate(fsys fs.FS) (*template.Template, error) {
	return template.New(dashboardPageName).Funcs(template.FuncMap{
		"css":    func(s layout.Style) template.CSS { return template.CSS(s.CSS()) },
		"figure": figureJSON,
	}).ParseFS(fsys, dashboardPageName)
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
