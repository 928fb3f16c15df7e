package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/utrgv-dp/roadmap/pkg/catalog"
	"github.com/utrgv-dp/roadmap/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// StaticFS exposes the embedded client assets (cell editing script,
// stylesheet) for the HTTP server to serve under /static/.
func StaticFS() embed.FS { return staticFS }

var pageTemplates = template.Must(template.New("pages").Funcs(template.FuncMap{
	"pageHref": pageHref,
	"inc":      func(n int) int { return n + 1 },
	"dec":      func(n int) int { return n - 1 },
}).ParseFS(templateFS, "templates/*.html"))

// pageHref builds a browser link preserving the level filter.
func pageHref(level string, page int) string {
	return fmt.Sprintf("/?level=%s&page=%d", level, page)
}

// RoadmapPage is the data for the roadmap view: the identity of the
// degree being shown plus the pre-rendered table body.
type RoadmapPage struct {
	Course     string
	Degree     string
	College    string
	CourseType string
	Department string
	Table      template.HTML

	// Editable enables the inline cell editor script.
	Editable bool
}

// BrowserPage is the data for the degree browser view.
type BrowserPage struct {
	Level string
	Page  catalog.Page
}

// WriteRoadmapPage renders the full roadmap document.
func WriteRoadmapPage(w io.Writer, data RoadmapPage) error {
	if err := pageTemplates.ExecuteTemplate(w, "roadmap.html", data); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "rendering roadmap page")
	}
	return nil
}

// WriteBrowserPage renders the degree browser document.
func WriteBrowserPage(w io.Writer, data BrowserPage) error {
	if err := pageTemplates.ExecuteTemplate(w, "browser.html", data); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "rendering browser page")
	}
	return nil
}
