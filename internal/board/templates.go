package board

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// PageData is the input of the index template.
type PageData struct {
	View  View
	Limit int
}

// Render writes the full page for data to w.
func Render(w io.Writer, data PageData) error {
	return pageTemplate.ExecuteTemplate(w, "index.html", data)
}
