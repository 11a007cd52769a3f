// ABOUTME: HTML renderer that embeds the graph document in a vis-network page
// ABOUTME: The page template ships inside the binary

package export

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/graph.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/graph.html.tmpl"))

// pageData is what the template sees
type pageData struct {
	Title string
	Doc   *Document
}

// RenderHTML writes a standalone graph page for doc
func RenderHTML(w io.Writer, doc *Document) error {
	title := "Knowledge graph"
	if doc.Username != "" {
		title = doc.Username + " - knowledge graph"
	}
	return pageTemplate.Execute(w, pageData{Title: title, Doc: doc})
}
