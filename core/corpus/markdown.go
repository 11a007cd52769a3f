// ABOUTME: Markdown link extraction using goldmark's parser
// ABOUTME: Handles inline, reference-style and image links the way they appear in article drafts

package corpus

import (
	"strings"

	"kgraph-api/core/domain"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New()

// ExtractMarkdownLinks returns the links of a markdown document in source order. Images
// count as links so that the exclusion policy can drop them.
func ExtractMarkdownLinks(src []byte) []domain.Link {
	doc := markdown.Parser().Parse(text.NewReader(src))

	var links []domain.Link
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			links = append(links, domain.Link{
				Text: nodeText(node, src),
				Href: string(node.Destination),
			})
		case *ast.Image:
			links = append(links, domain.Link{
				Text: nodeText(node, src),
				Href: string(node.Destination),
			})
		case *ast.AutoLink:
			if node.AutoLinkType == ast.AutoLinkURL {
				u := string(node.URL(src))
				links = append(links, domain.Link{Text: u, Href: u})
			}
		}
		return ast.WalkContinue, nil
	})
	return links
}

func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		default:
			b.WriteString(nodeText(c, src))
		}
	}
	return strings.TrimSpace(b.String())
}
