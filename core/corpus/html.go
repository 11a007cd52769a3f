// ABOUTME: HTML link and heading extraction for article bodies
// ABOUTME: Turns feed content or reader-view HTML into the ordered link list of an article

package corpus

import (
	"net/url"
	"strings"

	"kgraph-api/core/domain"
	htmlutil "kgraph-api/pkg/utils/html"

	"github.com/PuerkitoBio/goquery"
)

// ExtractHTMLLinks returns every a[href] in document order. Relative hrefs are resolved
// against base when base is an absolute URL; anything unresolvable is kept verbatim so the
// classifier can drop it.
func ExtractHTMLLinks(src string, base string) ([]domain.Link, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	return linksFromDocument(doc, base), nil
}

func linksFromDocument(doc *goquery.Document, base string) []domain.Link {
	baseURL, err := url.Parse(base)
	if err != nil || !baseURL.IsAbs() {
		baseURL = nil
	}

	var links []domain.Link
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" {
			return
		}
		links = append(links, domain.Link{
			Text: htmlutil.CollapseSpace(s.Text()),
			Href: resolve(baseURL, href),
		})
	})
	return links
}

func resolve(base *url.URL, href string) string {
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil || ref.IsAbs() {
		return href
	}
	// in-page anchors point at the article itself
	if ref.Scheme == "" && ref.Host == "" && ref.Path == "" && ref.RawQuery == "" {
		return href
	}
	return base.ResolveReference(ref).String()
}

// headings holds the first title-like and subtitle-like headings of a document
type headings struct {
	Title    string
	Subtitle string
}

// extractHeadings skips subtitle candidates that repeat the h1 or knownTitle
func extractHeadings(doc *goquery.Document, knownTitle string) headings {
	var h headings
	h.Title = htmlutil.CollapseSpace(doc.Find("h1").First().Text())
	doc.Find("h2, h3, h4").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := htmlutil.CollapseSpace(s.Text())
		if text == "" || text == h.Title || text == knownTitle {
			return true
		}
		h.Subtitle = text
		return false
	})
	return h
}
