// ABOUTME: HTML utilities for reducing markup to plain text
// ABOUTME: Used to clean feed subtitles and profile descriptions before they reach the graph

package html

import (
	"io"
	"strings"

	xhtml "golang.org/x/net/html"
)

// StripHTML returns the visible text of an HTML fragment with entities decoded and
// whitespace collapsed. Script and style contents are dropped.
func StripHTML(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return CollapseSpace(fragment)
	}

	z := xhtml.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	skip := 0

	for {
		switch z.Next() {
		case xhtml.ErrorToken:
			if z.Err() == io.EOF {
				return CollapseSpace(b.String())
			}
			return CollapseSpace(b.String())

		case xhtml.StartTagToken:
			name, _ := z.TagName()
			if isHidden(string(name)) {
				skip++
			}
			b.WriteByte(' ')

		case xhtml.EndTagToken:
			name, _ := z.TagName()
			if isHidden(string(name)) && skip > 0 {
				skip--
			}
			b.WriteByte(' ')

		case xhtml.SelfClosingTagToken:
			b.WriteByte(' ')

		case xhtml.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

func isHidden(tag string) bool {
	return tag == "script" || tag == "style"
}

// DecodeEntities decodes HTML entities such as &amp; and &#8217;
func DecodeEntities(text string) string {
	return xhtml.UnescapeString(text)
}

// CollapseSpace trims text and folds runs of whitespace into single spaces
func CollapseSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Truncate shortens text to at most max runes, appending "..." when cut
func Truncate(text string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
