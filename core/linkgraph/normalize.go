// ABOUTME: URL normalization helpers that reduce links to comparable identities
// ABOUTME: SlugOf identifies sibling articles, NetworkLocationOf groups external domains

package linkgraph

import (
	"net/url"
	"strings"
)

// SlugOf returns the last path segment of rawURL after dropping the query string, the
// fragment and one trailing slash. The boolean is false when no slug can be derived;
// such links never match an article.
func SlugOf(rawURL string) (string, bool) {
	s := rawURL
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSuffix(s, "/")
	if s == "" {
		return "", false
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", false
	}
	// "https://example.com" has an authority but no path to take a segment from
	if u.Host != "" && strings.Trim(u.Path, "/") == "" {
		return "", false
	}

	slug := s[strings.LastIndexByte(s, '/')+1:]
	if slug == "" {
		return "", false
	}
	return slug, true
}

// NetworkLocationOf returns the URL authority (host with optional port) exactly as the
// parser reports it. Unparseable input yields "".
func NetworkLocationOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
