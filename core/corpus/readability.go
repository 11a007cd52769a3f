// ABOUTME: Reader-view fallback for feed items that ship without a body
// ABOUTME: Fetches the article page and extracts the main content with go-readability

package corpus

import (
	"context"
	"fmt"
	"net/url"

	coreerrors "kgraph-api/core/errors"

	readability "github.com/go-shiori/go-readability"
)

// readerView is the part of a readability result the corpus needs
type readerView struct {
	Title   string
	Excerpt string
	Content string
}

// fetchReaderView downloads pageURL and extracts its main article HTML
func (s *Service) fetchReaderView(ctx context.Context, pageURL string) (*readerView, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || !parsed.IsAbs() {
		return nil, &coreerrors.ValidationError{Field: "url", Message: fmt.Sprintf("cannot fetch %q", pageURL)}
	}

	resp, err := s.deps.HTTPClient.Get(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return nil, &coreerrors.ExternalAPIError{
			API:        "article",
			StatusCode: resp.StatusCode(),
			Message:    "article page returned non-200 status code",
		}
	}

	article, err := readability.FromReader(resp.Body(), parsed)
	if err != nil {
		return nil, &coreerrors.ParseError{Source: pageURL, Format: "article html", Err: err}
	}

	return &readerView{
		Title:   article.Title,
		Excerpt: article.Excerpt,
		Content: article.Content,
	}, nil
}
