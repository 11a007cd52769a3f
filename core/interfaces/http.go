package interfaces

import (
	"context"
	"io"
)

// HTTPClient performs outbound requests for feeds, article pages and profiles.
// Tests replace it with a func-field mock.
type HTTPClient interface {
	// Get performs an HTTP GET request to the specified URL.
	Get(ctx context.Context, url string) (Response, error)

	// Post performs an HTTP POST request with the given body.
	Post(ctx context.Context, url string, body io.Reader) (Response, error)
}

// Response is the subset of an HTTP response the services read.
type Response interface {
	// StatusCode returns the HTTP status code of the response.
	StatusCode() int

	// Body returns the response body. The caller closes it.
	Body() io.ReadCloser

	// Header returns the value of the specified header, or "" when absent.
	Header(key string) string
}
