package corpus

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"kgraph-api/core/interfaces"
)

// mockHTTPClient is a mock implementation of the HTTPClient interface
type mockHTTPClient struct {
	getFunc  func(ctx context.Context, url string) (interfaces.Response, error)
	postFunc func(ctx context.Context, url string, body io.Reader) (interfaces.Response, error)
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, url)
	}
	return nil, nil
}

func (m *mockHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	if m.postFunc != nil {
		return m.postFunc(ctx, url, body)
	}
	return nil, nil
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
	headers    map[string]string
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	if m.headers != nil {
		return m.headers[key]
	}
	return ""
}

// mockCache is a mock implementation of the Cache interface
type mockCache struct {
	getFunc    func(ctx context.Context, key string) ([]byte, error)
	setFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	deleteFunc func(ctx context.Context, key string) error
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, key)
	}
	return nil, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFunc != nil {
		return m.setFunc(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, key)
	}
	return nil
}

// mockLogger records messages by level
type mockLogger struct {
	mu       sync.Mutex
	messages map[string][]string
}

func newMockLogger() *mockLogger {
	return &mockLogger{messages: make(map[string][]string)}
}

func (m *mockLogger) log(level, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[level] = append(m.messages[level], msg)
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) { m.log("debug", msg) }
func (m *mockLogger) Info(msg string, fields map[string]interface{})  { m.log("info", msg) }
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  { m.log("warn", msg) }
func (m *mockLogger) Error(msg string, fields map[string]interface{}) { m.log("error", msg) }

func (m *mockLogger) count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages[level])
}

// mockProfileScraper is a mock implementation of the ProfileScraper interface
type mockProfileScraper struct {
	scrapeFunc func(ctx context.Context, profileURL string) (*interfaces.ProfileResult, error)
}

func (m *mockProfileScraper) ScrapeProfile(ctx context.Context, profileURL string) (*interfaces.ProfileResult, error) {
	if m.scrapeFunc != nil {
		return m.scrapeFunc(ctx, profileURL)
	}
	return &interfaces.ProfileResult{}, nil
}

// mockMetrics counts corpus fetches by source and outcome
type mockMetrics struct {
	mu      sync.Mutex
	fetches map[string]int
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{fetches: make(map[string]int)}
}

func (m *mockMetrics) ObserveBuild(isolate bool, nodes, edges int, duration time.Duration) {}

func (m *mockMetrics) IncDroppedLinks(reason string, count int) {}

func (m *mockMetrics) IncCorpusFetch(source string, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := source + ":fail"
	if success {
		key = source + ":ok"
	}
	m.fetches[key]++
}
