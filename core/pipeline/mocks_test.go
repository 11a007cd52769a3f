package pipeline

import (
	"context"
	"sync"
	"time"

	"kgraph-api/core/domain"
)

// mockCorpusProvider is a mock implementation of the CorpusProvider interface
type mockCorpusProvider struct {
	loadFunc func(ctx context.Context, username string, maxArticles int) (*domain.Corpus, error)
}

func (m *mockCorpusProvider) LoadUserCorpus(ctx context.Context, username string, maxArticles int) (*domain.Corpus, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, username, maxArticles)
	}
	return &domain.Corpus{}, nil
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

// mockMetrics captures what the pipeline reports
type mockMetrics struct {
	builds  int
	nodes   int
	edges   int
	isolate bool
	dropped map[string]int
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{dropped: make(map[string]int)}
}

func (m *mockMetrics) ObserveBuild(isolate bool, nodes, edges int, duration time.Duration) {
	m.builds++
	m.isolate = isolate
	m.nodes = nodes
	m.edges = edges
}

func (m *mockMetrics) IncDroppedLinks(reason string, count int) {
	m.dropped[reason] += count
}

func (m *mockMetrics) IncCorpusFetch(source string, success bool) {}
