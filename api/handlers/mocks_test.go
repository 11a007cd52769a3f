package handlers

import (
	"context"
	"io"
	"sync"

	"kgraph-api/core/domain"
	"kgraph-api/core/export"
	"kgraph-api/core/pipeline"
)

type mockGraphService struct {
	generateFunc   func(ctx context.Context, req pipeline.Request) (*export.Document, error)
	fromCorpusFunc func(ctx context.Context, c *domain.Corpus, opts pipeline.Options) (*export.Document, error)
}

func (m *mockGraphService) Generate(ctx context.Context, req pipeline.Request) (*export.Document, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, req)
	}
	return &export.Document{Username: req.Username, Isolate: req.Isolate}, nil
}

func (m *mockGraphService) FromCorpus(ctx context.Context, c *domain.Corpus, opts pipeline.Options) (*export.Document, error) {
	if m.fromCorpusFunc != nil {
		return m.fromCorpusFunc(ctx, c, opts)
	}
	return &export.Document{Username: c.User.Username, Isolate: opts.Isolate}, nil
}

type mockPublisher struct {
	publishFunc func(ctx context.Context, name, contentType string, body io.Reader) (string, error)
}

func (m *mockPublisher) Publish(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, name, contentType, body)
	}
	return "file://" + name, nil
}

type mockLogger struct {
	mu     sync.Mutex
	errors int
	infos  int
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}

func (m *mockLogger) Info(msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infos++
}

func (m *mockLogger) Warn(msg string, fields map[string]interface{}) {}

func (m *mockLogger) Error(msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors++
}
