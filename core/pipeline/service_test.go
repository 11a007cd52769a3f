package pipeline

import (
	"context"
	"errors"
	"testing"

	"kgraph-api/core/domain"
	coreerrors "kgraph-api/core/errors"
	"kgraph-api/core/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCorpus() *domain.Corpus {
	return &domain.Corpus{
		User: domain.UserProfile{ProfileText: "bio", AvatarURL: "https://img/a.png"},
		Articles: []domain.Article{
			{
				URL:   "https://medium.com/@x/first",
				Title: "First",
				Links: []domain.Link{
					{Text: "ex", Href: "https://blog.example.com/a"},
					{Text: "pic", Href: "https://images.unsplash.com/photo"},
					{Text: "second", Href: "https://medium.com/@x/second"},
				},
			},
			{
				URL:   "https://medium.com/@x/second",
				Title: "Second",
				Links: []domain.Link{{Text: "ex2", Href: "https://blog.example.com/b"}},
			},
		},
	}
}

func newTestService(t *testing.T, provider interfaces.CorpusProvider, cfg Config) (*Service, *mockLogger, *mockMetrics) {
	t.Helper()
	logger := newMockLogger()
	metrics := newMockMetrics()
	svc, err := NewService(interfaces.Dependencies{Logger: logger, Metrics: metrics}, provider, cfg)
	require.NoError(t, err)
	return svc, logger, metrics
}

func TestService_Generate(t *testing.T) {
	var gotUser string
	var gotMax int
	provider := &mockCorpusProvider{
		loadFunc: func(ctx context.Context, username string, maxArticles int) (*domain.Corpus, error) {
			gotUser, gotMax = username, maxArticles
			return sampleCorpus(), nil
		},
	}
	svc, logger, metrics := newTestService(t, provider, Config{Workers: 2})

	doc, err := svc.Generate(context.Background(), Request{Username: "@justdataplease", MaxArticles: 5})
	require.NoError(t, err)

	assert.Equal(t, "justdataplease", gotUser)
	assert.Equal(t, 5, gotMax)
	assert.Equal(t, "justdataplease", doc.Username)
	assert.Equal(t, "bio", doc.UserProfile)
	assert.Len(t, doc.Nodes, 3)
	assert.Len(t, doc.Edges, 3)
	assert.Equal(t, 1, doc.Stats.Dropped["excluded"])

	assert.Equal(t, 1, metrics.builds)
	assert.Equal(t, 3, metrics.nodes)
	assert.Equal(t, 3, metrics.edges)
	assert.Equal(t, 1, metrics.dropped["excluded"])
	assert.Equal(t, 1, logger.count("info"))
}

func TestService_Generate_Isolate(t *testing.T) {
	provider := &mockCorpusProvider{
		loadFunc: func(ctx context.Context, username string, maxArticles int) (*domain.Corpus, error) {
			return sampleCorpus(), nil
		},
	}
	svc, _, metrics := newTestService(t, provider, Config{})

	doc, err := svc.Generate(context.Background(), Request{Username: "x", Isolate: true})
	require.NoError(t, err)

	assert.True(t, doc.Isolate)
	assert.Equal(t, 2, doc.Stats.Domains)
	assert.True(t, metrics.isolate)
}

func TestService_Generate_Validation(t *testing.T) {
	svc, _, _ := newTestService(t, &mockCorpusProvider{}, Config{})

	_, err := svc.Generate(context.Background(), Request{Username: " "})
	assert.True(t, coreerrors.IsValidation(err))

	_, err = svc.Generate(context.Background(), Request{Username: "x", MaxArticles: -2})
	assert.True(t, coreerrors.IsValidation(err))
}

func TestService_Generate_ProviderError(t *testing.T) {
	provider := &mockCorpusProvider{
		loadFunc: func(ctx context.Context, username string, maxArticles int) (*domain.Corpus, error) {
			return nil, &coreerrors.NotFoundError{Resource: "user feed", ID: username}
		},
	}
	svc, logger, metrics := newTestService(t, provider, Config{})

	_, err := svc.Generate(context.Background(), Request{Username: "ghost"})
	assert.True(t, coreerrors.IsNotFound(err))
	assert.Equal(t, 1, logger.count("error"))
	assert.Equal(t, 0, metrics.builds)
}

func TestService_Generate_NoProvider(t *testing.T) {
	svc, _, _ := newTestService(t, nil, Config{})
	_, err := svc.Generate(context.Background(), Request{Username: "x"})
	assert.True(t, errors.Is(err, errNoCorpusProvider))
}

func TestService_FromCorpus_RequestExclusions(t *testing.T) {
	svc, _, _ := newTestService(t, nil, Config{})

	// excluding the blog instead of the image host
	doc, err := svc.FromCorpus(context.Background(), sampleCorpus(), Options{Exclusions: []string{`example\.com`}})
	require.NoError(t, err)

	assert.Equal(t, 2, doc.Stats.Dropped["excluded"])
	assert.Equal(t, 1, doc.Stats.Domains)
	assert.Equal(t, "images.unsplash.com", doc.Nodes[2].Domain)
}

func TestService_FromCorpus_InvalidExclusion(t *testing.T) {
	svc, _, _ := newTestService(t, nil, Config{})

	_, err := svc.FromCorpus(context.Background(), sampleCorpus(), Options{Exclusions: []string{"("}})
	assert.True(t, coreerrors.IsValidation(err))
}

func TestNewService_InvalidDefaultExclusions(t *testing.T) {
	_, err := NewService(interfaces.Dependencies{Logger: newMockLogger()}, nil, Config{Exclusions: []string{"[unclosed"}})
	assert.True(t, coreerrors.IsValidation(err))
}

func TestService_FromCorpus_ConfiguredExclusions(t *testing.T) {
	svc, _, _ := newTestService(t, nil, Config{Exclusions: []string{"blog"}})

	doc, err := svc.FromCorpus(context.Background(), sampleCorpus(), Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Stats.Dropped["excluded"])
}

func TestService_FromCorpus_SlugCollisionWarns(t *testing.T) {
	svc, logger, _ := newTestService(t, nil, Config{})

	c := &domain.Corpus{Articles: []domain.Article{
		{URL: "https://medium.com/@a/same-slug", Title: "A"},
		{URL: "https://medium.com/@b/same-slug", Title: "B"},
	}}

	doc, err := svc.FromCorpus(context.Background(), c, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Stats.Collisions)
	assert.Equal(t, 1, logger.count("warn"))
}

func TestService_FromCorpus_Nil(t *testing.T) {
	svc, _, _ := newTestService(t, nil, Config{})
	_, err := svc.FromCorpus(context.Background(), nil, Options{})
	assert.True(t, coreerrors.IsValidation(err))
}

func TestService_FromCorpus_CancelledContext(t *testing.T) {
	svc, _, metrics := newTestService(t, nil, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.FromCorpus(ctx, sampleCorpus(), Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, metrics.builds)
}
