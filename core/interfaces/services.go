// ABOUTME: Service interfaces for the corpus provider, profile scraper, publishers and metrics
// ABOUTME: Defines contracts between the graph pipeline and the packages that feed or consume it

package interfaces

import (
	"context"
	"io"
	"time"

	"kgraph-api/core/domain"
)

// CorpusProvider loads a writer's articles and profile
type CorpusProvider interface {
	// LoadUserCorpus returns up to maxArticles articles for username (0 means all)
	LoadUserCorpus(ctx context.Context, username string, maxArticles int) (*domain.Corpus, error)
}

// ProfileResult contains profile details scraped from a public profile page
type ProfileResult struct {
	Name        string
	Description string
	ImageURL    string
}

// ProfileScraper extracts author details from a profile page
type ProfileScraper interface {
	ScrapeProfile(ctx context.Context, profileURL string) (*ProfileResult, error)
}

// Publisher stores a rendered graph document under a name and returns its location
type Publisher interface {
	Publish(ctx context.Context, name string, contentType string, body io.Reader) (string, error)
}

// Metrics records pipeline statistics
type Metrics interface {
	ObserveBuild(isolate bool, nodes, edges int, duration time.Duration)
	IncDroppedLinks(reason string, count int)
	IncCorpusFetch(source string, success bool)
}
