// ABOUTME: Corpus service loads a writer's articles from their public feed with caching
// ABOUTME: Extracts links per article and attaches the author profile for the graph pipeline

package corpus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
	"time"

	"kgraph-api/core/domain"
	coreerrors "kgraph-api/core/errors"
	"kgraph-api/core/interfaces"
	"kgraph-api/pkg/featureflags"
	htmlutil "kgraph-api/pkg/utils/html"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

const (
	defaultCacheTTL   = 24 * time.Hour
	defaultWorkers    = 4
	maxSubtitleLength = 140
)

// Config controls where corpora come from
type Config struct {
	// FeedBaseURL is joined with "@<username>" to form the feed URL
	FeedBaseURL string

	// ProfileBaseURL is joined with "@<username>" to form the profile page URL
	ProfileBaseURL string

	// CacheTTL is how long a loaded corpus is reused
	CacheTTL time.Duration

	// Workers bounds concurrent article processing
	Workers int
}

// DefaultConfig returns the public Medium endpoints
func DefaultConfig() Config {
	return Config{
		FeedBaseURL:    "https://medium.com/feed/",
		ProfileBaseURL: "https://medium.com/",
		CacheTTL:       defaultCacheTTL,
		Workers:        defaultWorkers,
	}
}

// Service implements interfaces.CorpusProvider
type Service struct {
	deps    interfaces.Dependencies
	cfg     Config
	profile interfaces.ProfileScraper
	flags   featureflags.Manager
}

// NewService creates a corpus service
func NewService(deps interfaces.Dependencies, cfg Config) *Service {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	return &Service{
		deps:  deps,
		cfg:   cfg,
		flags: featureflags.NewStaticManager(copyFlags(featureflags.DefaultFlags)),
	}
}

func copyFlags(in map[featureflags.FeatureFlag]bool) map[featureflags.FeatureFlag]bool {
	out := make(map[featureflags.FeatureFlag]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// SetProfileScraper sets the scraper used to enrich the author profile
func (s *Service) SetProfileScraper(scraper interfaces.ProfileScraper) {
	s.profile = scraper
}

// SetFlags replaces the feature flag manager
func (s *Service) SetFlags(flags featureflags.Manager) {
	if flags != nil {
		s.flags = flags
	}
}

// LoadUserCorpus returns up to maxArticles articles of username (0 loads every feed item)
func (s *Service) LoadUserCorpus(ctx context.Context, username string, maxArticles int) (*domain.Corpus, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" {
		return nil, &coreerrors.ValidationError{Field: "username", Message: "username cannot be empty"}
	}
	if maxArticles < 0 {
		return nil, &coreerrors.ValidationError{Field: "max_articles", Message: "must not be negative"}
	}

	key := cacheKey(username, maxArticles)
	if cached := s.getCachedCorpus(ctx, key); cached != nil {
		s.deps.Logger.Debug("Corpus cache hit", map[string]interface{}{
			"username": username,
			"articles": len(cached.Articles),
		})
		return cached, nil
	}

	feedURL := s.cfg.FeedBaseURL + "@" + url.PathEscape(username)
	feed, err := s.fetchFeed(ctx, username, feedURL)
	s.recordFetch("feed", err == nil)
	if err != nil {
		return nil, err
	}

	items := feed.Items
	if maxArticles > 0 && len(items) > maxArticles {
		items = items[:maxArticles]
	}

	corpus := &domain.Corpus{
		User:     profileFromFeed(username, feed),
		Articles: s.articlesFromItems(ctx, items),
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.enrichProfile(ctx, username, &corpus.User)

	s.deps.Logger.Info("Corpus loaded", map[string]interface{}{
		"username": username,
		"articles": len(corpus.Articles),
		"feed":     feedURL,
	})

	_ = s.cacheCorpus(ctx, key, corpus)
	return corpus, nil
}

func cacheKey(username string, maxArticles int) string {
	return fmt.Sprintf("corpus:%s:%d", username, maxArticles)
}

// fetchFeed downloads and parses the user's feed
func (s *Service) fetchFeed(ctx context.Context, username, feedURL string) (*gofeed.Feed, error) {
	if s.deps.HTTPClient == nil {
		return nil, errors.New("HTTP client not configured")
	}

	resp, err := s.deps.HTTPClient.Get(ctx, feedURL)
	if err != nil {
		return nil, coreerrors.WrapError(err, "failed to fetch feed")
	}
	defer resp.Body().Close()

	switch {
	case resp.StatusCode() == 404:
		return nil, &coreerrors.NotFoundError{Resource: "user feed", ID: username}
	case resp.StatusCode() != 200:
		return nil, &coreerrors.ExternalAPIError{
			API:        "feed",
			StatusCode: resp.StatusCode(),
			Message:    "feed returned non-200 status code",
		}
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, coreerrors.WrapError(err, "failed to read feed")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &coreerrors.ParseError{Source: feedURL, Format: "feed", Err: errors.New("empty feed content")}
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, &coreerrors.ParseError{Source: feedURL, Format: "feed", Err: err}
	}
	return feed, nil
}

// articlesFromItems converts feed items concurrently, keeping feed order
func (s *Service) articlesFromItems(ctx context.Context, items []*gofeed.Item) []domain.Article {
	results := make([]*domain.Article, len(items))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, s.cfg.Workers)

	for i, item := range items {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		semaphore <- struct{}{}
		go func(index int, item *gofeed.Item) {
			defer wg.Done()
			defer func() { <-semaphore }()
			results[index] = s.articleFromItem(ctx, item)
		}(i, item)
	}
	wg.Wait()

	articles := make([]domain.Article, 0, len(items))
	for _, a := range results {
		if a != nil {
			articles = append(articles, *a)
		}
	}
	return articles
}

// articleFromItem builds one article; items without a link are skipped
func (s *Service) articleFromItem(ctx context.Context, item *gofeed.Item) *domain.Article {
	if item == nil || strings.TrimSpace(item.Link) == "" {
		return nil
	}

	article := &domain.Article{
		URL:   strings.TrimSpace(item.Link),
		Title: strings.TrimSpace(item.Title),
	}

	body := item.Content
	summary := ""
	if body == "" {
		body = item.Description
	} else {
		summary = item.Description
	}

	if htmlutil.StripHTML(body) == "" && s.flags.IsEnabled(ctx, featureflags.ReadabilityFallback) {
		view, err := s.fetchReaderView(ctx, article.URL)
		s.recordFetch("article", err == nil)
		if err != nil {
			s.deps.Logger.Warn("Reader view fallback failed", map[string]interface{}{
				"url":   article.URL,
				"error": err.Error(),
			})
		} else {
			body = view.Content
			summary = view.Excerpt
			if article.Title == "" {
				article.Title = view.Title
			}
		}
	}

	if body != "" {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
		if err != nil {
			s.deps.Logger.Warn("Failed to parse article body", map[string]interface{}{
				"url":   article.URL,
				"error": err.Error(),
			})
		} else {
			article.Links = linksFromDocument(doc, article.URL)
			h := extractHeadings(doc, article.Title)
			if article.Title == "" {
				article.Title = h.Title
			}
			article.Subtitle = h.Subtitle
		}
	}

	if article.Subtitle == "" && summary != "" {
		article.Subtitle = htmlutil.Truncate(htmlutil.StripHTML(summary), maxSubtitleLength)
	}

	return article
}

func profileFromFeed(username string, feed *gofeed.Feed) domain.UserProfile {
	profile := domain.UserProfile{
		Username:    username,
		ProfileText: htmlutil.StripHTML(feed.Description),
	}
	if feed.Image != nil {
		profile.AvatarURL = feed.Image.URL
	}
	return profile
}

// enrichProfile overlays scraped profile details; failures only log
func (s *Service) enrichProfile(ctx context.Context, username string, profile *domain.UserProfile) {
	if s.profile == nil || !s.flags.IsEnabled(ctx, featureflags.ProfileScrape) {
		return
	}

	profileURL := s.cfg.ProfileBaseURL + "@" + url.PathEscape(username)
	result, err := s.profile.ScrapeProfile(ctx, profileURL)
	s.recordFetch("profile", err == nil)
	if err != nil {
		s.deps.Logger.Warn("Profile scrape failed", map[string]interface{}{
			"username": username,
			"url":      profileURL,
			"error":    err.Error(),
		})
		return
	}

	if result.Description != "" {
		profile.ProfileText = result.Description
	}
	if result.ImageURL != "" {
		profile.AvatarURL = result.ImageURL
	}
}

func (s *Service) recordFetch(source string, success bool) {
	if s.deps.Metrics != nil {
		s.deps.Metrics.IncCorpusFetch(source, success)
	}
}

func (s *Service) cachingEnabled(ctx context.Context) bool {
	return s.deps.Cache != nil && s.flags.IsEnabled(ctx, featureflags.CacheEnabled)
}

// getCachedCorpus returns nil on any miss or decode failure
func (s *Service) getCachedCorpus(ctx context.Context, key string) *domain.Corpus {
	if !s.cachingEnabled(ctx) {
		return nil
	}

	data, err := s.deps.Cache.Get(ctx, key)
	if err != nil || len(data) == 0 {
		return nil
	}

	var c domain.Corpus
	if err := json.Unmarshal(data, &c); err != nil {
		s.deps.Logger.Warn("Discarding undecodable cached corpus", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return nil
	}
	return &c
}

func (s *Service) cacheCorpus(ctx context.Context, key string, c *domain.Corpus) error {
	if !s.cachingEnabled(ctx) {
		return nil
	}

	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.deps.Cache.Set(ctx, key, data, s.cfg.CacheTTL)
}
