// ABOUTME: Pipeline service turns a username or an in-memory corpus into a graph document
// ABOUTME: Wires the corpus provider, link classifier, graph builder and exporter together

package pipeline

import (
	"context"
	"strings"
	"time"

	"kgraph-api/core/domain"
	coreerrors "kgraph-api/core/errors"
	"kgraph-api/core/export"
	"kgraph-api/core/interfaces"
	"kgraph-api/core/linkgraph"
)

// Config holds build defaults
type Config struct {
	// Workers bounds concurrent link classification
	Workers int

	// Exclusions replaces the built-in exclusion patterns when non-empty
	Exclusions []string
}

// Request asks for the graph of one user
type Request struct {
	Username    string
	Isolate     bool
	MaxArticles int
	Exclusions  []string
}

// Options controls a build over an existing corpus
type Options struct {
	Isolate    bool
	Exclusions []string
}

// Service generates graph documents
type Service struct {
	deps     interfaces.Dependencies
	corpus   interfaces.CorpusProvider
	cfg      Config
	defaults *linkgraph.ExclusionPolicy
}

// NewService creates a pipeline service. Invalid default exclusions are reported here
// rather than on every build.
func NewService(deps interfaces.Dependencies, corpus interfaces.CorpusProvider, cfg Config) (*Service, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = linkgraph.DefaultOptions().Workers
	}

	defaults := linkgraph.DefaultExclusionPolicy()
	if len(cfg.Exclusions) > 0 {
		policy, err := linkgraph.NewExclusionPolicy(cfg.Exclusions)
		if err != nil {
			return nil, err
		}
		defaults = policy
	}

	return &Service{
		deps:     deps,
		corpus:   corpus,
		cfg:      cfg,
		defaults: defaults,
	}, nil
}

// Generate loads the user's corpus and builds its graph
func (s *Service) Generate(ctx context.Context, req Request) (*export.Document, error) {
	username := strings.TrimPrefix(strings.TrimSpace(req.Username), "@")
	if username == "" {
		return nil, &coreerrors.ValidationError{Field: "username", Message: "username cannot be empty"}
	}
	if req.MaxArticles < 0 {
		return nil, &coreerrors.ValidationError{Field: "limit", Message: "must not be negative"}
	}
	if s.corpus == nil {
		return nil, coreerrors.WrapError(errNoCorpusProvider, "cannot generate graph")
	}

	c, err := s.corpus.LoadUserCorpus(ctx, username, req.MaxArticles)
	if err != nil {
		s.deps.Logger.Error("Failed to load corpus", map[string]interface{}{
			"username": username,
			"error":    err.Error(),
		})
		return nil, err
	}
	if c.User.Username == "" {
		c.User.Username = username
	}

	return s.FromCorpus(ctx, c, Options{Isolate: req.Isolate, Exclusions: req.Exclusions})
}

// FromCorpus builds the graph of an already loaded corpus
func (s *Service) FromCorpus(ctx context.Context, c *domain.Corpus, opts Options) (*export.Document, error) {
	if c == nil {
		return nil, &coreerrors.ValidationError{Field: "corpus", Message: "corpus cannot be nil"}
	}

	policy := s.defaults
	if len(opts.Exclusions) > 0 {
		p, err := linkgraph.NewExclusionPolicy(opts.Exclusions)
		if err != nil {
			return nil, err
		}
		policy = p
	}

	builder := linkgraph.NewBuilder(
		linkgraph.NewClassifier(policy),
		linkgraph.WithIsolate(opts.Isolate),
		linkgraph.WithWorkers(s.cfg.Workers),
	)

	start := time.Now()
	result, err := builder.Build(ctx, c.Articles)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	for _, col := range result.Collisions {
		s.deps.Logger.Warn("Articles share a slug, keeping the later one", map[string]interface{}{
			"slug":        col.Slug,
			"article_id":  col.ArticleID,
			"replaced_id": col.ReplacedID,
		})
	}

	for reason, n := range result.Dropped {
		if s.deps.Metrics != nil {
			s.deps.Metrics.IncDroppedLinks(string(reason), n)
		}
	}

	nodes := len(result.Articles) + len(result.Domains)
	if s.deps.Metrics != nil {
		s.deps.Metrics.ObserveBuild(opts.Isolate, nodes, len(result.Edges), elapsed)
	}

	s.deps.Logger.Info("Graph built", map[string]interface{}{
		"username": c.User.Username,
		"isolate":  opts.Isolate,
		"articles": len(result.Articles),
		"domains":  len(result.Domains),
		"edges":    len(result.Edges),
		"dropped":  result.Dropped,
		"duration": elapsed.String(),
	})

	return export.NewDocument(result, c.User), nil
}
