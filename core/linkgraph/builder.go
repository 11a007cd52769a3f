// ABOUTME: Graph builder folds a corpus into deduplicated article/domain nodes and citation edges
// ABOUTME: Classifies links concurrently, then merges them in corpus order so ids stay reproducible

package linkgraph

import (
	"context"
	"runtime"
	"sync"

	"kgraph-api/core/domain"
)

// Options controls a build
type Options struct {
	// Isolate scopes domain deduplication to a single article
	Isolate bool

	// Workers bounds concurrent link classification
	Workers int
}

// DefaultOptions returns global dedup with one worker per CPU
func DefaultOptions() Options {
	return Options{
		Isolate: false,
		Workers: runtime.NumCPU(),
	}
}

// Option is a functional option for configuring a build
type Option func(*Options)

// WithIsolate enables or disables per-article domain deduplication
func WithIsolate(enabled bool) Option {
	return func(o *Options) {
		o.Isolate = enabled
	}
}

// WithWorkers sets the classification concurrency
func WithWorkers(n int) Option {
	return func(o *Options) {
		o.Workers = n
	}
}

// Result is the immutable outcome of a build
type Result struct {
	// Articles are the article nodes, ids 1..N in corpus order
	Articles []*domain.ArticleNode

	// Domains are the domain nodes in id allocation order
	Domains []*domain.DomainNode

	// Edges are unique, loop-free citations in insertion order
	Edges []domain.Edge

	// Dropped counts links that produced nothing, by reason
	Dropped map[DropReason]int

	// Collisions lists articles whose slug replaced an earlier article's
	Collisions []SlugCollision

	// Isolate records the dedup scope the result was built with
	Isolate bool
}

// Nodes returns article nodes followed by domain nodes
func (r *Result) Nodes() []domain.Node {
	nodes := make([]domain.Node, 0, len(r.Articles)+len(r.Domains))
	for _, a := range r.Articles {
		nodes = append(nodes, a)
	}
	for _, d := range r.Domains {
		nodes = append(nodes, d)
	}
	return nodes
}

// Builder turns corpora into graphs. Every Build call owns its own state.
type Builder struct {
	classifier *Classifier
	opts       Options
}

// NewBuilder creates a builder; a nil classifier uses the default exclusion policy
func NewBuilder(classifier *Classifier, opts ...Option) *Builder {
	if classifier == nil {
		classifier = NewClassifier(nil)
	}

	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.Workers <= 0 {
		options.Workers = 1
	}

	return &Builder{
		classifier: classifier,
		opts:       options,
	}
}

// Options returns the builder configuration
func (b *Builder) Options() Options {
	return b.opts
}

// Build runs one pass over articles and returns the graph
func (b *Builder) Build(ctx context.Context, articles []domain.Article) (*Result, error) {
	index, collisions := NewSlugIndex(articles)

	verdicts, err := b.classifyAll(ctx, articles, index)
	if err != nil {
		return nil, err
	}

	state := newBuildState(b.opts.Isolate, len(articles))
	for i, article := range articles {
		state.addArticle(i+1, article)
	}
	for i := range articles {
		state.foldArticle(i+1, verdicts[i])
	}

	result := state.result()
	result.Collisions = collisions
	return result, nil
}

// classifyAll classifies each article's links; results are stored by article position
func (b *Builder) classifyAll(ctx context.Context, articles []domain.Article, index SlugIndex) ([][]Classification, error) {
	verdicts := make([][]Classification, len(articles))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, b.opts.Workers)

	for i := range articles {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}

		wg.Add(1)
		semaphore <- struct{}{}
		go func(pos int) {
			defer wg.Done()
			defer func() { <-semaphore }()

			links := articles[pos].Links
			out := make([]Classification, len(links))
			for j, link := range links {
				out[j] = b.classifier.Classify(link, index)
			}
			verdicts[pos] = out
		}(i)
	}

	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return verdicts, nil
}

// buildState is the working state of a single fold
type buildState struct {
	isolate bool

	articles     []*domain.ArticleNode
	domains      []*domain.DomainNode
	domainByID   map[int]*domain.DomainNode
	domainIndex  map[string]int
	nextDomainID int

	edgeIndex map[domain.EdgeKey]struct{}
	edges     []domain.Edge

	dropped map[DropReason]int
}

func newBuildState(isolate bool, articleCount int) *buildState {
	return &buildState{
		isolate:      isolate,
		articles:     make([]*domain.ArticleNode, 0, articleCount),
		domainByID:   make(map[int]*domain.DomainNode),
		domainIndex:  make(map[string]int),
		nextDomainID: domain.FirstDomainID,
		edgeIndex:    make(map[domain.EdgeKey]struct{}),
		dropped:      make(map[DropReason]int),
	}
}

func (s *buildState) addArticle(id int, article domain.Article) {
	slug, _ := SlugOf(article.URL)
	s.articles = append(s.articles, &domain.ArticleNode{
		ID:       id,
		Title:    article.Title,
		Subtitle: article.Subtitle,
		URL:      article.URL,
		Slug:     slug,
	})
}

func (s *buildState) foldArticle(articleID int, verdicts []Classification) {
	if s.isolate {
		s.domainIndex = make(map[string]int)
	}

	for _, v := range verdicts {
		switch v.Kind {
		case TargetDropped:
			s.dropped[v.Reason]++

		case TargetArticle:
			s.addEdge(v.ArticleID, articleID, domain.EdgeKnown)

		case TargetDomain:
			if id, ok := s.domainIndex[v.Domain]; ok {
				s.domainByID[id].Merge(v.Descriptor)
				// repeat hits inside one article add no edge in isolate mode
				if s.isolate {
					continue
				}
				s.addEdge(id, articleID, domain.EdgeUnknown)
				continue
			}

			node := domain.NewDomainNode(s.nextDomainID, v.Domain, v.Descriptor)
			node.Description = v.Text
			s.nextDomainID++
			s.domains = append(s.domains, node)
			s.domainByID[node.ID] = node
			s.domainIndex[v.Domain] = node.ID
			s.addEdge(node.ID, articleID, domain.EdgeUnknown)
		}
	}
}

func (s *buildState) addEdge(source, target int, color domain.EdgeColor) {
	edge := domain.Edge{From: source, To: target, Color: color}
	if edge.IsSelfLoop() {
		return
	}
	key := edge.Key()
	if _, exists := s.edgeIndex[key]; exists {
		return
	}
	s.edgeIndex[key] = struct{}{}
	s.edges = append(s.edges, edge)
}

func (s *buildState) result() *Result {
	return &Result{
		Articles: s.articles,
		Domains:  s.domains,
		Edges:    s.edges,
		Dropped:  s.dropped,
		Isolate:  s.isolate,
	}
}
