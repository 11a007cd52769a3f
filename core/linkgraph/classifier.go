// ABOUTME: Link classifier decides whether a link cites a sibling article or an external domain
// ABOUTME: Applies URL validity checks and the configurable exclusion policy before classifying

package linkgraph

import (
	"fmt"
	"regexp"
	"strings"

	coreerrors "kgraph-api/core/errors"
	"kgraph-api/core/domain"

	"github.com/go-playground/validator/v10"
)

// DefaultExclusionPatterns matches stock-image hosts and image file extensions
var DefaultExclusionPatterns = []string{
	`unsplash`,
	`shutterstock`,
	`freepi`,
	`\.png`,
	`\.jpeg`,
	`\.gif`,
	`\.jpg`,
}

// ExclusionPolicy rejects hrefs containing any of its patterns
type ExclusionPolicy struct {
	patterns []string
	re       *regexp.Regexp
}

// NewExclusionPolicy compiles the patterns into a single alternation.
// An empty pattern list excludes nothing.
func NewExclusionPolicy(patterns []string) (*ExclusionPolicy, error) {
	cleaned := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}

	policy := &ExclusionPolicy{patterns: cleaned}
	if len(cleaned) == 0 {
		return policy, nil
	}

	re, err := regexp.Compile(strings.Join(cleaned, "|"))
	if err != nil {
		return nil, &coreerrors.ValidationError{
			Field:   "exclusions",
			Message: fmt.Sprintf("invalid pattern: %v", err),
		}
	}
	policy.re = re
	return policy, nil
}

// DefaultExclusionPolicy returns the policy built from DefaultExclusionPatterns
func DefaultExclusionPolicy() *ExclusionPolicy {
	policy, err := NewExclusionPolicy(DefaultExclusionPatterns)
	if err != nil {
		panic(err)
	}
	return policy
}

// Patterns returns the configured patterns
func (p *ExclusionPolicy) Patterns() []string {
	return append([]string(nil), p.patterns...)
}

// Excludes reports whether href matches the policy anywhere in the string
func (p *ExclusionPolicy) Excludes(href string) bool {
	if p == nil || p.re == nil {
		return false
	}
	return p.re.MatchString(href)
}

// TargetKind is the outcome of classifying a link
type TargetKind int

const (
	// TargetDropped means the link produces no node and no edge
	TargetDropped TargetKind = iota

	// TargetArticle means the link cites a corpus article
	TargetArticle

	// TargetDomain means the link cites an external network location
	TargetDomain
)

// DropReason explains why a link was dropped
type DropReason string

const (
	DropEmpty    DropReason = "empty"
	DropInvalid  DropReason = "invalid"
	DropExcluded DropReason = "excluded"
)

// Classification is the classifier's verdict for one link
type Classification struct {
	Kind       TargetKind
	ArticleID  int
	Domain     string
	Text       string
	Descriptor string
	Reason     DropReason
}

// SlugIndex maps article slugs to article ids
type SlugIndex map[string]int

// SlugCollision records two articles that share a slug; the later article wins
type SlugCollision struct {
	Slug       string
	ArticleID  int
	ReplacedID int
}

// NewSlugIndex indexes every article's own URL, ids being 1-based corpus positions
func NewSlugIndex(articles []domain.Article) (SlugIndex, []SlugCollision) {
	index := make(SlugIndex, len(articles))
	var collisions []SlugCollision

	for i, article := range articles {
		slug, ok := SlugOf(article.URL)
		if !ok {
			continue
		}
		id := i + 1
		if prev, exists := index[slug]; exists {
			collisions = append(collisions, SlugCollision{Slug: slug, ArticleID: id, ReplacedID: prev})
		}
		index[slug] = id
	}

	return index, collisions
}

// Classifier filters and classifies links. It holds no per-build state and is safe
// for concurrent use.
type Classifier struct {
	policy   *ExclusionPolicy
	validate *validator.Validate
}

// NewClassifier creates a classifier; a nil policy falls back to the default patterns
func NewClassifier(policy *ExclusionPolicy) *Classifier {
	if policy == nil {
		policy = DefaultExclusionPolicy()
	}
	return &Classifier{
		policy:   policy,
		validate: validator.New(),
	}
}

// Policy returns the exclusion policy in use
func (c *Classifier) Policy() *ExclusionPolicy {
	return c.policy
}

// Classify decides where link points, given the article slug index
func (c *Classifier) Classify(link domain.Link, index SlugIndex) Classification {
	href := link.Href
	if href == "" {
		return Classification{Kind: TargetDropped, Reason: DropEmpty}
	}
	if err := c.validate.Var(href, "http_url"); err != nil {
		return Classification{Kind: TargetDropped, Reason: DropInvalid}
	}
	if c.policy.Excludes(href) {
		return Classification{Kind: TargetDropped, Reason: DropExcluded}
	}

	descriptor := link.Descriptor()
	if slug, ok := SlugOf(href); ok {
		if id, found := index[slug]; found {
			return Classification{Kind: TargetArticle, ArticleID: id, Text: link.Text, Descriptor: descriptor}
		}
	}

	return Classification{
		Kind:       TargetDomain,
		Domain:     NetworkLocationOf(href),
		Text:       link.Text,
		Descriptor: descriptor,
	}
}
