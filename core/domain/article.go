// ABOUTME: Article domain model represents one piece of a writer's corpus with its outbound links
// ABOUTME: Corpus bundles the ordered articles with the author profile consumed by the graph builder

package domain

import (
	"errors"
	"net/url"
)

// Link is a single outbound hyperlink found in an article
type Link struct {
	// Text is the anchor text of the link
	Text string `json:"text" yaml:"text"`

	// Href is the raw link target as found in the article
	Href string `json:"href" yaml:"href"`
}

// Descriptor returns the "text|href" form used to remember which links were merged into a node
func (l Link) Descriptor() string {
	return l.Text + "|" + l.Href
}

// Article represents a published article and the links it cites
type Article struct {
	// URL is the canonical address of the article; its last path segment is the article slug
	URL string `json:"url" yaml:"url" validate:"required,url"`

	// Title is the article headline (may be empty)
	Title string `json:"title" yaml:"title"`

	// Subtitle is the article sub-headline (may be empty)
	Subtitle string `json:"subtitle" yaml:"subtitle"`

	// Links are the outbound links in document order
	Links []Link `json:"links" yaml:"links"`

	// Markdown is optional raw markdown; links are extracted from it when Links is empty
	Markdown string `json:"markdown,omitempty" yaml:"markdown,omitempty"`
}

// Validate checks the article has a usable URL
func (a *Article) Validate() error {
	if a.URL == "" {
		return errors.New("article URL cannot be empty")
	}

	if _, err := url.Parse(a.URL); err != nil {
		return errors.New("article URL is not valid format")
	}

	return nil
}

// UserProfile is the author information shown next to the graph
type UserProfile struct {
	// Username is the handle the corpus was loaded for
	Username string `json:"username,omitempty" yaml:"username,omitempty"`

	// ProfileText is a free-form description of the author
	ProfileText string `json:"profile_text" yaml:"profile_text"`

	// AvatarURL points to the author image
	AvatarURL string `json:"avatar_url" yaml:"avatar_url"`
}

// Corpus is the ordered article list plus the author profile
type Corpus struct {
	User     UserProfile `json:"user" yaml:"user"`
	Articles []Article   `json:"articles" yaml:"articles" validate:"dive"`
}

// Truncate keeps at most limit articles; a limit of zero or less keeps everything
func (c *Corpus) Truncate(limit int) {
	if limit > 0 && len(c.Articles) > limit {
		c.Articles = c.Articles[:limit]
	}
}
