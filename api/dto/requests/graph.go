// ABOUTME: Request DTOs for graph endpoints
// ABOUTME: Carries an inline corpus plus build options for POST /graph

package requests

import "strings"

// LinkRequest is one outbound link of an article
type LinkRequest struct {
	Text string `json:"text,omitempty" doc:"Anchor text"`
	Href string `json:"href" doc:"Raw link target"`
}

// ArticleRequest is one article of an inline corpus
type ArticleRequest struct {
	URL      string        `json:"url" minLength:"1" doc:"Canonical article URL; its last path segment is the slug"`
	Title    string        `json:"title,omitempty" doc:"Article headline"`
	Subtitle string        `json:"subtitle,omitempty" doc:"Article sub-headline"`
	Links    []LinkRequest `json:"links,omitempty" doc:"Outbound links in document order"`
	Markdown string        `json:"markdown,omitempty" doc:"Markdown body, used for link extraction when links is empty"`
}

// UserRequest describes the author of an inline corpus
type UserRequest struct {
	Username    string `json:"username,omitempty" doc:"Author handle"`
	ProfileText string `json:"profile_text,omitempty" doc:"Author description"`
	AvatarURL   string `json:"avatar_url,omitempty" doc:"Author image URL"`
}

// BuildGraphRequest is the body of POST /graph
type BuildGraphRequest struct {
	Articles   []ArticleRequest `json:"articles" maxItems:"5000" doc:"Articles in corpus order"`
	User       *UserRequest     `json:"user,omitempty" doc:"Author profile shown with the graph"`
	Isolate    bool             `json:"isolate,omitempty" doc:"Deduplicate domains per article instead of globally"`
	Exclusions []string         `json:"exclusions,omitempty" maxItems:"100" doc:"Regular expressions for links to ignore; empty uses the server defaults"`
}

// ApplyDefaults trims whitespace from the user handle and drops blank exclusion patterns
func (r *BuildGraphRequest) ApplyDefaults() {
	if r.User != nil {
		r.User.Username = strings.TrimPrefix(strings.TrimSpace(r.User.Username), "@")
	}

	patterns := r.Exclusions[:0]
	for _, p := range r.Exclusions {
		if strings.TrimSpace(p) != "" {
			patterns = append(patterns, p)
		}
	}
	r.Exclusions = patterns
}
