// ABOUTME: Profile scraper that reads author bio and avatar from a public profile page
// ABOUTME: Uses colly to collect Open Graph and description meta tags

package corpus

import (
	"context"
	"strings"
	"time"

	coreerrors "kgraph-api/core/errors"
	"kgraph-api/core/interfaces"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"
)

const profileUserAgent = "KGraphAPI/1.0 (+profile)"

// CollyProfileScraper implements interfaces.ProfileScraper
type CollyProfileScraper struct {
	logger  interfaces.Logger
	timeout time.Duration
}

// NewProfileScraper creates a scraper with the given request timeout
func NewProfileScraper(logger interfaces.Logger, timeout time.Duration) *CollyProfileScraper {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &CollyProfileScraper{
		logger:  logger,
		timeout: timeout,
	}
}

// ScrapeProfile visits profileURL and returns its title, description and image
func (s *CollyProfileScraper) ScrapeProfile(ctx context.Context, profileURL string) (*interfaces.ProfileResult, error) {
	if profileURL == "" {
		return nil, &coreerrors.ValidationError{Field: "profile_url", Message: "profile URL cannot be empty"}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := colly.NewCollector(
		colly.UserAgent(profileUserAgent),
		colly.MaxBodySize(2*1024*1024),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(s.timeout)

	result := &interfaces.ProfileResult{}
	var status int

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
		}
	})

	c.OnHTML("meta", func(e *colly.HTMLElement) {
		content := strings.TrimSpace(e.Attr("content"))
		if content == "" {
			return
		}

		switch e.Attr("property") {
		case "og:title":
			if result.Name == "" {
				result.Name = content
			}
		case "og:description":
			if result.Description == "" {
				result.Description = content
			}
		case "og:image":
			if result.ImageURL == "" {
				result.ImageURL = e.Request.AbsoluteURL(content)
			}
		}

		if e.Attr("name") == "twitter:image" && result.ImageURL == "" {
			result.ImageURL = e.Request.AbsoluteURL(content)
		}
	})

	// plain meta fallbacks
	c.OnHTML("head", func(e *colly.HTMLElement) {
		if result.Name == "" {
			result.Name = strings.TrimSpace(e.DOM.Find("title").First().Text())
		}
		if result.Description == "" {
			e.DOM.Find("meta[name='description']").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
				if content := strings.TrimSpace(sel.AttrOr("content", "")); content != "" {
					result.Description = content
					return false
				}
				return true
			})
		}
	})

	c.OnError(func(r *colly.Response, err error) {
		status = r.StatusCode
		if s.logger != nil {
			s.logger.Debug("Error visiting profile page", map[string]interface{}{
				"url":    profileURL,
				"status": r.StatusCode,
				"error":  err.Error(),
			})
		}
	})

	if err := c.Visit(profileURL); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if status == 404 {
			return nil, &coreerrors.NotFoundError{Resource: "profile", ID: profileURL}
		}
		if status != 0 {
			return nil, &coreerrors.ExternalAPIError{API: "profile", StatusCode: status, Message: err.Error()}
		}
		return nil, coreerrors.WrapError(err, "failed to scrape profile")
	}

	return result, nil
}
