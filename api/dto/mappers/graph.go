// ABOUTME: Mappers for converting graph request DTOs into domain models
// ABOUTME: Keeps the API body shape independent of the corpus types

package mappers

import (
	"kgraph-api/api/dto/requests"
	"kgraph-api/core/domain"
)

// ToCorpus converts an inline corpus request to a domain Corpus
func ToCorpus(req *requests.BuildGraphRequest) *domain.Corpus {
	if req == nil {
		return nil
	}

	c := &domain.Corpus{
		Articles: make([]domain.Article, 0, len(req.Articles)),
	}
	if req.User != nil {
		c.User = domain.UserProfile{
			Username:    req.User.Username,
			ProfileText: req.User.ProfileText,
			AvatarURL:   req.User.AvatarURL,
		}
	}

	for _, a := range req.Articles {
		c.Articles = append(c.Articles, ToArticle(a))
	}

	return c
}

// ToArticle converts one article request to a domain Article
func ToArticle(a requests.ArticleRequest) domain.Article {
	article := domain.Article{
		URL:      a.URL,
		Title:    a.Title,
		Subtitle: a.Subtitle,
		Markdown: a.Markdown,
	}
	if len(a.Links) > 0 {
		article.Links = make([]domain.Link, len(a.Links))
		for i, l := range a.Links {
			article.Links[i] = domain.Link{Text: l.Text, Href: l.Href}
		}
	}
	return article
}
