package mappers

import (
	"testing"

	"kgraph-api/api/dto/requests"
	"kgraph-api/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCorpus(t *testing.T) {
	req := &requests.BuildGraphRequest{
		User: &requests.UserRequest{Username: "alice", ProfileText: "writes", AvatarURL: "https://img/a.png"},
		Articles: []requests.ArticleRequest{
			{
				URL:   "https://medium.com/@alice/first",
				Title: "First",
				Links: []requests.LinkRequest{{Text: "go", Href: "https://go.dev/doc"}},
			},
			{URL: "https://medium.com/@alice/second", Markdown: "[x](https://x.org)"},
		},
	}

	c := ToCorpus(req)
	require.NotNil(t, c)

	assert.Equal(t, domain.UserProfile{Username: "alice", ProfileText: "writes", AvatarURL: "https://img/a.png"}, c.User)
	require.Len(t, c.Articles, 2)
	assert.Equal(t, "First", c.Articles[0].Title)
	assert.Equal(t, []domain.Link{{Text: "go", Href: "https://go.dev/doc"}}, c.Articles[0].Links)
	assert.Nil(t, c.Articles[1].Links)
	assert.Equal(t, "[x](https://x.org)", c.Articles[1].Markdown)
}

func TestToCorpus_Nil(t *testing.T) {
	assert.Nil(t, ToCorpus(nil))
}

func TestToCorpus_NoUser(t *testing.T) {
	c := ToCorpus(&requests.BuildGraphRequest{})
	require.NotNil(t, c)
	assert.Empty(t, c.User)
	assert.Empty(t, c.Articles)
}
