package feed

import (
	"testing"
	"time"

	"github.com/avilkin/blog-service/internal/models"
	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	t.Parallel()

	now := time.Now()
	posts := []models.Post{
		{ID: 2, Title: "Second", Summary: "Newer post", AuthorUsername: "alice", CreatedAt: now},
		{ID: 1, Title: "First", Summary: "Older post", AuthorUsername: "bob", CreatedAt: now.Add(-time.Hour)},
	}

	out, err := Render(posts, "https://blog.example.com")
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	items := doc.FindElements("//channel/item")
	require.Len(t, items, 2)
	assert.Equal(t, "Second", items[0].FindElement("./title").Text())
	assert.Equal(t, "https://blog.example.com/post/2", items[0].FindElement("./link").Text())
	assert.Equal(t, "alice", items[0].FindElement("./author").Text())
	assert.Equal(t, "First", items[1].FindElement("./title").Text())

	rss := doc.FindElement("/rss")
	require.NotNil(t, rss)
	assert.Equal(t, "2.0", rss.SelectAttrValue("version", ""))
}

func TestRender_Empty(t *testing.T) {
	t.Parallel()

	out, err := Render(nil, "https://blog.example.com")
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	assert.Empty(t, doc.FindElements("//channel/item"))
	assert.NotNil(t, doc.FindElement("//channel/title"))
}
