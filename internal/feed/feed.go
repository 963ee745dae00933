package feed

import (
	"fmt"
	"time"

	"github.com/avilkin/blog-service/internal/models"
	"github.com/beevik/etree"
)

// Render builds an RSS 2.0 document for the given posts. baseURL is the
// externally reachable site root used in item links; posts are expected to
// arrive newest-first.
func Render(posts []models.Post, baseURL string) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")

	channel := rss.CreateElement("channel")
	channel.CreateElement("title").SetText("Blog")
	channel.CreateElement("link").SetText(baseURL)
	channel.CreateElement("description").SetText("Latest posts")
	channel.CreateElement("lastBuildDate").SetText(time.Now().Format(time.RFC1123Z))

	for _, post := range posts {
		item := channel.CreateElement("item")
		item.CreateElement("title").SetText(post.Title)
		item.CreateElement("link").SetText(fmt.Sprintf("%s/post/%d", baseURL, post.ID))
		item.CreateElement("guid").SetText(fmt.Sprintf("%s/post/%d", baseURL, post.ID))
		item.CreateElement("description").SetText(post.Summary)
		item.CreateElement("author").SetText(post.AuthorUsername)
		item.CreateElement("pubDate").SetText(post.CreatedAt.Format(time.RFC1123Z))
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize feed: %w", err)
	}
	return out, nil
}
