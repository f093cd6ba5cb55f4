package collector

import (
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
)

func TestItemToPost(t *testing.T) {
	r := NewRSSCollector("https://example.com/feed.xml")
	published := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	feed := &gofeed.Feed{Title: "Example Wire"}
	item := &gofeed.Item{
		GUID:            "guid-1",
		Title:           "Big story #Breaking",
		Description:     "details from @reporter",
		Author:          &gofeed.Person{Name: "newsdesk"},
		PublishedParsed: &published,
	}

	post := r.itemToPost(feed, item)
	assert.Equal(t, "guid-1", post.Id)
	assert.Equal(t, "rss", post.Platform)
	assert.Equal(t, "newsdesk", post.UserId)
	assert.Equal(t, published, post.CreatedAt)
	assert.Equal(t, []string{"#breaking"}, post.Hashtags)
	assert.Equal(t, []string{"@reporter"}, post.Mentions)
}

func TestItemToPostFallbacks(t *testing.T) {
	r := NewRSSCollector("https://example.com/feed.xml")
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	feed := &gofeed.Feed{Title: "Example Wire"}

	// No GUID, no author, parsable string timestamp.
	post := r.itemToPost(feed, &gofeed.Item{
		Title:     "untitled",
		Published: "Mon, 02 Jan 2006 15:04:05 MST",
	})
	assert.NotEmpty(t, post.Id)
	assert.Equal(t, "Example Wire", post.UserId)
	assert.Equal(t, 2006, post.CreatedAt.Year())

	// Malformed timestamp coerces to now instead of failing.
	post = r.itemToPost(feed, &gofeed.Item{Title: "untitled", Published: "not a date"})
	assert.Equal(t, fixed, post.CreatedAt)
}
