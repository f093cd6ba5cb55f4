package collector

import (
	"time"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"
	"github.com/pkg/errors"

	"github.com/driftline/driftline/model"
	"github.com/driftline/driftline/normalizer"
	Logger "github.com/driftline/driftline/utils/log"
)

// RSSCollector maps feed items into posts. It treats the feed author
// as the posting user, which is good enough for the analysis stages
// that only need a stable per-user key.
type RSSCollector struct {
	FeedUrl  string
	Platform string

	parser *gofeed.Parser
	now    func() time.Time
}

func NewRSSCollector(feedUrl string) *RSSCollector {
	return &RSSCollector{
		FeedUrl:  feedUrl,
		Platform: "rss",
		parser:   gofeed.NewParser(),
		now:      time.Now,
	}
}

func (r *RSSCollector) CollectAndPublish(sink CollectedPostSink) error {
	feed, err := r.parser.ParseURL(r.FeedUrl)
	if err != nil {
		return errors.Wrap(err, "fail to parse rss feed "+r.FeedUrl)
	}

	posts := make([]model.Post, 0, len(feed.Items))
	for _, item := range feed.Items {
		posts = append(posts, r.itemToPost(feed, item))
	}

	Logger.Log.Infof("collected %d posts from feed %s", len(posts), r.FeedUrl)
	return sink.Push(posts)
}

func (r *RSSCollector) itemToPost(feed *gofeed.Feed, item *gofeed.Item) model.Post {
	id := item.GUID
	if id == "" {
		id = uuid.New().String()
	}

	author := feed.Title
	if item.Author != nil && item.Author.Name != "" {
		author = item.Author.Name
	}

	content := item.Title
	if item.Description != "" {
		content = content + " " + item.Description
	}

	normalized := normalizer.Normalize(content)
	return model.Post{
		Id:        id,
		Platform:  r.Platform,
		UserId:    author,
		Username:  author,
		Content:   content,
		CreatedAt: r.itemTime(item),
		Hashtags:  normalized.Hashtags,
		Mentions:  normalized.Mentions,
		Language:  normalized.Language,
	}
}

// itemTime coerces whatever timestamp shape the feed carries into a
// usable time, falling back to now rather than dropping the item.
func (r *RSSCollector) itemTime(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.Published != "" {
		if ts, err := dateparse.ParseAny(item.Published); err == nil {
			return ts
		}
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	return r.now()
}
