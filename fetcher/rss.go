// Package fetcher implements topic.Fetcher over RSS and Atom feeds.
package fetcher

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/sat8bit/roundtable/topic"
)

const summaryLen = 200

type RSSFetcher struct {
	url   string
	limit int
}

// NewRSSFetcher creates a fetcher for url. A limit of 0 or less keeps every item.
func NewRSSFetcher(url string, limit int) *RSSFetcher {
	return &RSSFetcher{
		url:   url,
		limit: limit,
	}
}

// Fetch downloads the feed and returns its newest items first.
func (f *RSSFetcher) Fetch(ctx context.Context) ([]*topic.Topic, error) {
	feed, err := gofeed.NewParser().ParseURLWithContext(f.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed from %s: %w", f.url, err)
	}
	return toTopics(feed, f.limit), nil
}

func toTopics(feed *gofeed.Feed, limit int) []*topic.Topic {
	items := append([]*gofeed.Item(nil), feed.Items...)
	// Undated items keep their feed order behind the dated ones.
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].PublishedParsed, items[j].PublishedParsed
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return a.After(*b)
	})

	var topics []*topic.Topic
	for i, item := range items {
		if limit > 0 && i >= limit {
			break
		}
		topics = append(topics, &topic.Topic{
			Title:     strings.TrimSpace(item.Title),
			Summary:   truncateString(strings.TrimSpace(stripHTML(item.Description)), summaryLen),
			SourceURL: item.Link,
		})
	}
	return topics
}

var htmlRegex = regexp.MustCompile("<[^>]*>")

func stripHTML(s string) string {
	return htmlRegex.ReplaceAllString(s, "")
}

// truncateString cuts s to maxLen runes.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return s
}

var _ topic.Fetcher = (*RSSFetcher)(nil)
