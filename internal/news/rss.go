// Package news fetches recent headlines for a symbol. Two sources are
// available: a per-symbol RSS feed (the default) and direct scraping of
// financial news sites.
package news

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"stock-analyzer/internal/interfaces"
	"stock-analyzer/internal/types"
)

// RSSSource reads headlines from a feed URL template containing a
// {symbol} placeholder.
type RSSSource struct {
	parser  *gofeed.Parser
	feedURL string
}

var _ interfaces.NewsSource = (*RSSSource)(nil)

func NewRSSSource(feedURL string) *RSSSource {
	return &RSSSource{
		parser:  gofeed.NewParser(),
		feedURL: feedURL,
	}
}

func (s *RSSSource) Name() string { return "rss" }

func (s *RSSSource) Headlines(ctx context.Context, symbol string, limit int) ([]types.NewsItem, error) {
	feedURL := strings.ReplaceAll(s.feedURL, "{symbol}", url.QueryEscape(symbol))

	feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed for %s: %w", symbol, err)
	}

	return itemsFromFeed(feed, limit), nil
}

// itemsFromFeed converts feed entries to news items, newest first.
// Entries without a title are dropped.
func itemsFromFeed(feed *gofeed.Feed, limit int) []types.NewsItem {
	entries := make([]*gofeed.Item, len(feed.Items))
	copy(entries, feed.Items)
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].PublishedParsed == nil || entries[j].PublishedParsed == nil {
			return false
		}
		return entries[i].PublishedParsed.After(*entries[j].PublishedParsed)
	})

	items := make([]types.NewsItem, 0, limit)
	for _, entry := range entries {
		if len(items) >= limit {
			break
		}

		title, publisher := titleAndPublisher(entry)
		if title == "" {
			continue
		}

		items = append(items, types.NewsItem{Title: title, Publisher: publisher})
	}

	return items
}

// titleAndPublisher extracts the headline and the outlet behind it.
// Aggregator feeds carry no author and instead suffix the outlet onto
// the title ("TCS wins large deal - Reuters"); that suffix moves into
// the publisher field.
func titleAndPublisher(entry *gofeed.Item) (string, *string) {
	title := strings.TrimSpace(stripHTML(entry.Title))

	if entry.Author != nil && entry.Author.Name != "" {
		name := entry.Author.Name
		return title, &name
	}

	if idx := strings.LastIndex(title, " - "); idx > 0 {
		outlet := strings.TrimSpace(title[idx+3:])
		head := strings.TrimSpace(title[:idx])
		if outlet != "" && len(outlet) <= 40 && head != "" {
			return head, &outlet
		}
	}

	return title, nil
}

// stripHTML flattens any markup a feed smuggles into its titles.
func stripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}
