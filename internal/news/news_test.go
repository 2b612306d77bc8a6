package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

func TestTitleAndPublisher(t *testing.T) {
	when := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		entry     *gofeed.Item
		wantTitle string
		wantPub   string
	}{
		{
			name:      "author wins over suffix",
			entry:     &gofeed.Item{Title: "Reliance beats estimates - Reuters", Author: &gofeed.Person{Name: "Moneycontrol"}, PublishedParsed: &when},
			wantTitle: "Reliance beats estimates - Reuters",
			wantPub:   "Moneycontrol",
		},
		{
			name:      "aggregator suffix becomes publisher",
			entry:     &gofeed.Item{Title: "TCS wins large deal - Reuters", PublishedParsed: &when},
			wantTitle: "TCS wins large deal",
			wantPub:   "Reuters",
		},
		{
			name:      "plain title has no publisher",
			entry:     &gofeed.Item{Title: "Quarterly results announced", PublishedParsed: &when},
			wantTitle: "Quarterly results announced",
			wantPub:   "",
		},
		{
			name:      "long tail is kept as part of the title",
			entry:     &gofeed.Item{Title: "Margins shrink - analysts debate whether the trend continues into the next fiscal year", PublishedParsed: &when},
			wantTitle: "Margins shrink - analysts debate whether the trend continues into the next fiscal year",
			wantPub:   "",
		},
		{
			name:      "html markup is flattened",
			entry:     &gofeed.Item{Title: "<b>Q1 &amp; Q2 results out</b>", PublishedParsed: &when},
			wantTitle: "Q1 & Q2 results out",
			wantPub:   "",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			title, pub := titleAndPublisher(tc.entry)
			if title != tc.wantTitle {
				t.Errorf("title = %q, want %q", title, tc.wantTitle)
			}
			switch {
			case tc.wantPub == "" && pub != nil:
				t.Errorf("publisher = %q, want nil", *pub)
			case tc.wantPub != "" && pub == nil:
				t.Errorf("publisher = nil, want %q", tc.wantPub)
			case tc.wantPub != "" && *pub != tc.wantPub:
				t.Errorf("publisher = %q, want %q", *pub, tc.wantPub)
			}
		})
	}
}

func TestItemsFromFeedOrdersAndLimits(t *testing.T) {
	old := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	mid := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	recent := time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)

	feed := &gofeed.Feed{Items: []*gofeed.Item{
		{Title: "middle story", PublishedParsed: &mid},
		{Title: "", PublishedParsed: &recent},
		{Title: "newest story", PublishedParsed: &recent},
		{Title: "oldest story", PublishedParsed: &old},
	}}

	items := itemsFromFeed(feed, 2)
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Title != "newest story" {
		t.Errorf("items[0].Title = %q, want newest story", items[0].Title)
	}
	if items[1].Title != "middle story" {
		t.Errorf("items[1].Title = %q, want middle story", items[1].Title)
	}
}

func TestRSSHeadlines(t *testing.T) {
	const feedBody = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
<title>Test Feed</title>
<item><title>Reliance beats estimates - Reuters</title><pubDate>Tue, 02 Jan 2024 10:00:00 GMT</pubDate></item>
<item><title>Reliance announces expansion</title><pubDate>Mon, 01 Jan 2024 10:00:00 GMT</pubDate></item>
</channel></rss>`

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(feedBody))
	}))
	defer srv.Close()

	src := NewRSSSource(srv.URL + "/rss?s={symbol}")
	items, err := src.Headlines(context.Background(), "RELIANCE.NS", 5)
	if err != nil {
		t.Fatalf("Headlines returned error: %v", err)
	}

	if gotPath != "/rss?s=RELIANCE.NS" {
		t.Errorf("request path = %q, want /rss?s=RELIANCE.NS", gotPath)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Title != "Reliance beats estimates" {
		t.Errorf("items[0].Title = %q, want the suffix stripped", items[0].Title)
	}
	if items[0].Publisher == nil || *items[0].Publisher != "Reuters" {
		t.Errorf("items[0].Publisher = %v, want Reuters", items[0].Publisher)
	}
	if items[1].Publisher != nil {
		t.Errorf("items[1].Publisher = %v, want nil", items[1].Publisher)
	}
}

func TestScrapeSiteParsesHeadlines(t *testing.T) {
	const page = `<html><body><ul>
<li class="story"><a href="/a">Reliance hits record high</a></li>
<li class="story"><a href="/b">Reliance announces buyback</a></li>
<li class="story"><a href="/c">A third story</a></li>
</ul></body></html>`

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(page))
	}))
	defer srv.Close()

	site := Site{
		Name:       "TestWire",
		BaseURL:    srv.URL,
		SearchPath: "/news/{symbol}",
		Selectors:  ItemSelectors{Container: "li.story", Title: "a"},
	}

	s := &ScrapeSource{sites: []Site{site}, timeout: 5 * time.Second}
	items, err := s.scrapeSite(context.Background(), site, "RELIANCE", 2)
	if err != nil {
		t.Fatalf("scrapeSite returned error: %v", err)
	}

	if gotPath != "/news/reliance" {
		t.Errorf("request path = %q, want /news/reliance", gotPath)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Title != "Reliance hits record high" {
		t.Errorf("items[0].Title = %q", items[0].Title)
	}
	if items[0].Publisher == nil || *items[0].Publisher != "TestWire" {
		t.Errorf("items[0].Publisher = %v, want TestWire", items[0].Publisher)
	}
}
