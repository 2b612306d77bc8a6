package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"stock-analyzer/internal/api"
	"stock-analyzer/internal/interfaces"
	"stock-analyzer/internal/logger"
	"stock-analyzer/internal/types"
)

const scrapeTimeout = 15 * time.Second

// ScrapeSource pulls headlines straight off financial news sites.
// Selectors are brittle by nature; a failure on one site is logged and
// the remaining sites still contribute.
type ScrapeSource struct {
	sites   []Site
	timeout time.Duration
}

// Site defines a scrapeable news source
type Site struct {
	Name       string
	BaseURL    string
	SearchPath string // e.g., "/search?q={symbol}"
	Selectors  ItemSelectors
	RateLimit  time.Duration
}

// ItemSelectors defines CSS selectors for extracting headline data
type ItemSelectors struct {
	Container string
	Title     string
}

var _ interfaces.NewsSource = (*ScrapeSource)(nil)

// NewScrapeSource creates a scraper over the default sites
func NewScrapeSource() *ScrapeSource {
	return &ScrapeSource{
		sites:   defaultSites(),
		timeout: scrapeTimeout,
	}
}

func (s *ScrapeSource) Name() string { return "scrape" }

// defaultSites returns the financial news sites to scrape
func defaultSites() []Site {
	return []Site{
		{
			Name:       "MoneyControl",
			BaseURL:    "https://www.moneycontrol.com",
			SearchPath: "/news/tags/{symbol}.html",
			Selectors: ItemSelectors{
				Container: "li.clearfix",
				Title:     "h2 a, h3 a",
			},
			RateLimit: 2 * time.Second,
		},
		{
			Name:       "EconomicTimes",
			BaseURL:    "https://economictimes.indiatimes.com",
			SearchPath: "/topic/{symbol}",
			Selectors: ItemSelectors{
				Container: "div.story-box",
				Title:     "a",
			},
			RateLimit: 2 * time.Second,
		},
		{
			Name:       "BusinessStandard",
			BaseURL:    "https://www.business-standard.com",
			SearchPath: "/search?q={symbol}",
			Selectors: ItemSelectors{
				Container: "div.listing-txt",
				Title:     "a.Hdng",
			},
			RateLimit: 2 * time.Second,
		},
	}
}

// Headlines fetches up to limit headlines for symbol across all sites
func (s *ScrapeSource) Headlines(ctx context.Context, symbol string, limit int) ([]types.NewsItem, error) {
	logger.Info(ctx, "scraping headlines", "symbol", symbol, "sites", len(s.sites))

	perSite := limit / len(s.sites)
	if perSite < 1 {
		perSite = 1
	}

	all := []types.NewsItem{}
	for _, site := range s.sites {
		items, err := s.scrapeSite(ctx, site, symbol, perSite)
		if err != nil {
			logger.ErrorWithErr(ctx, "site scrape failed", err, "site", site.Name, "symbol", symbol)
			continue
		}
		all = append(all, items...)

		// Rate limiting between sites
		time.Sleep(site.RateLimit)
	}
	if len(all) > limit {
		all = all[:limit]
	}

	logger.Info(ctx, "scraping completed", "symbol", symbol, "headlines", len(all))
	return all, nil
}

// scrapeSite collects headlines from a single site
func (s *ScrapeSource) scrapeSite(ctx context.Context, site Site, symbol string, limit int) ([]types.NewsItem, error) {
	items := []types.NewsItem{}

	c := colly.NewCollector(
		colly.AllowedDomains(domainOf(site.BaseURL)),
		colly.MaxDepth(1),
		colly.Async(false),
	)
	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", api.BrowserHeaders()["User-Agent"])
	})

	c.OnHTML(site.Selectors.Container, func(e *colly.HTMLElement) {
		if len(items) >= limit {
			return
		}

		title := strings.TrimSpace(e.ChildText(site.Selectors.Title))
		if title == "" {
			return
		}

		publisher := site.Name
		items = append(items, types.NewsItem{Title: title, Publisher: &publisher})
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.ErrorWithErr(ctx, "scrape request failed", err, "site", site.Name, "url", r.Request.URL.String())
	})

	searchURL := site.BaseURL + strings.ReplaceAll(site.SearchPath, "{symbol}", strings.ToLower(symbol))
	if err := c.Visit(searchURL); err != nil {
		return nil, fmt.Errorf("visit %s: %w", searchURL, err)
	}
	c.Wait()

	return items, nil
}

// domainOf extracts the hostname from a base URL
func domainOf(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
