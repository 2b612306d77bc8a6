package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no config flag is given. A
// missing file at the default path is not an error; defaults apply.
const DefaultPath = "config.yaml"

type Config struct {
	Provider        string `yaml:"provider"`
	Exchange        string `yaml:"exchange"`
	HistoryDays     int    `yaml:"history_days"`
	TopNews         int    `yaml:"top_news"`
	CacheTTLMinutes int    `yaml:"cache_ttl_minutes"`
	News            struct {
		Source   string `yaml:"source"`
		FeedURL  string `yaml:"feed_url"`
		MaxItems int    `yaml:"max_items"`
	} `yaml:"news"`
	Yahoo struct {
		BaseURL        string  `yaml:"base_url"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
		RatePerSecond  float64 `yaml:"rate_per_second"`
	} `yaml:"yahoo"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
}

func (c *Config) Validate() error {
	if c.Provider != "yahoo" && c.Provider != "kite" && c.Provider != "mock" {
		return fmt.Errorf("invalid provider '%s': must be 'yahoo', 'kite', or 'mock'", c.Provider)
	}
	if c.Exchange == "" {
		return errors.New("exchange cannot be empty")
	}
	if c.HistoryDays < 1 || c.HistoryDays > 730 {
		return fmt.Errorf("history_days must be between 1-730, got %d", c.HistoryDays)
	}
	if c.TopNews <= 0 {
		return fmt.Errorf("top_news must be positive, got %d", c.TopNews)
	}
	if c.CacheTTLMinutes <= 0 {
		return fmt.Errorf("cache_ttl_minutes must be positive, got %d", c.CacheTTLMinutes)
	}
	if c.News.Source != "rss" && c.News.Source != "scrape" {
		return fmt.Errorf("invalid news.source '%s': must be 'rss' or 'scrape'", c.News.Source)
	}
	if c.News.MaxItems <= 0 {
		return fmt.Errorf("news.max_items must be positive, got %d", c.News.MaxItems)
	}
	if c.Yahoo.TimeoutSeconds <= 0 {
		return fmt.Errorf("yahoo.timeout_seconds must be positive, got %d", c.Yahoo.TimeoutSeconds)
	}
	if c.Yahoo.RatePerSecond <= 0 {
		return fmt.Errorf("yahoo.rate_per_second must be positive, got %.2f", c.Yahoo.RatePerSecond)
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr cannot be empty")
	}
	return nil
}

// CacheTTL returns the analysis cache lifetime as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// YahooTimeout returns the per-request timeout for Yahoo calls.
func (c *Config) YahooTimeout() time.Duration {
	return time.Duration(c.Yahoo.TimeoutSeconds) * time.Second
}

func Load(path string) (*Config, error) {
	var c Config

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && path == DefaultPath:
		// Run on defaults when nothing was configured.
	default:
		return nil, err
	}

	if c.Provider == "" {
		c.Provider = "yahoo"
	}
	if c.Exchange == "" {
		c.Exchange = "NSE"
	}
	if c.HistoryDays == 0 {
		c.HistoryDays = 90
	}
	if c.TopNews == 0 {
		c.TopNews = 5
	}
	if c.CacheTTLMinutes == 0 {
		c.CacheTTLMinutes = 60
	}
	if c.News.Source == "" {
		c.News.Source = "rss"
	}
	if c.News.FeedURL == "" {
		c.News.FeedURL = "https://feeds.finance.yahoo.com/rss/2.0/headline?s={symbol}&region=US&lang=en-US"
	}
	if c.News.MaxItems == 0 {
		c.News.MaxItems = 25
	}
	if c.Yahoo.BaseURL == "" {
		c.Yahoo.BaseURL = "https://query1.finance.yahoo.com"
	}
	if c.Yahoo.TimeoutSeconds == 0 {
		c.Yahoo.TimeoutSeconds = 30
	}
	if c.Yahoo.RatePerSecond == 0 {
		c.Yahoo.RatePerSecond = 2
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
