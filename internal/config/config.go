package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Crawl struct {
		RateLimitMS   int `yaml:"rate_limit_ms"`   // min delay per origin
		MaxConcurrent int `yaml:"max_concurrent"`  // batch window size
	} `yaml:"crawl"`

	Sources struct {
		Greenhouse      bool `yaml:"greenhouse"`
		Lever           bool `yaml:"lever"`
		SmartRecruiters bool `yaml:"smartrecruiters"`
		SiteCrawl       bool `yaml:"site_crawl"`
		Feeds           bool `yaml:"feeds"`
		Search          bool `yaml:"search"`

		FeedURLs map[string][]string `yaml:"feed_urls"` // signal type -> feeds
	} `yaml:"sources"`

	Search struct {
		APIKeyEnv string `yaml:"api_key_env"` // env var holding the key
		Keyring   bool   `yaml:"keyring"`     // also try the OS keyring
	} `yaml:"search"`

	PressMail struct {
		Enabled  bool   `yaml:"enabled"`
		IMAPHost string `yaml:"imap_host"`
		IMAPPort int    `yaml:"imap_port"`
		Username string `yaml:"username"`
		Mailbox  string `yaml:"mailbox"`
	} `yaml:"press_mail"`

	Watch struct {
		Enabled         bool   `yaml:"enabled"`
		Query           string `yaml:"query"`
		IntervalMinutes int    `yaml:"interval_minutes"`
	} `yaml:"watch"`

	Companies []Company `yaml:"companies"`
}

type Company struct {
	Name   string `yaml:"name"`
	Domain string `yaml:"domain"`
}

func (c Config) RateLimit() time.Duration {
	if c.Crawl.RateLimitMS <= 0 {
		return time.Second
	}
	return time.Duration(c.Crawl.RateLimitMS) * time.Millisecond
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// Default returns the config used when no file exists yet.
func Default() Config {
	var cfg Config
	cfg.App.Port = 8790
	cfg.App.DataDir = "."
	cfg.Crawl.RateLimitMS = 1000
	cfg.Crawl.MaxConcurrent = 3
	cfg.Sources.Greenhouse = true
	cfg.Sources.Lever = true
	cfg.Sources.SmartRecruiters = true
	cfg.Sources.SiteCrawl = true
	cfg.Sources.Feeds = true
	cfg.Sources.Search = true
	cfg.Search.APIKeyEnv = "SIGNALSCOUT_SEARCH_KEY"
	cfg.Search.Keyring = true
	cfg.Watch.IntervalMinutes = 60
	return cfg
}
