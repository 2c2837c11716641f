package config

import (
	"errors"
	"fmt"
	"strings"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		errs = append(errs, "app.port must be 1..65535")
	}
	if cfg.Crawl.RateLimitMS < 0 {
		errs = append(errs, "crawl.rate_limit_ms must be >= 0")
	}
	if cfg.Crawl.MaxConcurrent < 0 {
		errs = append(errs, "crawl.max_concurrent must be >= 0")
	}

	for i, co := range cfg.Companies {
		if strings.TrimSpace(co.Name) == "" {
			errs = append(errs, fmt.Sprintf("companies[%d].name is required", i))
		}
		if strings.TrimSpace(co.Domain) == "" {
			errs = append(errs, fmt.Sprintf("companies[%d].domain is required", i))
		}
	}

	for typ, urls := range cfg.Sources.FeedURLs {
		if len(urls) == 0 {
			errs = append(errs, fmt.Sprintf("sources.feed_urls[%s] must have at least 1 feed", typ))
		}
		for j, u := range urls {
			if !strings.HasPrefix(u, "http") {
				errs = append(errs, fmt.Sprintf("sources.feed_urls[%s][%d] must be an http(s) URL", typ, j))
			}
		}
	}

	if cfg.PressMail.Enabled {
		if cfg.PressMail.IMAPHost == "" {
			errs = append(errs, "press_mail.imap_host is required when press_mail.enabled")
		}
		if cfg.PressMail.Username == "" {
			errs = append(errs, "press_mail.username is required when press_mail.enabled")
		}
	}

	if cfg.Watch.Enabled {
		if strings.TrimSpace(cfg.Watch.Query) == "" {
			errs = append(errs, "watch.query is required when watch.enabled")
		}
		if cfg.Watch.IntervalMinutes <= 0 {
			errs = append(errs, "watch.interval_minutes must be > 0 when watch.enabled")
		}
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}
