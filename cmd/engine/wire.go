package main

import (
	"fmt"
	"log"

	"signalscout-engine/internal/aggregate"
	"signalscout-engine/internal/config"
	"signalscout-engine/internal/crawl"
	"signalscout-engine/internal/domain"
	"signalscout-engine/internal/extract"
	"signalscout-engine/internal/intent"
	"signalscout-engine/internal/plan"
	"signalscout-engine/internal/rank"
	"signalscout-engine/internal/research"
	"signalscout-engine/internal/secrets"
	"signalscout-engine/internal/sources/feeds"
	"signalscout-engine/internal/sources/greenhouse"
	"signalscout-engine/internal/sources/lever"
	"signalscout-engine/internal/sources/pressmail"
	"signalscout-engine/internal/sources/search"
	"signalscout-engine/internal/sources/sitecrawl"
	"signalscout-engine/internal/sources/smartrecruiters"
	"signalscout-engine/internal/sources/types"
	"signalscout-engine/internal/sources/util"
)

// buildEngine assembles the research pipeline from the config: per-origin
// limiter shared by every adapter, the adapter set the config enables, and
// the planner/executor/ranker stack on top.
func buildEngine(cfg config.Config) *research.Engine {
	limiter := util.NewOriginLimiter(cfg.RateLimit())
	ex := extract.RegexExtractor{}

	var adapters []types.CompanyAdapter
	if cfg.Sources.Greenhouse {
		adapters = append(adapters, greenhouse.New(limiter))
	}
	if cfg.Sources.Lever {
		adapters = append(adapters, lever.New(limiter))
	}
	if cfg.Sources.SmartRecruiters {
		adapters = append(adapters, smartrecruiters.New(limiter))
	}
	if cfg.Sources.SiteCrawl {
		adapters = append(adapters, sitecrawl.New(limiter, ex))
	}

	var queries []types.QueryAdapter
	if cfg.Sources.Feeds {
		queries = append(queries, feeds.New(limiter, ex, feedURLs(cfg)))
	}
	if cfg.Sources.Search {
		// missing key is fine; the adapter skips itself with a warning
		queries = append(queries, search.New(limiter, ex, secrets.SearchAPIKey(cfg)))
	}
	if cfg.PressMail.Enabled {
		pass, err := secrets.IMAPPassword(cfg)
		if err != nil {
			log.Printf("[pressmail] no password available, source disabled: %v", err)
		} else {
			queries = append(queries, pressmail.New(pressmail.Config{
				Addr:     fmt.Sprintf("%s:%d", cfg.PressMail.IMAPHost, cfg.PressMail.IMAPPort),
				Username: cfg.PressMail.Username,
				Password: pass,
				Mailbox:  cfg.PressMail.Mailbox,
			}))
		}
	}

	executor := &plan.Executor{
		Orchestrator:  crawl.New(adapters...),
		Sources:       queries,
		Aggregator:    aggregate.New(),
		Ranker:        rank.New(),
		MaxConcurrent: cfg.Crawl.MaxConcurrent,
	}

	return research.New(intent.NewParser(), executor)
}

func feedURLs(cfg config.Config) map[domain.SignalType][]string {
	if len(cfg.Sources.FeedURLs) == 0 {
		return nil
	}
	out := make(map[domain.SignalType][]string, len(cfg.Sources.FeedURLs))
	for typ, urls := range cfg.Sources.FeedURLs {
		out[domain.SignalType(typ)] = append([]string(nil), urls...)
	}
	return out
}
