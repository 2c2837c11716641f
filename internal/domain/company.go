package domain

import "time"

// CompanyRef identifies one research target.
type CompanyRef struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

// CrawlResult is one company's outcome from a crawl pass. Errors holds
// non-fatal per-adapter failures; a partially failed crawl is still usable.
type CrawlResult struct {
	Company   CompanyRef      `json:"company"`
	Jobs      []JobPosting    `json:"jobs,omitempty"`
	Signals   []RawSignal     `json:"signals,omitempty"`
	Velocity  *HiringVelocity `json:"velocity,omitempty"`
	Sources   map[string]bool `json:"sources"`
	CrawledAt time.Time       `json:"crawledAt"`
	Errors    []string        `json:"errors,omitempty"`
}
