package util

import (
	"context"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// OriginLimiter enforces a minimum delay between requests to the same origin
// (api.lever.co, boards.greenhouse.io, a company's own site, ...). Origins are
// independent: a slow crawl of one host never gates another.
type OriginLimiter struct {
	mu       sync.Mutex
	m        map[string]*rate.Limiter
	interval time.Duration
}

const DefaultInterval = time.Second

func NewOriginLimiter(interval time.Duration) *OriginLimiter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &OriginLimiter{
		m:        make(map[string]*rate.Limiter),
		interval: interval,
	}
}

func (ol *OriginLimiter) limiterFor(origin string) *rate.Limiter {
	ol.mu.Lock()
	defer ol.mu.Unlock()

	if lim, ok := ol.m[origin]; ok {
		return lim
	}
	lim := rate.NewLimiter(rate.Every(ol.interval), 1)
	ol.m[origin] = lim
	return lim
}

// Wait blocks until at least the configured interval has passed since the
// previous request to origin, then records the request. Concurrent callers on
// the same origin serialize at the interval boundary; the only error is a
// cancelled context.
func (ol *OriginLimiter) Wait(ctx context.Context, origin string) error {
	if origin == "" {
		origin = "_"
	}
	return ol.limiterFor(origin).Wait(ctx)
}

// WaitURL rate-limits by the host of raw. Unparseable URLs share a bucket.
func (ol *OriginLimiter) WaitURL(ctx context.Context, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ol.Wait(ctx, "_")
	}
	return ol.Wait(ctx, u.Host)
}
