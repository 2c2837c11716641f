package crawl

import (
	"context"
	"fmt"
	"log"
	"time"

	"signalscout-engine/internal/domain"
	"signalscout-engine/internal/sources/types"

	"golang.org/x/sync/errgroup"
)

// Orchestrator fans company-targeted adapters out over research targets. One
// broken source never costs more than its own findings.
type Orchestrator struct {
	adapters []types.CompanyAdapter
}

func New(adapters ...types.CompanyAdapter) *Orchestrator {
	return &Orchestrator{adapters: adapters}
}

// CrawlCompany runs every adapter against one company, accumulating jobs,
// signals, and non-fatal error strings into a single result.
func (o *Orchestrator) CrawlCompany(ctx context.Context, company domain.CompanyRef) domain.CrawlResult {
	result := domain.CrawlResult{
		Company:   company,
		Sources:   make(map[string]bool, len(o.adapters)),
		CrawledAt: time.Now().UTC(),
	}

	for _, ad := range o.adapters {
		fr := o.fetchGuarded(ctx, ad, company)

		result.Jobs = append(result.Jobs, fr.Jobs...)
		result.Signals = append(result.Signals, fr.Signals...)
		result.Errors = append(result.Errors, fr.Errs...)
		result.Sources[ad.Name()] = len(fr.Errs) == 0
	}

	if len(result.Jobs) > 0 {
		v := ComputeVelocity(result.Jobs)
		result.Velocity = &v
	}
	return result
}

// fetchGuarded keeps a misbehaving adapter from taking down the crawl; a
// panic becomes one more error string.
func (o *Orchestrator) fetchGuarded(ctx context.Context, ad types.CompanyAdapter, company domain.CompanyRef) (fr types.FetchResult) {
	defer func() {
		if r := recover(); r != nil {
			fr = types.FetchResult{
				Source: ad.Name(),
				Errs:   []string{fmt.Sprintf("%s panic: %v", ad.Name(), r)},
			}
		}
	}()
	return ad.FetchCompany(ctx, company)
}

// BatchStats summarizes one batch crawl pass.
type BatchStats struct {
	Companies    int           `json:"companies"`
	TotalJobs    int           `json:"totalJobs"`
	TotalSignals int           `json:"totalSignals"`
	WithErrors   int           `json:"withErrors"`
	Duration     time.Duration `json:"duration"`
}

// BatchCrawlCompanies crawls companies in fixed windows of maxConcurrent,
// waiting for each window to settle before starting the next. Always returns
// exactly one result per input company, in input order.
func (o *Orchestrator) BatchCrawlCompanies(ctx context.Context, companies []domain.CompanyRef, maxConcurrent int) ([]domain.CrawlResult, BatchStats) {
	if maxConcurrent <= 0 {
		maxConcurrent = 3
	}
	start := time.Now()
	results := make([]domain.CrawlResult, len(companies))

	for lo := 0; lo < len(companies); lo += maxConcurrent {
		hi := lo + maxConcurrent
		if hi > len(companies) {
			hi = len(companies)
		}

		var g errgroup.Group
		for i := lo; i < hi; i++ {
			i := i
			g.Go(func() error {
				results[i] = o.CrawlCompany(ctx, companies[i])
				return nil
			})
		}
		_ = g.Wait()

		if ctx.Err() != nil {
			// mark companies we never got to
			for i := hi; i < len(companies); i++ {
				results[i] = domain.CrawlResult{
					Company:   companies[i],
					Sources:   map[string]bool{},
					CrawledAt: time.Now().UTC(),
					Errors:    []string{"crawl cancelled"},
				}
			}
			break
		}
	}

	stats := BatchStats{Companies: len(companies), Duration: time.Since(start)}
	for i := range results {
		stats.TotalJobs += len(results[i].Jobs)
		stats.TotalSignals += len(results[i].Signals)
		if len(results[i].Errors) > 0 {
			stats.WithErrors++
		}
	}
	log.Printf("[crawl] batch done companies=%d jobs=%d signals=%d errored=%d in %s",
		stats.Companies, stats.TotalJobs, stats.TotalSignals, stats.WithErrors, stats.Duration.Round(time.Millisecond))
	return results, stats
}
