package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"signalscout-engine/internal/domain"
	"signalscout-engine/internal/extract"
	"signalscout-engine/internal/sources/types"
	"signalscout-engine/internal/sources/util"

	"github.com/google/uuid"
)

const (
	origin           = "api.search.brave.com"
	searchConfidence = 0.7
)

// canned queries per signal type; the search API is breadth, not precision.
var queries = map[domain.SignalType][]string{
	domain.SignalFunding:          {`startup "raises" series funding announcement`, `"seed round" startup announces`},
	domain.SignalHiring:           {`startup "is hiring" engineering sales`, `"hiring spree" startup`},
	domain.SignalProductLaunch:    {`startup "launches" new product`},
	domain.SignalLeadershipChange: {`company "appoints" new CEO CTO`},
	domain.SignalExpansion:        {`company "expands" opens new office`},
	domain.SignalPartnership:      {`company "partners with" announcement`},
	domain.SignalAcquisition:      {`company "acquires" startup announcement`},
	domain.SignalTechAdoption:     {`company "migrates to" adopts platform`},
}

type Adapter struct {
	hc        *http.Client
	limiter   *util.OriginLimiter
	apiKey    string
	extractor extract.Extractor

	warnOnce sync.Once
}

func New(limiter *util.OriginLimiter, ex extract.Extractor, apiKey string) *Adapter {
	return &Adapter{
		hc:        &http.Client{Timeout: 15 * time.Second},
		limiter:   limiter,
		apiKey:    apiKey,
		extractor: ex,
	}
}

func (a *Adapter) Name() string { return "search" }

type searchResponse struct {
	Web struct {
		Results []searchResult `json:"results"`
	} `json:"web"`
}

type searchResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	PageAge     string `json:"page_age"`
}

// FetchSignals runs the canned queries for the requested types. Without an
// API key the adapter is a no-op: one warning, empty result, no error.
func (a *Adapter) FetchSignals(ctx context.Context, wanted []domain.SignalType) types.FetchResult {
	res := types.FetchResult{Source: a.Name()}

	if a.apiKey == "" {
		a.warnOnce.Do(func() {
			log.Printf("[search] no API key configured; skipping search source")
		})
		return res
	}

	for _, typ := range wanted {
		for _, q := range queries[typ] {
			results, err := a.runQuery(ctx, q)
			if err != nil {
				res.Errs = append(res.Errs, fmt.Sprintf("search %q: %v", q, err))
				continue
			}
			res.Signals = append(res.Signals, a.classify(results, typ)...)
		}
	}
	return res
}

func (a *Adapter) runQuery(ctx context.Context, q string) ([]searchResult, error) {
	if err := a.limiter.Wait(ctx, origin); err != nil {
		return nil, err
	}

	apiURL := fmt.Sprintf("https://%s/res/v1/web/search?q=%s&count=20", origin, url.QueryEscape(q))
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", a.apiKey)

	resp, err := a.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return sr.Web.Results, nil
}

func (a *Adapter) classify(results []searchResult, typ domain.SignalType) []domain.RawSignal {
	now := time.Now().UTC()
	var out []domain.RawSignal

	for _, r := range results {
		title := util.CleanText(r.Title)
		snippet := util.CleanText(r.Description)
		blob := title + ". " + snippet

		if !extract.Matches(blob, typ) {
			continue
		}
		company := extract.CompanyName(blob)
		if company == "" {
			continue
		}

		var published *time.Time
		if t, err := time.Parse(time.RFC3339, r.PageAge); err == nil {
			u := t.UTC()
			published = &u
		}

		out = append(out, domain.RawSignal{
			ID:           uuid.NewString(),
			Type:         typ,
			Source:       domain.SourceSearch,
			SourceURL:    util.CanonicalURL(r.URL),
			CompanyName:  company,
			Domain:       util.CompanyDomain(company, r.URL),
			Headline:     title,
			Snippet:      snippet,
			Entities:     a.extractor.Extract(blob),
			PublishedAt:  published,
			DiscoveredAt: now,
			Confidence:   searchConfidence,
		})
	}
	return out
}
