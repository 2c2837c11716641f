package sitecrawl

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"signalscout-engine/internal/domain"
	"signalscout-engine/internal/extract"
	"signalscout-engine/internal/sources/types"
	"signalscout-engine/internal/sources/util"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
)

// pages worth checking on a company's own site, in probe order.
var candidatePaths = []string{"/newsroom", "/press", "/news", "/blog", "/about/news"}

const siteConfidence = 0.7

type Adapter struct {
	hc        *http.Client
	limiter   *util.OriginLimiter
	extractor extract.Extractor
}

func New(limiter *util.OriginLimiter, ex extract.Extractor) *Adapter {
	return &Adapter{
		hc:        &http.Client{Timeout: 15 * time.Second},
		limiter:   limiter,
		extractor: ex,
	}
}

func (a *Adapter) Name() string   { return "sitecrawl" }
func (a *Adapter) Origin() string { return "company_site" }

// FetchCompany walks the company's own press/news pages and turns headline
// links into raw signals. Attribution is trivial here: everything on the site
// is about the company.
func (a *Adapter) FetchCompany(ctx context.Context, company domain.CompanyRef) types.FetchResult {
	res := types.FetchResult{Source: a.Name()}
	if strings.TrimSpace(company.Domain) == "" {
		return res
	}

	for _, path := range candidatePaths {
		pageURL := fmt.Sprintf("https://%s%s", company.Domain, path)

		if err := a.limiter.Wait(ctx, company.Domain); err != nil {
			res.Errs = append(res.Errs, fmt.Sprintf("sitecrawl: %v", err))
			return res
		}

		signals, err, tryNext := a.crawlPage(ctx, pageURL, company)
		if tryNext {
			continue
		}
		if err != nil {
			res.Errs = append(res.Errs, fmt.Sprintf("sitecrawl %s: %v", pageURL, err))
			return res
		}
		res.Signals = signals
		return res
	}
	return res
}

func (a *Adapter) crawlPage(ctx context.Context, pageURL string, company domain.CompanyRef) (signals []domain.RawSignal, err error, tryNext bool) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	req.Header.Set("User-Agent", "SignalScout/1.0 (+local)")

	resp, err := a.hc.Do(req)
	if err != nil {
		// unreachable host or missing page; try the next path
		return nil, nil, true
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil, true
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("status %d", resp.StatusCode), false
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err), false
	}

	now := time.Now().UTC()
	seen := map[string]bool{}

	doc.Find("article, h1, h2, h3, a[href]").Each(func(_ int, sel *goquery.Selection) {
		text := util.CleanText(sel.Text())
		if len(text) < 20 || len(text) > 300 {
			return
		}

		matched := extract.Classify(text)
		if len(matched) == 0 {
			return
		}

		link := pageURL
		if href, ok := sel.Attr("href"); ok && strings.HasPrefix(href, "http") {
			link = href
		} else if ok && strings.HasPrefix(href, "/") {
			link = fmt.Sprintf("https://%s%s", company.Domain, href)
		}

		for _, typ := range matched {
			key := strings.ToLower(text) + "|" + string(typ)
			if seen[key] {
				continue
			}
			seen[key] = true

			signals = append(signals, domain.RawSignal{
				ID:           uuid.NewString(),
				Type:         typ,
				Source:       domain.SourceCompanySite,
				SourceURL:    util.CanonicalURL(link),
				CompanyName:  company.Name,
				Domain:       company.Domain,
				Headline:     text,
				Snippet:      text,
				Entities:     a.extractor.Extract(text),
				DiscoveredAt: now,
				Confidence:   siteConfidence,
			})
		}
	})

	return signals, nil, false
}
