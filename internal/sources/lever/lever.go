package lever

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"signalscout-engine/internal/domain"
	"signalscout-engine/internal/extract"
	"signalscout-engine/internal/sources/types"
	"signalscout-engine/internal/sources/util"
)

const origin = "api.lever.co"

type Adapter struct {
	hc      *http.Client
	limiter *util.OriginLimiter
}

func New(limiter *util.OriginLimiter) *Adapter {
	return &Adapter{
		hc:      &http.Client{Timeout: 20 * time.Second},
		limiter: limiter,
	}
}

func (a *Adapter) Name() string   { return "lever" }
func (a *Adapter) Origin() string { return origin }

type posting struct {
	ID         string `json:"id"`
	Text       string `json:"text"` // title
	HostedURL  string `json:"hostedUrl"`
	CreatedAt  int64  `json:"createdAt"` // ms epoch
	Categories struct {
		Location string `json:"location"`
		Team     string `json:"team"`
	} `json:"categories"`
	Description string `json:"descriptionPlain"`
}

func (a *Adapter) FetchCompany(ctx context.Context, company domain.CompanyRef) types.FetchResult {
	res := types.FetchResult{Source: a.Name()}

	for _, slug := range util.SlugCandidates(company.Domain) {
		jobs, err, tryNext := a.fetchPostings(ctx, slug, company)
		if tryNext {
			continue
		}
		if err != nil {
			res.Errs = append(res.Errs, fmt.Sprintf("lever slug=%s: %v", slug, err))
			return res
		}
		res.Jobs = jobs
		return res
	}
	return res
}

func (a *Adapter) fetchPostings(ctx context.Context, slug string, company domain.CompanyRef) (jobs []domain.JobPosting, err error, tryNext bool) {
	apiURL := fmt.Sprintf("https://%s/v0/postings/%s?mode=json", origin, slug)

	if werr := a.limiter.Wait(ctx, origin); werr != nil {
		return nil, werr, false
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	req.Header.Set("User-Agent", "SignalScout/1.0 (+local)")

	resp, err := a.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lever get: %w", err), false
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil, true
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("lever status %d", resp.StatusCode), false
	}

	var postings []posting
	if err := json.NewDecoder(resp.Body).Decode(&postings); err != nil {
		return nil, fmt.Errorf("lever decode: %w", err), false
	}

	out := make([]domain.JobPosting, 0, len(postings))
	for _, p := range postings {
		if p.ID == "" || strings.TrimSpace(p.Text) == "" {
			continue
		}
		title := util.CleanText(p.Text)
		loc := util.NormalizeLocation(p.Categories.Location)
		blob := title + " " + p.Description

		var postedAt *time.Time
		if p.CreatedAt > 0 {
			t := time.UnixMilli(p.CreatedAt)
			postedAt = &t
		}

		out = append(out, domain.JobPosting{
			ID:         fmt.Sprintf("lever:%s:%s", slug, p.ID),
			Company:    company.Name,
			Domain:     company.Domain,
			Title:      title,
			Department: extract.Department(title),
			Seniority:  extract.Seniority(title),
			Location:   loc,
			Remote:     util.IsRemoteText(loc, title, p.Description),
			TechStack:  extract.TechTerms(blob),
			PainPoints: extract.PainPoints(blob),
			PostedAt:   postedAt,
			Source:     domain.SourceJobBoard,
			SourceURL:  p.HostedURL,
		})
	}
	return out, nil, false
}
