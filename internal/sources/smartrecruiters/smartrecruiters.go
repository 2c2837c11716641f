package smartrecruiters

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

const origin = "api.smartrecruiters.com"

type Adapter struct {
	hc      *http.Client
	limiter *util.OriginLimiter
}

func New(limiter *util.OriginLimiter) *Adapter {
	return &Adapter{
		hc:      &http.Client{Timeout: 25 * time.Second},
		limiter: limiter,
	}
}

func (a *Adapter) Name() string   { return "smartrecruiters" }
func (a *Adapter) Origin() string { return origin }

// Public API response shape:
// { "content": [...], "totalFound": N, "offset": O, "limit": L }
type postingsResponse struct {
	Content    []posting `json:"content"`
	TotalFound int       `json:"totalFound"`
}

type posting struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ReleasedDate time.Time `json:"releasedDate"`
	Location     struct {
		City    string `json:"city"`
		Region  string `json:"region"`
		Country string `json:"country"`
		Remote  bool   `json:"remote"`
	} `json:"location"`
}

func (a *Adapter) FetchCompany(ctx context.Context, company domain.CompanyRef) types.FetchResult {
	res := types.FetchResult{Source: a.Name()}

	for _, slug := range util.SlugCandidates(company.Domain) {
		jobs, err, tryNext := a.fetchPostings(ctx, slug, company)
		if tryNext {
			continue
		}
		if err != nil {
			res.Errs = append(res.Errs, fmt.Sprintf("smartrecruiters slug=%s: %v", slug, err))
			return res
		}
		res.Jobs = jobs
		return res
	}
	return res
}

func (a *Adapter) fetchPostings(ctx context.Context, slug string, company domain.CompanyRef) (jobs []domain.JobPosting, err error, tryNext bool) {
	apiURL := fmt.Sprintf("https://%s/v1/companies/%s/postings?limit=100", origin, slug)

	if werr := a.limiter.Wait(ctx, origin); werr != nil {
		return nil, werr, false
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	req.Header.Set("User-Agent", "SignalScout/1.0 (+local)")

	resp, err := a.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("smartrecruiters get: %w", err), false
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil, true
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("smartrecruiters status %d", resp.StatusCode), false
	}

	var pr postingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("smartrecruiters decode: %w", err), false
	}
	// An unknown company id can answer 200 with nothing in it.
	if pr.TotalFound == 0 && len(pr.Content) == 0 {
		return nil, nil, true
	}

	out := make([]domain.JobPosting, 0, len(pr.Content))
	for _, p := range pr.Content {
		if p.ID == "" || strings.TrimSpace(p.Name) == "" {
			continue
		}
		title := util.CleanText(p.Name)
		loc := util.NormalizeLocation(strings.TrimSuffix(strings.Join([]string{p.Location.City, p.Location.Region, p.Location.Country}, ", "), ", "))

		var postedAt *time.Time
		if !p.ReleasedDate.IsZero() {
			t := p.ReleasedDate
			postedAt = &t
		}

		out = append(out, domain.JobPosting{
			ID:         fmt.Sprintf("smartrecruiters:%s:%s", slug, p.ID),
			Company:    company.Name,
			Domain:     company.Domain,
			Title:      title,
			Department: extract.Department(title),
			Seniority:  extract.Seniority(title),
			Location:   loc,
			Remote:     p.Location.Remote || util.IsRemoteText(loc, title),
			TechStack:  extract.TechTerms(title),
			PainPoints: extract.PainPoints(title),
			PostedAt:   postedAt,
			Source:     domain.SourceJobBoard,
			SourceURL:  fmt.Sprintf("https://jobs.smartrecruiters.com/%s/%s", slug, p.ID),
		})
	}
	return out, nil, false
}
