package greenhouse

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

const origin = "boards-api.greenhouse.io"

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

func (a *Adapter) Name() string   { return "greenhouse" }
func (a *Adapter) Origin() string { return origin }

type boardResponse struct {
	Jobs []boardJob `json:"jobs"`
}

type boardJob struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	AbsoluteURL string `json:"absolute_url"`
	UpdatedAt   string `json:"updated_at"`
	Content     string `json:"content"`
	Location    struct {
		Name string `json:"name"`
	} `json:"location"`
}

// FetchCompany probes slug candidates derived from the company domain against
// the public board API. No responding slug means the company is not on
// Greenhouse; that is an empty result, not an error.
func (a *Adapter) FetchCompany(ctx context.Context, company domain.CompanyRef) types.FetchResult {
	res := types.FetchResult{Source: a.Name()}

	for _, slug := range util.SlugCandidates(company.Domain) {
		jobs, err, tryNext := a.fetchBoard(ctx, slug, company)
		if tryNext {
			continue
		}
		if err != nil {
			res.Errs = append(res.Errs, fmt.Sprintf("greenhouse slug=%s: %v", slug, err))
			return res
		}
		res.Jobs = jobs
		return res
	}
	return res
}

func (a *Adapter) fetchBoard(ctx context.Context, slug string, company domain.CompanyRef) (jobs []domain.JobPosting, err error, tryNext bool) {
	apiURL := fmt.Sprintf("https://%s/v1/boards/%s/jobs?content=true", origin, slug)

	if werr := a.limiter.Wait(ctx, origin); werr != nil {
		return nil, werr, false
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	req.Header.Set("User-Agent", "SignalScout/1.0 (+local)")

	resp, err := a.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("greenhouse get: %w", err), false
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil, true
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("greenhouse status %d", resp.StatusCode), false
	}

	var board boardResponse
	if err := json.NewDecoder(resp.Body).Decode(&board); err != nil {
		return nil, fmt.Errorf("greenhouse decode: %w", err), false
	}

	out := make([]domain.JobPosting, 0, len(board.Jobs))
	for _, j := range board.Jobs {
		if j.ID == 0 || strings.TrimSpace(j.Title) == "" {
			continue
		}
		title := util.CleanText(j.Title)
		loc := util.NormalizeLocation(j.Location.Name)
		blob := title + " " + j.Content

		var postedAt *time.Time
		if t, perr := time.Parse(time.RFC3339, j.UpdatedAt); perr == nil {
			postedAt = &t
		}

		out = append(out, domain.JobPosting{
			ID:         fmt.Sprintf("greenhouse:%s:%d", slug, j.ID),
			Company:    company.Name,
			Domain:     company.Domain,
			Title:      title,
			Department: extract.Department(title),
			Seniority:  extract.Seniority(title),
			Location:   loc,
			Remote:     util.IsRemoteText(loc, title),
			TechStack:  extract.TechTerms(blob),
			PainPoints: extract.PainPoints(blob),
			PostedAt:   postedAt,
			Source:     domain.SourceJobBoard,
			SourceURL:  j.AbsoluteURL,
		})
	}
	return out, nil, false
}
