package crawl

import (
	"context"
	"testing"

	"signalscout-engine/internal/domain"
	"signalscout-engine/internal/sources/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAdapter is a canned company adapter for orchestrator tests.
type fakeAdapter struct {
	name  string
	fetch func(ctx context.Context, company domain.CompanyRef) types.FetchResult
}

func (f *fakeAdapter) Name() string   { return f.name }
func (f *fakeAdapter) Origin() string { return f.name + ".example" }

func (f *fakeAdapter) FetchCompany(ctx context.Context, company domain.CompanyRef) types.FetchResult {
	return f.fetch(ctx, company)
}

func jobsAdapter(name string, n int) *fakeAdapter {
	return &fakeAdapter{name: name, fetch: func(_ context.Context, c domain.CompanyRef) types.FetchResult {
		jobs := make([]domain.JobPosting, n)
		for i := range jobs {
			jobs[i] = domain.JobPosting{Company: c.Name, Title: "Software Engineer", Source: domain.SourceJobBoard}
		}
		return types.FetchResult{Source: name, Jobs: jobs}
	}}
}

func failingAdapter(name string) *fakeAdapter {
	return &fakeAdapter{name: name, fetch: func(context.Context, domain.CompanyRef) types.FetchResult {
		return types.FetchResult{Source: name, Errs: []string{name + ": connection refused"}}
	}}
}

func panickingAdapter(name string) *fakeAdapter {
	return &fakeAdapter{name: name, fetch: func(context.Context, domain.CompanyRef) types.FetchResult {
		panic("bad response shape")
	}}
}

func TestCrawlCompany_FailedAdapterIsIsolated(t *testing.T) {
	o := New(jobsAdapter("boards", 2), failingAdapter("careers"))

	r := o.CrawlCompany(context.Background(), domain.CompanyRef{Name: "Acme", Domain: "acme.com"})

	assert.Len(t, r.Jobs, 2, "healthy adapter's findings survive the failure")
	require.Len(t, r.Errors, 1)
	assert.Contains(t, r.Errors[0], "connection refused")
	assert.True(t, r.Sources["boards"])
	assert.False(t, r.Sources["careers"])
}

func TestCrawlCompany_PanickingAdapterBecomesError(t *testing.T) {
	o := New(panickingAdapter("flaky"), jobsAdapter("boards", 1))

	r := o.CrawlCompany(context.Background(), domain.CompanyRef{Name: "Acme"})

	assert.Len(t, r.Jobs, 1)
	require.Len(t, r.Errors, 1)
	assert.Contains(t, r.Errors[0], "panic")
}

func TestCrawlCompany_VelocityOnlyWithJobs(t *testing.T) {
	o := New(failingAdapter("careers"))
	r := o.CrawlCompany(context.Background(), domain.CompanyRef{Name: "Acme"})
	assert.Nil(t, r.Velocity)

	o = New(jobsAdapter("boards", 5))
	r = o.CrawlCompany(context.Background(), domain.CompanyRef{Name: "Acme"})
	require.NotNil(t, r.Velocity)
	assert.Equal(t, 5, r.Velocity.TotalOpenings)
}

func TestBatchCrawlCompanies_OneResultPerCompanyInOrder(t *testing.T) {
	o := New(jobsAdapter("boards", 1))

	companies := []domain.CompanyRef{
		{Name: "Alpha"}, {Name: "Beta"}, {Name: "Gamma"}, {Name: "Delta"}, {Name: "Epsilon"},
	}

	results, stats := o.BatchCrawlCompanies(context.Background(), companies, 2)

	require.Len(t, results, len(companies))
	for i, r := range results {
		assert.Equal(t, companies[i].Name, r.Company.Name)
	}
	assert.Equal(t, 5, stats.Companies)
	assert.Equal(t, 5, stats.TotalJobs)
	assert.Equal(t, 0, stats.WithErrors)
}

func TestBatchCrawlCompanies_ErrorsCounted(t *testing.T) {
	calls := 0
	flaky := &fakeAdapter{name: "flaky", fetch: func(_ context.Context, c domain.CompanyRef) types.FetchResult {
		calls++
		if c.Name == "Beta" {
			return types.FetchResult{Source: "flaky", Errs: []string{"boom"}}
		}
		return types.FetchResult{Source: "flaky", Jobs: []domain.JobPosting{{Company: c.Name}}}
	}}
	o := New(flaky)

	results, stats := o.BatchCrawlCompanies(context.Background(),
		[]domain.CompanyRef{{Name: "Alpha"}, {Name: "Beta"}, {Name: "Gamma"}}, 1)

	require.Len(t, results, 3)
	assert.Equal(t, 1, stats.WithErrors)
	assert.Equal(t, 2, stats.TotalJobs)
	assert.Equal(t, 3, calls)
}

func TestBatchCrawlCompanies_CancellationMarksRemaining(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	blocker := &fakeAdapter{name: "slow", fetch: func(_ context.Context, c domain.CompanyRef) types.FetchResult {
		cancel() // cancel mid-crawl: later windows must not start
		return types.FetchResult{Source: "slow", Jobs: []domain.JobPosting{{Company: c.Name}}}
	}}
	o := New(blocker)

	companies := []domain.CompanyRef{{Name: "Alpha"}, {Name: "Beta"}, {Name: "Gamma"}}
	results, _ := o.BatchCrawlCompanies(ctx, companies, 1)

	require.Len(t, results, 3, "cancellation still yields one result per company")
	assert.NotEmpty(t, results[0].Jobs)
	assert.Contains(t, results[1].Errors, "crawl cancelled")
	assert.Contains(t, results[2].Errors, "crawl cancelled")
}
