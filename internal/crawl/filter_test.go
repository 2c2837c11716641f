package crawl

import (
	"testing"

	"signalscout-engine/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func crawlResult(name string, jobs ...domain.JobPosting) domain.CrawlResult {
	r := domain.CrawlResult{Company: domain.CompanyRef{Name: name}, Jobs: jobs}
	if len(jobs) > 0 {
		v := ComputeVelocity(jobs)
		r.Velocity = &v
	}
	return r
}

func TestFilterByHiringPattern_ZeroPatternKeepsEverything(t *testing.T) {
	results := []domain.CrawlResult{
		crawlResult("Alpha", domain.JobPosting{Title: "Engineer"}),
		crawlResult("Beta"),
	}

	out := FilterByHiringPattern(results, HiringPattern{})
	assert.Len(t, out, 2)
}

func TestFilterByHiringPattern_MinOpenings(t *testing.T) {
	results := []domain.CrawlResult{
		crawlResult("Alpha", postings(5)...),
		crawlResult("Beta", postings(2)...),
	}

	out := FilterByHiringPattern(results, HiringPattern{MinOpenings: 3})
	require.Len(t, out, 1)
	assert.Equal(t, "Alpha", out[0].Company.Name)
}

func TestFilterByHiringPattern_CriteriaAndTogether(t *testing.T) {
	engJob := domain.JobPosting{
		Department: domain.DeptEngineering,
		Seniority:  domain.SenioritySenior,
		TechStack:  []string{"go"},
	}
	salesJob := domain.JobPosting{Department: domain.DeptSales, Seniority: domain.SeniorityMid}

	results := []domain.CrawlResult{
		crawlResult("Alpha", engJob, salesJob),
		crawlResult("Beta", salesJob),
	}

	p := HiringPattern{
		Departments: []domain.Department{domain.DeptEngineering},
		TechStack:   []string{"Go"},
	}
	out := FilterByHiringPattern(results, p)
	require.Len(t, out, 1)
	assert.Equal(t, "Alpha", out[0].Company.Name)

	// tightening with a seniority Beta also lacks still keeps Alpha only
	p.Seniorities = []domain.Seniority{domain.SenioritySenior}
	assert.Len(t, FilterByHiringPattern(results, p), 1)

	// a department nobody has filters everything out
	p.Departments = []domain.Department{domain.DeptFinance}
	assert.Empty(t, FilterByHiringPattern(results, p))
}

func TestFilterByHiringPattern_Growth(t *testing.T) {
	results := []domain.CrawlResult{
		crawlResult("Alpha", postings(25)...),
		crawlResult("Beta", postings(4)...),
		crawlResult("Gamma"), // no jobs, no velocity
	}

	out := FilterByHiringPattern(results, HiringPattern{Growth: []domain.GrowthSignal{domain.GrowthAggressive}})
	require.Len(t, out, 1)
	assert.Equal(t, "Alpha", out[0].Company.Name)
}

func TestFilterByHiringPattern_PainPoints(t *testing.T) {
	hit := crawlResult("Alpha", domain.JobPosting{PainPoints: []string{"founding team", "0 to 1"}})
	miss := crawlResult("Beta", domain.JobPosting{Title: "Engineer"})

	out := FilterByHiringPattern([]domain.CrawlResult{hit, miss}, HiringPattern{PainPoints: []string{"founding"}})
	require.Len(t, out, 1)
	assert.Equal(t, "Alpha", out[0].Company.Name)
}
