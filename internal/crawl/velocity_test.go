package crawl

import (
	"testing"

	"signalscout-engine/internal/domain"

	"github.com/stretchr/testify/assert"
)

func postings(n int) []domain.JobPosting {
	jobs := make([]domain.JobPosting, n)
	for i := range jobs {
		jobs[i] = domain.JobPosting{Title: "Software Engineer", Department: domain.DeptEngineering}
	}
	return jobs
}

func TestComputeVelocity_GrowthBands(t *testing.T) {
	cases := []struct {
		openings int
		want     domain.GrowthSignal
	}{
		{25, domain.GrowthAggressive},
		{20, domain.GrowthAggressive},
		{19, domain.GrowthModerate},
		{10, domain.GrowthModerate},
		{9, domain.GrowthStable},
		{3, domain.GrowthStable},
		{2, domain.GrowthContracting},
		{0, domain.GrowthContracting},
	}

	for _, tc := range cases {
		v := ComputeVelocity(postings(tc.openings))
		assert.Equal(t, tc.want, v.Growth, "openings=%d", tc.openings)
		assert.Equal(t, tc.openings, v.TotalOpenings)
	}
}

func TestComputeVelocity_Breakdowns(t *testing.T) {
	jobs := []domain.JobPosting{
		{Department: domain.DeptEngineering, Seniority: domain.SenioritySenior, TechStack: []string{"go", "kubernetes"}},
		{Department: domain.DeptEngineering, Seniority: domain.SeniorityMid, TechStack: []string{"go", "postgres"}},
		{Department: domain.DeptSales, Seniority: domain.SeniorityMid},
	}

	v := ComputeVelocity(jobs)

	assert.Equal(t, 2, v.ByDepartment[domain.DeptEngineering])
	assert.Equal(t, 1, v.ByDepartment[domain.DeptSales])
	assert.Equal(t, 2, v.BySeniority[domain.SeniorityMid])
	assert.Equal(t, []string{"go", "kubernetes", "postgres"}, v.TechStack)
}
