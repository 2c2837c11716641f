package plan

import (
	"fmt"
	"strings"

	"signalscout-engine/internal/domain"
)

// Build converts parsed intent into the research plan: crawl, filter, rank.
// The plan is a DAG with explicit dependency edges; today's planner emits a
// linear chain, but the executor schedules by the edges, not the order.
func Build(intent domain.ParsedIntent, companies []domain.CompanyRef, maxConcurrent int) domain.ResearchPlan {
	c := intent.Criteria

	crawlDesc := fmt.Sprintf("Crawl %d companies for jobs and signals", len(companies))
	filterDesc := "Filter companies by hiring pattern"
	if len(c.Hiring.Departments) > 0 {
		names := make([]string, len(c.Hiring.Departments))
		for i, d := range c.Hiring.Departments {
			names[i] = string(d)
		}
		filterDesc = "Filter companies hiring in " + strings.Join(names, ", ")
	}

	return domain.ResearchPlan{
		Steps: []domain.ResearchStep{
			{
				ID:          "crawl_jobs",
				Type:        domain.StepCrawlJobs,
				Description: crawlDesc,
				Params: map[string]any{
					"companies":     len(companies),
					"maxConcurrent": maxConcurrent,
				},
			},
			{
				ID:          "filter",
				Type:        domain.StepFilter,
				Description: filterDesc,
				Params: map[string]any{
					"minOpenings": c.Hiring.MinOpenings,
					"departments": c.Hiring.Departments,
					"techStack":   c.TechStack,
				},
				DependsOn: []string{"crawl_jobs"},
			},
			{
				ID:          "rank",
				Type:        domain.StepRank,
				Description: "Score and rank outreach candidates",
				DependsOn:   []string{"filter"},
			},
		},
	}
}
