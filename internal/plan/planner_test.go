package plan

import (
	"testing"

	"signalscout-engine/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_PlanShape(t *testing.T) {
	intent := domain.ParsedIntent{Query: "fintech companies hiring engineers"}
	companies := []domain.CompanyRef{{Name: "Acme"}, {Name: "Beta"}}

	p := Build(intent, companies, 3)

	require.Len(t, p.Steps, 3)

	assert.Equal(t, "crawl_jobs", p.Steps[0].ID)
	assert.Equal(t, domain.StepCrawlJobs, p.Steps[0].Type)
	assert.Empty(t, p.Steps[0].DependsOn)
	assert.Equal(t, 2, p.Steps[0].Params["companies"])
	assert.Equal(t, 3, p.Steps[0].Params["maxConcurrent"])

	assert.Equal(t, "filter", p.Steps[1].ID)
	assert.Equal(t, []string{"crawl_jobs"}, p.Steps[1].DependsOn)

	assert.Equal(t, "rank", p.Steps[2].ID)
	assert.Equal(t, []string{"filter"}, p.Steps[2].DependsOn)
}

func TestBuild_FilterDescriptionNamesDepartments(t *testing.T) {
	intent := domain.ParsedIntent{
		Criteria: domain.IntentCriteria{
			Hiring: domain.HiringCriteria{
				Departments: []domain.Department{domain.DeptSales, domain.DeptEngineering},
			},
		},
	}

	p := Build(intent, nil, 3)
	assert.Equal(t, "Filter companies hiring in sales, engineering", p.Steps[1].Description)
}
