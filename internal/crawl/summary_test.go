package crawl

import (
	"testing"

	"signalscout-engine/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeSignals(t *testing.T) {
	results := []domain.CrawlResult{
		{
			Signals: []domain.RawSignal{
				{Type: domain.SignalFunding, CompanyName: "Acme"},
				{Type: domain.SignalFunding, CompanyName: "acme"},
				{Type: domain.SignalHiring, CompanyName: "Beta"},
			},
			Jobs: []domain.JobPosting{
				{TechStack: []string{"go", "kubernetes"}, PainPoints: []string{"rapid growth"}},
				{TechStack: []string{"go"}},
			},
		},
	}

	s := SummarizeSignals(results)

	assert.Equal(t, 2, s.CountByType[domain.SignalFunding])
	assert.Equal(t, 1, s.CountByType[domain.SignalHiring])
	assert.Equal(t, 2, s.ByCompany["acme"], "company rollup is case-insensitive")
	assert.Equal(t, []string{"go", "kubernetes"}, s.TopTechStack, "frequency desc, then name asc")
	assert.Equal(t, []string{"rapid growth"}, s.TopPainPoints)
}

func TestSummarizeSignals_Empty(t *testing.T) {
	s := SummarizeSignals(nil)
	assert.Empty(t, s.CountByType)
	assert.Empty(t, s.TopTechStack)
}
