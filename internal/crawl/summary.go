package crawl

import (
	"sort"
	"strings"

	"signalscout-engine/internal/domain"
)

// SignalSummary is run-level reporting over a crawl pass; it feeds dashboards
// and the result's summary block, not the ranking path.
type SignalSummary struct {
	CountByType   map[domain.SignalType]int `json:"countByType"`
	ByCompany     map[string]int            `json:"byCompany"`
	TopTechStack  []string                  `json:"topTechStack,omitempty"`
	TopPainPoints []string                  `json:"topPainPoints,omitempty"`
}

const topN = 10

// SummarizeSignals builds the per-run rollup maps.
func SummarizeSignals(results []domain.CrawlResult) SignalSummary {
	s := SignalSummary{
		CountByType: make(map[domain.SignalType]int),
		ByCompany:   make(map[string]int),
	}

	techFreq := map[string]int{}
	painFreq := map[string]int{}

	for _, r := range results {
		for _, sig := range r.Signals {
			s.CountByType[sig.Type]++
			s.ByCompany[strings.ToLower(sig.CompanyName)]++
		}
		for _, j := range r.Jobs {
			for _, t := range j.TechStack {
				techFreq[strings.ToLower(t)]++
			}
			for _, p := range j.PainPoints {
				painFreq[strings.ToLower(p)]++
			}
		}
	}

	s.TopTechStack = topTerms(techFreq, topN)
	s.TopPainPoints = topTerms(painFreq, topN)
	return s
}

func topTerms(freq map[string]int, n int) []string {
	terms := make([]string, 0, len(freq))
	for t := range freq {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if freq[terms[i]] != freq[terms[j]] {
			return freq[terms[i]] > freq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > n {
		terms = terms[:n]
	}
	return terms
}
