package research

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"signalscout-engine/internal/crawl"
	"signalscout-engine/internal/domain"
	"signalscout-engine/internal/intent"
	"signalscout-engine/internal/plan"

	"github.com/google/uuid"
)

const maxCandidates = 20

// Engine is the single entry point the rest of the system consumes: parse the
// query, build the plan, execute it, assemble the result. It never fails —
// the worst outcome is a well-formed result with nothing in it.
type Engine struct {
	Parser   *intent.Parser
	Executor *plan.Executor
}

func New(parser *intent.Parser, executor *plan.Executor) *Engine {
	return &Engine{Parser: parser, Executor: executor}
}

// RunResearch executes one full research pass for a query over the given
// companies. onUpdate may be nil; when set it receives progress events as the
// plan advances.
func (e *Engine) RunResearch(ctx context.Context, query string, companies []domain.CompanyRef, onUpdate plan.UpdateFunc) *domain.ResearchResult {
	started := time.Now().UTC()
	log.Printf("[research] query=%q companies=%d", query, len(companies))

	parsed := e.Parser.Parse(query)
	p := plan.Build(parsed, companies, e.Executor.MaxConcurrent)

	out := e.Executor.Execute(ctx, p, parsed, companies, onUpdate)

	candidates := out.Candidates
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	result := &domain.ResearchResult{
		ID:         uuid.NewString(),
		Query:      query,
		Intent:     parsed,
		Plan:       p,
		Trace:      out.Trace,
		Candidates: candidates,
		Signals:    out.Signals,
		Summary:    buildSummary(&out),
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
	}

	log.Printf("[research] done candidates=%d signals=%d qualified=%d in %s",
		len(result.Candidates), len(result.Signals), result.Summary.Qualified,
		result.FinishedAt.Sub(result.StartedAt).Round(time.Millisecond))
	return result
}

func buildSummary(out *plan.Outcome) domain.ResearchSummary {
	s := domain.ResearchSummary{
		CompaniesCrawled: len(out.Crawled),
		TotalJobs:        out.Stats.TotalJobs,
		TotalSignals:     len(out.Signals),
		Qualified:        len(out.Filtered),
	}

	// most frequent signal types across the aggregated set
	typeFreq := map[domain.SignalType]int{}
	for _, sig := range out.Signals {
		typeFreq[sig.Type]++
	}
	types := make([]domain.SignalType, 0, len(typeFreq))
	for t := range typeFreq {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		if typeFreq[types[i]] != typeFreq[types[j]] {
			return typeFreq[types[i]] > typeFreq[types[j]]
		}
		return types[i] < types[j]
	})
	for _, t := range types {
		s.TopSignalTypes = append(s.TopSignalTypes, string(t))
	}

	sum := crawl.SummarizeSignals(out.Crawled)
	s.CommonTechStack = sum.TopTechStack

	s.Insights = insights(out, sum)
	return s
}

func insights(out *plan.Outcome, sum crawl.SignalSummary) []string {
	var lines []string

	if out.Stats.Companies > 0 && out.Stats.WithErrors > 0 {
		lines = append(lines, fmt.Sprintf("%d of %d companies had at least one unreachable source.",
			out.Stats.WithErrors, out.Stats.Companies))
	}
	aggressive := 0
	for _, r := range out.Crawled {
		if r.Velocity != nil && r.Velocity.Growth == domain.GrowthAggressive {
			aggressive++
		}
	}
	if aggressive > 0 {
		lines = append(lines, fmt.Sprintf("%d companies show aggressive hiring velocity.", aggressive))
	}
	if len(sum.TopPainPoints) > 0 {
		lines = append(lines, "Common pain-point language: "+sum.TopPainPoints[0]+".")
	}
	if len(out.SourceErrors) > 0 {
		lines = append(lines, fmt.Sprintf("%d query-source fetches failed; coverage is partial.", len(out.SourceErrors)))
	}
	return lines
}
