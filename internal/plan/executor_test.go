package plan

import (
	"context"
	"testing"

	"signalscout-engine/internal/aggregate"
	"signalscout-engine/internal/crawl"
	"signalscout-engine/internal/domain"
	"signalscout-engine/internal/rank"
	"signalscout-engine/internal/sources/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompanyAdapter struct {
	fetch func(ctx context.Context, company domain.CompanyRef) types.FetchResult
}

func (s *stubCompanyAdapter) Name() string   { return "stub" }
func (s *stubCompanyAdapter) Origin() string { return "stub.example" }

func (s *stubCompanyAdapter) FetchCompany(ctx context.Context, company domain.CompanyRef) types.FetchResult {
	return s.fetch(ctx, company)
}

type stubQueryAdapter struct {
	result types.FetchResult
}

func (s *stubQueryAdapter) Name() string { return "stub-query" }

func (s *stubQueryAdapter) FetchSignals(context.Context, []domain.SignalType) types.FetchResult {
	return s.result
}

func newExecutor(adapter types.CompanyAdapter, queries ...types.QueryAdapter) *Executor {
	return &Executor{
		Orchestrator:  crawl.New(adapter),
		Sources:       queries,
		Aggregator:    aggregate.New(),
		Ranker:        rank.New(),
		MaxConcurrent: 2,
	}
}

func hiringCompanyAdapter(openings int) *stubCompanyAdapter {
	return &stubCompanyAdapter{fetch: func(_ context.Context, c domain.CompanyRef) types.FetchResult {
		jobs := make([]domain.JobPosting, openings)
		for i := range jobs {
			jobs[i] = domain.JobPosting{
				Company:    c.Name,
				Title:      "Software Engineer",
				Department: domain.DeptEngineering,
			}
		}
		return types.FetchResult{Source: "stub", Jobs: jobs}
	}}
}

func TestExecute_HappyPath(t *testing.T) {
	e := newExecutor(hiringCompanyAdapter(5))
	intent := domain.ParsedIntent{
		Criteria: domain.IntentCriteria{
			Hiring: domain.HiringCriteria{Departments: []domain.Department{domain.DeptEngineering}},
		},
	}
	companies := []domain.CompanyRef{{Name: "Acme"}, {Name: "Beta"}}
	p := Build(intent, companies, 2)

	var events []ProgressEvent
	out := e.Execute(context.Background(), p, intent, companies, func(ev ProgressEvent) {
		events = append(events, ev)
	})

	require.Len(t, out.Trace, 3)
	for _, tr := range out.Trace {
		assert.Equal(t, domain.StepCompleted, tr.Status, tr.StepID)
		assert.NotNil(t, tr.StartedAt)
		assert.NotNil(t, tr.FinishedAt)
	}

	assert.Len(t, out.Crawled, 2)
	assert.Len(t, out.Filtered, 2)
	require.Len(t, out.Candidates, 2)
	assert.GreaterOrEqual(t, out.Candidates[0].Score, out.Candidates[1].Score)

	// started+finished per step
	assert.Len(t, events, 6)
	assert.Equal(t, "step_started", events[0].Category)
	assert.Equal(t, "crawl_jobs", events[0].StepID)
	assert.Equal(t, "step_finished", events[5].Category)
	assert.Equal(t, "rank", events[5].StepID)
}

func TestExecute_QuerySourceErrorsDoNotFailTheStep(t *testing.T) {
	broken := &stubQueryAdapter{result: types.FetchResult{
		Source: "stub-query",
		Errs:   []string{"search: api quota exhausted"},
	}}
	e := newExecutor(hiringCompanyAdapter(1), broken)

	intent := domain.ParsedIntent{}
	companies := []domain.CompanyRef{{Name: "Acme"}}
	out := e.Execute(context.Background(), Build(intent, companies, 1), intent, companies, nil)

	assert.Equal(t, domain.StepCompleted, out.Trace[0].Status)
	assert.Contains(t, out.SourceErrors, "search: api quota exhausted")
}

func TestExecute_QuerySourceSignalsAggregated(t *testing.T) {
	feed := &stubQueryAdapter{result: types.FetchResult{
		Source: "stub-query",
		Signals: []domain.RawSignal{
			{CompanyName: "Acme", Type: domain.SignalFunding, SourceURL: "https://a.example/1", Confidence: 0.75},
			{CompanyName: "Acme", Type: domain.SignalFunding, SourceURL: "https://b.example/2", Confidence: 0.7},
		},
	}}
	e := newExecutor(hiringCompanyAdapter(0), feed)

	intent := domain.ParsedIntent{}
	companies := []domain.CompanyRef{{Name: "Acme"}}
	out := e.Execute(context.Background(), Build(intent, companies, 1), intent, companies, nil)

	require.Len(t, out.Signals, 1)
	assert.Equal(t, 2, out.Signals[0].SourceCount)
}

func TestExecute_UnknownStepFailsButDownstreamRuns(t *testing.T) {
	e := newExecutor(hiringCompanyAdapter(1))
	intent := domain.ParsedIntent{}
	companies := []domain.CompanyRef{{Name: "Acme"}}

	p := Build(intent, companies, 1)
	p.Steps[1].Type = "enrich" // not a step the executor knows

	out := e.Execute(context.Background(), p, intent, companies, nil)

	assert.Equal(t, domain.StepCompleted, out.Trace[0].Status)
	assert.Equal(t, domain.StepFailed, out.Trace[1].Status)
	assert.Contains(t, out.Trace[1].Error, "unknown step type")

	// rank still ran over the (empty) filtered set
	assert.Equal(t, domain.StepCompleted, out.Trace[2].Status)
	assert.Empty(t, out.Candidates)
}

func TestExecute_CancelledContextMarksStepsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := newExecutor(hiringCompanyAdapter(1))
	intent := domain.ParsedIntent{}
	companies := []domain.CompanyRef{{Name: "Acme"}}

	out := e.Execute(ctx, Build(intent, companies, 1), intent, companies, nil)

	require.Len(t, out.Trace, 3)
	for _, tr := range out.Trace {
		assert.Equal(t, domain.StepCancelled, tr.Status, tr.StepID)
	}
}

func TestExecute_UnsatisfiableDependency(t *testing.T) {
	e := newExecutor(hiringCompanyAdapter(1))
	intent := domain.ParsedIntent{}
	companies := []domain.CompanyRef{{Name: "Acme"}}

	p := Build(intent, companies, 1)
	p.Steps[2].DependsOn = []string{"no_such_step"}

	out := e.Execute(context.Background(), p, intent, companies, nil)

	assert.Equal(t, domain.StepCompleted, out.Trace[0].Status)
	assert.Equal(t, domain.StepCompleted, out.Trace[1].Status)
	assert.Equal(t, domain.StepFailed, out.Trace[2].Status)
	assert.Equal(t, "unsatisfiable dependencies", out.Trace[2].Error)
}

func TestSignalTypesFor(t *testing.T) {
	base := signalTypesFor(domain.IntentCriteria{})
	assert.Contains(t, base, domain.SignalFunding)
	assert.Contains(t, base, domain.SignalHiring)
	assert.Contains(t, base, domain.SignalExpansion)
	assert.NotContains(t, base, domain.SignalTechAdoption)

	withTech := signalTypesFor(domain.IntentCriteria{TechStack: []string{"go"}})
	assert.Contains(t, withTech, domain.SignalTechAdoption)

	firstHire := signalTypesFor(domain.IntentCriteria{Hiring: domain.HiringCriteria{IsFirstHire: true}})
	assert.Contains(t, firstHire, domain.SignalLeadershipChange)
}
