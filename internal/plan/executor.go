package plan

import (
	"context"
	"fmt"
	"log"
	"time"

	"signalscout-engine/internal/aggregate"
	"signalscout-engine/internal/crawl"
	"signalscout-engine/internal/domain"
	"signalscout-engine/internal/rank"
	"signalscout-engine/internal/sources/types"
)

// ProgressEvent is what the executor streams to a caller-supplied callback.
// Purely observational: dropping every event changes nothing about the run.
type ProgressEvent struct {
	StepID      string `json:"stepId"`
	Category    string `json:"category"` // step_started | step_finished | step_failed
	Title       string `json:"title"`
	Description string `json:"description"`
	Percent     int    `json:"percent"`
}

type UpdateFunc func(ProgressEvent)

// Outcome carries everything the steps accumulated, complete or not.
type Outcome struct {
	Trace        []domain.StepTrace
	Crawled      []domain.CrawlResult
	Filtered     []domain.CrawlResult
	Signals      []domain.AggregatedSignal
	Candidates   []domain.CandidateReasoning
	Stats        crawl.BatchStats
	SourceErrors []string
}

// Executor runs plan steps in dependency order. A failed step is recorded and
// skipped past; downstream steps run on whatever partial state exists.
type Executor struct {
	Orchestrator  *crawl.Orchestrator
	Sources       []types.QueryAdapter
	Aggregator    *aggregate.Engine
	Ranker        *rank.Ranker
	MaxConcurrent int
}

func (e *Executor) Execute(ctx context.Context, p domain.ResearchPlan, intent domain.ParsedIntent, companies []domain.CompanyRef, onUpdate UpdateFunc) Outcome {
	emit := func(ev ProgressEvent) {
		if onUpdate != nil {
			onUpdate(ev)
		}
	}

	out := Outcome{Trace: make([]domain.StepTrace, len(p.Steps))}
	for i, s := range p.Steps {
		out.Trace[i] = domain.StepTrace{StepID: s.ID, Status: domain.StepPending}
	}

	settled := map[string]bool{}
	total := len(p.Steps)
	done := 0

	for done < total {
		idx := nextReady(p.Steps, out.Trace, settled)
		if idx < 0 {
			// remaining steps have unsatisfiable deps (cycle or unknown id)
			for i := range out.Trace {
				if out.Trace[i].Status == domain.StepPending {
					out.Trace[i].Status = domain.StepFailed
					out.Trace[i].Error = "unsatisfiable dependencies"
					done++
				}
			}
			break
		}

		step := p.Steps[idx]

		if ctx.Err() != nil {
			out.Trace[idx].Status = domain.StepCancelled
			settled[step.ID] = true
			done++
			continue
		}

		started := time.Now().UTC()
		out.Trace[idx].Status = domain.StepRunning
		out.Trace[idx].StartedAt = &started
		emit(ProgressEvent{
			StepID:      step.ID,
			Category:    "step_started",
			Title:       string(step.Type),
			Description: step.Description,
			Percent:     done * 100 / total,
		})

		err := e.runStep(ctx, step, intent, companies, &out)

		finished := time.Now().UTC()
		out.Trace[idx].FinishedAt = &finished
		settled[step.ID] = true
		done++

		if err != nil {
			if ctx.Err() != nil {
				out.Trace[idx].Status = domain.StepCancelled
			} else {
				out.Trace[idx].Status = domain.StepFailed
				out.Trace[idx].Error = err.Error()
			}
			log.Printf("[plan] step=%s failed: %v", step.ID, err)
			emit(ProgressEvent{
				StepID:      step.ID,
				Category:    "step_failed",
				Title:       string(step.Type),
				Description: err.Error(),
				Percent:     done * 100 / total,
			})
			continue
		}

		out.Trace[idx].Status = domain.StepCompleted
		emit(ProgressEvent{
			StepID:      step.ID,
			Category:    "step_finished",
			Title:       string(step.Type),
			Description: stepResultLine(step, &out),
			Percent:     done * 100 / total,
		})
	}

	return out
}

// nextReady picks the first pending step whose dependencies have all settled
// (completed, failed, or cancelled — failure does not block dependents).
func nextReady(steps []domain.ResearchStep, trace []domain.StepTrace, settled map[string]bool) int {
	for i, s := range steps {
		if trace[i].Status != domain.StepPending {
			continue
		}
		ready := true
		for _, dep := range s.DependsOn {
			if !settled[dep] {
				ready = false
				break
			}
		}
		if ready {
			return i
		}
	}
	return -1
}

func (e *Executor) runStep(ctx context.Context, step domain.ResearchStep, intent domain.ParsedIntent, companies []domain.CompanyRef, out *Outcome) error {
	switch step.Type {
	case domain.StepCrawlJobs:
		results, stats := e.Orchestrator.BatchCrawlCompanies(ctx, companies, e.MaxConcurrent)
		out.Crawled = results
		out.Stats = stats

		var raws []domain.RawSignal
		for _, r := range results {
			raws = append(raws, r.Signals...)
		}

		wanted := signalTypesFor(intent.Criteria)
		for _, src := range e.Sources {
			fr := src.FetchSignals(ctx, wanted)
			raws = append(raws, fr.Signals...)
			out.SourceErrors = append(out.SourceErrors, fr.Errs...)
		}

		out.Signals = e.Aggregator.Aggregate(raws)
		return ctx.Err()

	case domain.StepFilter:
		c := intent.Criteria
		pattern := crawl.HiringPattern{
			MinOpenings: c.Hiring.MinOpenings,
			Departments: c.Hiring.Departments,
			Seniorities: c.Hiring.Seniorities,
			TechStack:   c.TechStack,
		}
		out.Filtered = crawl.FilterByHiringPattern(out.Crawled, pattern)
		return nil

	case domain.StepRank:
		out.Candidates = e.Ranker.Rank(out.Filtered, intent.Criteria)
		return nil

	default:
		return fmt.Errorf("unknown step type %q", step.Type)
	}
}

// signalTypesFor picks which signal kinds the query-targeted sources should
// chase. Funding and hiring always matter for outreach timing; the rest are
// added when the criteria hint at them.
func signalTypesFor(c domain.IntentCriteria) []domain.SignalType {
	wanted := []domain.SignalType{domain.SignalFunding, domain.SignalHiring}
	if len(c.TechStack) > 0 {
		wanted = append(wanted, domain.SignalTechAdoption)
	}
	if c.Hiring.IsFirstHire || len(c.Hiring.Seniorities) > 0 {
		wanted = append(wanted, domain.SignalLeadershipChange)
	}
	wanted = append(wanted, domain.SignalExpansion)
	return wanted
}

func stepResultLine(step domain.ResearchStep, out *Outcome) string {
	switch step.Type {
	case domain.StepCrawlJobs:
		return fmt.Sprintf("crawled %d companies, %d jobs, %d aggregated signals",
			len(out.Crawled), out.Stats.TotalJobs, len(out.Signals))
	case domain.StepFilter:
		return fmt.Sprintf("%d of %d companies match", len(out.Filtered), len(out.Crawled))
	case domain.StepRank:
		return fmt.Sprintf("ranked %d candidates", len(out.Candidates))
	}
	return step.Description
}
