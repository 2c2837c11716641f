package domain

import "time"

// HiringCriteria narrows which hiring activity a query cares about.
type HiringCriteria struct {
	Departments []Department `json:"departments,omitempty"`
	Seniorities []Seniority  `json:"seniorities,omitempty"`
	IsFirstHire bool         `json:"isFirstHire,omitempty"`
	MinOpenings int          `json:"minOpenings,omitempty"`
}

// IntentCriteria is the structured interpretation of a free-text query.
type IntentCriteria struct {
	CompanyType   string         `json:"companyType,omitempty"`
	FundingStages []string       `json:"fundingStages,omitempty"`
	TechStack     []string       `json:"techStack,omitempty"`
	Hiring        HiringCriteria `json:"hiring"`
	RecencyDays   int            `json:"recencyDays,omitempty"`
}

// ParsedIntent is the output of the rule-based query parser.
type ParsedIntent struct {
	Query         string         `json:"query"`
	Understanding string         `json:"understanding"`
	Criteria      IntentCriteria `json:"criteria"`
	Confidence    float64        `json:"confidence"`
}

// StepType enumerates the kinds of research-plan steps.
type StepType string

const (
	StepCrawlJobs StepType = "crawl_jobs"
	StepFilter    StepType = "filter"
	StepRank      StepType = "rank"
)

// ResearchStep is one node in a research plan. DependsOn names step ids that
// must complete before this step may run.
type ResearchStep struct {
	ID          string         `json:"id"`
	Type        StepType       `json:"type"`
	Description string         `json:"description"`
	Params      map[string]any `json:"params,omitempty"`
	DependsOn   []string       `json:"dependsOn,omitempty"`
}

// ResearchPlan is immutable once built.
type ResearchPlan struct {
	Steps []ResearchStep `json:"steps"`
}

// StepStatus is the executor's view of one step's lifecycle.
type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepRunning   StepStatus = "running"
	StepCompleted StepStatus = "completed"
	StepFailed    StepStatus = "failed"
	StepCancelled StepStatus = "cancelled"
)

// StepTrace records how one step went.
type StepTrace struct {
	StepID     string     `json:"stepId"`
	Status     StepStatus `json:"status"`
	StartedAt  *time.Time `json:"startedAt,omitempty"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// MatchedCriterion ties a query criterion to the evidence that satisfied it.
type MatchedCriterion struct {
	Criterion string     `json:"criterion"`
	Evidence  string     `json:"evidence"`
	Source    SourceKind `json:"source"`
	SourceURL string     `json:"sourceUrl,omitempty"`
}

// ConfidenceBucket is a coarse trust grade on a ranked candidate.
type ConfidenceBucket string

const (
	ConfidenceHigh   ConfidenceBucket = "high"
	ConfidenceMedium ConfidenceBucket = "medium"
	ConfidenceLow    ConfidenceBucket = "low"
)

// CandidateReasoning is one ranked, presentation-ready outreach candidate.
type CandidateReasoning struct {
	Company   CompanyRef         `json:"company"`
	Score     int                `json:"score"`
	Bucket    ConfidenceBucket   `json:"bucket"`
	Matched   []MatchedCriterion `json:"matched,omitempty"`
	Unmatched []string           `json:"unmatched,omitempty"`
	WhyNow    string             `json:"whyNow"`
	Summary   string             `json:"summary"`
}

// ResearchSummary is the run-level rollup attached to a result.
type ResearchSummary struct {
	CompaniesCrawled int      `json:"companiesCrawled"`
	TotalJobs        int      `json:"totalJobs"`
	TotalSignals     int      `json:"totalSignals"`
	Qualified        int      `json:"qualified"`
	TopSignalTypes   []string `json:"topSignalTypes,omitempty"`
	CommonTechStack  []string `json:"commonTechStack,omitempty"`
	Insights         []string `json:"insights,omitempty"`
}

// ResearchResult is everything one run produced.
type ResearchResult struct {
	ID         string               `json:"id"`
	Query      string               `json:"query"`
	Intent     ParsedIntent         `json:"intent"`
	Plan       ResearchPlan         `json:"plan"`
	Trace      []StepTrace          `json:"trace"`
	Candidates []CandidateReasoning `json:"candidates"`
	Signals    []AggregatedSignal   `json:"signals,omitempty"`
	Summary    ResearchSummary      `json:"summary"`
	StartedAt  time.Time            `json:"startedAt"`
	FinishedAt time.Time            `json:"finishedAt"`
}
