package domain

import "time"

// Department buckets for normalized job postings.
type Department string

const (
	DeptEngineering Department = "engineering"
	DeptSales       Department = "sales"
	DeptMarketing   Department = "marketing"
	DeptProduct     Department = "product"
	DeptOperations  Department = "operations"
	DeptFinance     Department = "finance"
	DeptHR          Department = "hr"
	DeptOther       Department = "other"
)

// Seniority bands, roughly junior to senior.
type Seniority string

const (
	SeniorityIntern   Seniority = "intern"
	SeniorityJunior   Seniority = "junior"
	SeniorityMid      Seniority = "mid"
	SenioritySenior   Seniority = "senior"
	SeniorityStaff    Seniority = "staff"
	SeniorityManager  Seniority = "manager"
	SeniorityDirector Seniority = "director"
	SeniorityVP       Seniority = "vp"
	SeniorityCLevel   Seniority = "c_level"
)

// JobPosting is a normalized job-board listing used for hiring-velocity
// analysis.
type JobPosting struct {
	ID         string     `json:"id"`
	Company    string     `json:"company"`
	Domain     string     `json:"domain,omitempty"`
	Title      string     `json:"title"`
	Department Department `json:"department"`
	Seniority  Seniority  `json:"seniority"`
	Location   string     `json:"location,omitempty"`
	Remote     bool       `json:"remote"`
	TechStack  []string   `json:"techStack,omitempty"`
	PainPoints []string   `json:"painPoints,omitempty"`
	PostedAt   *time.Time `json:"postedAt,omitempty"`
	Source     SourceKind `json:"source"`
	SourceURL  string     `json:"sourceUrl"`
}

// GrowthSignal is a coarse classification of hiring posture.
type GrowthSignal string

const (
	GrowthAggressive  GrowthSignal = "aggressive"
	GrowthModerate    GrowthSignal = "moderate"
	GrowthStable      GrowthSignal = "stable"
	GrowthContracting GrowthSignal = "contracting"
)

// HiringVelocity summarizes a company's open roles.
type HiringVelocity struct {
	TotalOpenings int                `json:"totalOpenings"`
	ByDepartment  map[Department]int `json:"byDepartment"`
	BySeniority   map[Seniority]int  `json:"bySeniority"`
	Growth        GrowthSignal       `json:"growth"`
	TechStack     []string           `json:"techStack,omitempty"`
}
