package intent

import (
	"fmt"
	"strings"

	"signalscout-engine/internal/domain"
)

// Parser turns a free-text query into structured criteria. Rule-based on
// purpose: the vocabulary is small and auditable, and the fixed confidence is
// an admission of heuristic uncertainty, not a learned score.
type Parser struct{}

func NewParser() *Parser { return &Parser{} }

const (
	confidenceDetected = 0.8
	confidenceFallback = 0.5
)

var companyTypes = []string{
	"saas", "fintech", "healthtech", "edtech", "devtools", "e-commerce",
	"ecommerce", "marketplace", "biotech", "cybersecurity", "ai startup",
	"startup",
}

var fundingStages = []string{
	"pre-seed", "seed", "series a", "series b", "series c", "series d",
	"growth stage", "late stage",
}

var techTerms = []string{
	"go", "golang", "python", "typescript", "react", "kubernetes", "aws",
	"gcp", "azure", "postgres", "kafka", "snowflake", "salesforce", "hubspot",
	"machine learning", "llm",
}

var deptWords = []struct {
	word string
	dept domain.Department
}{
	{"engineering", domain.DeptEngineering},
	{"engineer", domain.DeptEngineering},
	{"engineers", domain.DeptEngineering},
	{"developer", domain.DeptEngineering},
	{"developers", domain.DeptEngineering},
	{"sales", domain.DeptSales},
	{"marketing", domain.DeptMarketing},
	{"product", domain.DeptProduct},
	{"operations", domain.DeptOperations},
	{"finance", domain.DeptFinance},
	{"recruiting", domain.DeptHR},
	{"recruiters", domain.DeptHR},
	{"hr", domain.DeptHR},
}

var seniorityWords = []struct {
	word  string
	level domain.Seniority
}{
	{"intern", domain.SeniorityIntern},
	{"junior", domain.SeniorityJunior},
	{"senior", domain.SenioritySenior},
	{"staff", domain.SeniorityStaff},
	{"manager", domain.SeniorityManager},
	{"director", domain.SeniorityDirector},
	{"vp", domain.SeniorityVP},
	{"executive", domain.SeniorityCLevel},
	{"c-level", domain.SeniorityCLevel},
}

// Parse extracts whatever criteria the query mentions and composes a
// human-readable understanding sentence from what was detected.
func (p *Parser) Parse(query string) domain.ParsedIntent {
	low := strings.ToLower(query)
	var c domain.IntentCriteria
	var parts []string

	for _, ct := range companyTypes {
		if strings.Contains(low, ct) {
			c.CompanyType = ct
			parts = append(parts, ct+" companies")
			break
		}
	}

	for _, stage := range fundingStages {
		if strings.Contains(low, stage) {
			c.FundingStages = append(c.FundingStages, stage)
		}
	}
	if len(c.FundingStages) > 0 {
		parts = append(parts, "funding stage "+strings.Join(c.FundingStages, "/"))
	}

	for _, t := range techTerms {
		if containsWord(low, t) {
			c.TechStack = append(c.TechStack, t)
		}
	}
	if len(c.TechStack) > 0 {
		parts = append(parts, "using "+strings.Join(c.TechStack, ", "))
	}

	for _, dw := range deptWords {
		if containsWord(low, dw.word) && !hasDept(c.Hiring.Departments, dw.dept) {
			c.Hiring.Departments = append(c.Hiring.Departments, dw.dept)
		}
	}
	for _, sw := range seniorityWords {
		if containsWord(low, sw.word) && !hasSeniority(c.Hiring.Seniorities, sw.level) {
			c.Hiring.Seniorities = append(c.Hiring.Seniorities, sw.level)
		}
	}
	if len(c.Hiring.Departments) > 0 {
		names := make([]string, len(c.Hiring.Departments))
		for i, d := range c.Hiring.Departments {
			names[i] = string(d)
		}
		parts = append(parts, "hiring in "+strings.Join(names, ", "))
	}

	if strings.Contains(low, "first hire") || strings.Contains(low, "first sales hire") ||
		strings.Contains(low, "first engineering hire") || strings.Contains(low, "founding") {
		c.Hiring.IsFirstHire = true
		parts = append(parts, "making a first hire")
	}

	if strings.Contains(low, "hiring spree") || strings.Contains(low, "aggressively hiring") ||
		strings.Contains(low, "scaling fast") {
		c.Hiring.MinOpenings = 10
		parts = append(parts, "with many openings")
	}

	c.RecencyDays = recencyWindow(low)
	if c.RecencyDays > 0 {
		parts = append(parts, fmt.Sprintf("within the last %d days", c.RecencyDays))
	}

	understanding := "Looking for companies"
	if len(parts) > 0 {
		understanding = "Looking for " + strings.Join(parts, ", ")
	}

	conf := confidenceFallback
	if len(parts) > 0 {
		conf = confidenceDetected
	}

	return domain.ParsedIntent{
		Query:         query,
		Understanding: understanding,
		Criteria:      c,
		Confidence:    conf,
	}
}

func recencyWindow(low string) int {
	switch {
	case strings.Contains(low, "last 6 months") || strings.Contains(low, "past 6 months"):
		return 180
	case strings.Contains(low, "last 3 months") || strings.Contains(low, "past 3 months") ||
		strings.Contains(low, "last quarter"):
		return 90
	case strings.Contains(low, "this month") || strings.Contains(low, "last 30 days"):
		return 30
	case strings.Contains(low, "recently") || strings.Contains(low, "recent") ||
		strings.Contains(low, "just "):
		return 30
	case strings.Contains(low, "this week") || strings.Contains(low, "last week"):
		return 7
	}
	return 0
}

func containsWord(blob, w string) bool {
	padded := " " + blob + " "
	return strings.Contains(padded, " "+w+" ") || strings.Contains(padded, " "+w+",") ||
		strings.Contains(padded, " "+w+".")
}

func hasDept(list []domain.Department, d domain.Department) bool {
	for _, have := range list {
		if have == d {
			return true
		}
	}
	return false
}

func hasSeniority(list []domain.Seniority, s domain.Seniority) bool {
	for _, have := range list {
		if have == s {
			return true
		}
	}
	return false
}
