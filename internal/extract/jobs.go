package extract

import (
	"strings"

	"signalscout-engine/internal/domain"
)

var deptKeywords = []struct {
	dept  domain.Department
	words []string
}{
	{domain.DeptEngineering, []string{"engineer", "developer", "sre", "devops", "architect", "data scientist", "security"}},
	{domain.DeptSales, []string{"sales", "account executive", "account manager", "business development", "sdr", "bdr"}},
	{domain.DeptMarketing, []string{"marketing", "growth", "content", "brand", "seo", "demand gen"}},
	{domain.DeptProduct, []string{"product manager", "product owner", "product designer", "ux", "ui designer"}},
	{domain.DeptOperations, []string{"operations", "supply chain", "logistics", "office manager", "support", "customer success"}},
	{domain.DeptFinance, []string{"finance", "accountant", "accounting", "controller", "payroll", "fp&a"}},
	{domain.DeptHR, []string{"recruiter", "people ops", "talent", "human resources", "hr "}},
}

// Department buckets a job title; unknown titles land in "other".
func Department(title string) domain.Department {
	low := strings.ToLower(title)
	for _, dk := range deptKeywords {
		for _, w := range dk.words {
			if strings.Contains(low, w) {
				return dk.dept
			}
		}
	}
	return domain.DeptOther
}

var seniorityKeywords = []struct {
	level domain.Seniority
	words []string
}{
	{domain.SeniorityCLevel, []string{"ceo", "cto", "cfo", "coo", "chief "}},
	{domain.SeniorityVP, []string{"vp ", "vp,", "vice president"}},
	{domain.SeniorityDirector, []string{"director", "head of"}},
	{domain.SeniorityManager, []string{"manager", "lead "}},
	{domain.SeniorityStaff, []string{"staff", "principal"}},
	{domain.SenioritySenior, []string{"senior", "sr.", "sr "}},
	{domain.SeniorityJunior, []string{"junior", "jr.", "jr ", "entry level", "entry-level", "graduate"}},
	{domain.SeniorityIntern, []string{"intern"}},
}

// Seniority buckets a job title; the default band is "mid".
func Seniority(title string) domain.Seniority {
	low := strings.ToLower(title)
	for _, sk := range seniorityKeywords {
		for _, w := range sk.words {
			if strings.Contains(low, w) {
				return sk.level
			}
		}
	}
	return domain.SeniorityMid
}

// Fixed tech vocabulary. Matching is exact-word-ish (substring on a padded
// blob) which is good enough for job descriptions.
var techVocabulary = []string{
	"go", "golang", "python", "typescript", "javascript", "rust", "java",
	"react", "node", "kubernetes", "docker", "terraform", "aws", "gcp",
	"azure", "postgres", "postgresql", "mysql", "redis", "kafka",
	"elasticsearch", "graphql", "grpc", "snowflake", "spark", "airflow",
	"salesforce", "hubspot", "datadog", "machine learning", "llm",
}

// TechTerms scans text for the fixed tech vocabulary.
func TechTerms(text string) []string {
	blob := " " + strings.ToLower(text) + " "
	var out []string
	for _, term := range techVocabulary {
		if strings.Contains(blob, " "+term+" ") || strings.Contains(blob, " "+term+",") ||
			strings.Contains(blob, " "+term+".") || strings.Contains(blob, "("+term+")") {
			out = append(out, term)
		}
	}
	return out
}

var painPointPhrases = []string{
	"building our first", "building the first", "first hire", "founding team",
	"ground floor", "wear many hats", "scaling challenges", "scale our",
	"rapid growth", "growing quickly", "0 to 1", "zero to one",
	"greenfield", "move fast",
}

// PainPoints returns the pain-point phrases present in text.
func PainPoints(text string) []string {
	low := strings.ToLower(text)
	var out []string
	for _, p := range painPointPhrases {
		if strings.Contains(low, p) {
			out = append(out, p)
		}
	}
	return out
}
