package crawl

import (
	"strings"

	"signalscout-engine/internal/domain"
)

// HiringPattern is the filter applied between crawling and ranking. Every
// field is optional; set fields AND together.
type HiringPattern struct {
	MinOpenings int
	Departments []domain.Department
	Seniorities []domain.Seniority
	TechStack   []string
	Growth      []domain.GrowthSignal
	PainPoints  []string
}

// FilterByHiringPattern keeps the crawl results matching the pattern. A
// zero-value pattern keeps everything, including results with no jobs.
func FilterByHiringPattern(results []domain.CrawlResult, p HiringPattern) []domain.CrawlResult {
	var out []domain.CrawlResult
	for _, r := range results {
		if matchesPattern(r, p) {
			out = append(out, r)
		}
	}
	return out
}

func matchesPattern(r domain.CrawlResult, p HiringPattern) bool {
	if p.MinOpenings > 0 && len(r.Jobs) < p.MinOpenings {
		return false
	}

	if len(p.Departments) > 0 && !anyDepartment(r.Jobs, p.Departments) {
		return false
	}
	if len(p.Seniorities) > 0 && !anySeniority(r.Jobs, p.Seniorities) {
		return false
	}

	if len(p.TechStack) > 0 && !techOverlaps(r, p.TechStack) {
		return false
	}

	if len(p.Growth) > 0 {
		if r.Velocity == nil {
			return false
		}
		ok := false
		for _, g := range p.Growth {
			if r.Velocity.Growth == g {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}

	if len(p.PainPoints) > 0 && !anyPainPoint(r.Jobs, p.PainPoints) {
		return false
	}

	return true
}

func anyDepartment(jobs []domain.JobPosting, depts []domain.Department) bool {
	for _, j := range jobs {
		for _, d := range depts {
			if j.Department == d {
				return true
			}
		}
	}
	return false
}

func anySeniority(jobs []domain.JobPosting, levels []domain.Seniority) bool {
	for _, j := range jobs {
		for _, s := range levels {
			if j.Seniority == s {
				return true
			}
		}
	}
	return false
}

func techOverlaps(r domain.CrawlResult, wanted []string) bool {
	have := map[string]bool{}
	for _, j := range r.Jobs {
		for _, t := range j.TechStack {
			have[strings.ToLower(t)] = true
		}
	}
	if r.Velocity != nil {
		for _, t := range r.Velocity.TechStack {
			have[strings.ToLower(t)] = true
		}
	}
	for _, w := range wanted {
		if have[strings.ToLower(w)] {
			return true
		}
	}
	return false
}

func anyPainPoint(jobs []domain.JobPosting, wanted []string) bool {
	for _, j := range jobs {
		for _, pp := range j.PainPoints {
			low := strings.ToLower(pp)
			for _, w := range wanted {
				if strings.Contains(low, strings.ToLower(w)) {
					return true
				}
			}
		}
	}
	return false
}
