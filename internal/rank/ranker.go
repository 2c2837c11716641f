package rank

import (
	"fmt"
	"sort"
	"strings"

	"signalscout-engine/internal/domain"
)

// Scorer turns one crawl result into a ranked candidate. Implementations must
// be pure: same inputs, same reasoning.
type Scorer interface {
	ReasonAboutCandidate(result domain.CrawlResult, criteria domain.IntentCriteria) domain.CandidateReasoning
}

const (
	baseScore = 50

	bonusDeptMatch      = 15
	bonusTechOverlap    = 10
	bonusAggressive     = 20
	bonusModerate       = 10
	bonusFirstTeam      = 15
	bonusAnyPainPoint   = 5
)

// Ranker is the fixed-weight heuristic scorer.
type Ranker struct{}

func New() *Ranker { return &Ranker{} }

// ReasonAboutCandidate scores one company against the parsed criteria,
// attaching evidence for every matched criterion. Scores clamp to [0,100].
func (r *Ranker) ReasonAboutCandidate(result domain.CrawlResult, criteria domain.IntentCriteria) domain.CandidateReasoning {
	score := baseScore
	var matched []domain.MatchedCriterion
	var unmatched []string
	var whyParts []string

	// hiring-department match
	if len(criteria.Hiring.Departments) > 0 {
		if job, dept, ok := firstDeptMatch(result.Jobs, criteria.Hiring.Departments); ok {
			score += bonusDeptMatch
			matched = append(matched, domain.MatchedCriterion{
				Criterion: fmt.Sprintf("hiring in %s", dept),
				Evidence:  fmt.Sprintf("open role: %s", job.Title),
				Source:    job.Source,
				SourceURL: job.SourceURL,
			})
		} else {
			unmatched = append(unmatched, "hiring in requested departments")
		}
	}

	// tech-stack overlap
	if len(criteria.TechStack) > 0 {
		if term, evidence, ok := techMatch(result, criteria.TechStack); ok {
			score += bonusTechOverlap
			matched = append(matched, domain.MatchedCriterion{
				Criterion: fmt.Sprintf("uses %s", term),
				Evidence:  evidence,
				Source:    domain.SourceJobBoard,
			})
		} else {
			unmatched = append(unmatched, "requested tech stack")
		}
	}

	// hiring velocity
	if result.Velocity != nil {
		switch result.Velocity.Growth {
		case domain.GrowthAggressive:
			score += bonusAggressive
			matched = append(matched, domain.MatchedCriterion{
				Criterion: "aggressive hiring",
				Evidence:  fmt.Sprintf("%d open roles", result.Velocity.TotalOpenings),
				Source:    domain.SourceJobBoard,
			})
			whyParts = append(whyParts, "is hiring aggressively")
		case domain.GrowthModerate:
			score += bonusModerate
			matched = append(matched, domain.MatchedCriterion{
				Criterion: "moderate hiring growth",
				Evidence:  fmt.Sprintf("%d open roles", result.Velocity.TotalOpenings),
				Source:    domain.SourceJobBoard,
			})
		}
	}

	// pain points
	firstTeam, anyPain, painEvidence := painPointSignals(result.Jobs)
	if firstTeam {
		score += bonusFirstTeam
		matched = append(matched, domain.MatchedCriterion{
			Criterion: "building first team",
			Evidence:  painEvidence,
			Source:    domain.SourceJobBoard,
		})
		whyParts = append(whyParts, "is building out a first team")
	}
	if anyPain {
		score += bonusAnyPainPoint
		if !firstTeam {
			whyParts = append(whyParts, "mentions scaling challenges in job posts")
		}
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	whyNow := fmt.Sprintf("%s %s.", result.Company.Name, strings.Join(whyParts, " and "))
	if len(whyParts) == 0 {
		whyNow = fmt.Sprintf("%s is actively hiring and shows buying intent.", result.Company.Name)
	}

	return domain.CandidateReasoning{
		Company:   result.Company,
		Score:     score,
		Bucket:    bucket(score, len(matched)),
		Matched:   matched,
		Unmatched: unmatched,
		WhyNow:    whyNow,
		Summary:   summarize(result, score, matched),
	}
}

// Rank scores every result and orders by descending score, name as
// tiebreaker.
func (r *Ranker) Rank(results []domain.CrawlResult, criteria domain.IntentCriteria) []domain.CandidateReasoning {
	out := make([]domain.CandidateReasoning, 0, len(results))
	for _, res := range results {
		out = append(out, r.ReasonAboutCandidate(res, criteria))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Company.Name < out[j].Company.Name
	})
	return out
}

func bucket(score, matchedCount int) domain.ConfidenceBucket {
	switch {
	case matchedCount >= 3 && score >= 75:
		return domain.ConfidenceHigh
	case matchedCount <= 1 || score < 50:
		return domain.ConfidenceLow
	default:
		return domain.ConfidenceMedium
	}
}

func firstDeptMatch(jobs []domain.JobPosting, depts []domain.Department) (domain.JobPosting, domain.Department, bool) {
	for _, j := range jobs {
		for _, d := range depts {
			if j.Department == d {
				return j, d, true
			}
		}
	}
	return domain.JobPosting{}, "", false
}

func techMatch(result domain.CrawlResult, wanted []string) (term, evidence string, ok bool) {
	for _, j := range result.Jobs {
		for _, have := range j.TechStack {
			for _, w := range wanted {
				if strings.EqualFold(have, w) {
					return w, fmt.Sprintf("%q mentions %s", j.Title, have), true
				}
			}
		}
	}
	return "", "", false
}

func painPointSignals(jobs []domain.JobPosting) (firstTeam, anyPain bool, evidence string) {
	for _, j := range jobs {
		for _, p := range j.PainPoints {
			anyPain = true
			low := strings.ToLower(p)
			if strings.Contains(low, "first") || strings.Contains(low, "founding") {
				firstTeam = true
				evidence = fmt.Sprintf("%q: %s", j.Title, p)
			}
		}
	}
	if evidence == "" && anyPain {
		evidence = "pain-point language in job posts"
	}
	return firstTeam, anyPain, evidence
}

func summarize(result domain.CrawlResult, score int, matched []domain.MatchedCriterion) string {
	openings := len(result.Jobs)
	reasons := make([]string, 0, len(matched))
	for _, m := range matched {
		reasons = append(reasons, m.Criterion)
	}
	if len(reasons) == 0 {
		return fmt.Sprintf("%s scored %d with %d open roles and no criteria matched.",
			result.Company.Name, score, openings)
	}
	return fmt.Sprintf("%s scored %d with %d open roles; matched: %s.",
		result.Company.Name, score, openings, strings.Join(reasons, "; "))
}
