package crawl

import (
	"signalscout-engine/internal/domain"
	"signalscout-engine/internal/sources/util"
)

// ComputeVelocity rolls job postings up into a hiring posture. Growth bands
// are inclusive on their lower bound: 20+ aggressive, 10+ moderate, 3+
// stable, otherwise contracting.
func ComputeVelocity(jobs []domain.JobPosting) domain.HiringVelocity {
	v := domain.HiringVelocity{
		TotalOpenings: len(jobs),
		ByDepartment:  make(map[domain.Department]int),
		BySeniority:   make(map[domain.Seniority]int),
	}

	var tech []string
	for _, j := range jobs {
		v.ByDepartment[j.Department]++
		v.BySeniority[j.Seniority]++
		tech = append(tech, j.TechStack...)
	}
	v.TechStack = util.Uniq(tech)

	switch {
	case v.TotalOpenings >= 20:
		v.Growth = domain.GrowthAggressive
	case v.TotalOpenings >= 10:
		v.Growth = domain.GrowthModerate
	case v.TotalOpenings >= 3:
		v.Growth = domain.GrowthStable
	default:
		v.Growth = domain.GrowthContracting
	}
	return v
}
