package extract

import (
	"regexp"
	"strings"

	"signalscout-engine/internal/domain"
)

var typeKeywords = map[domain.SignalType][]string{
	domain.SignalFunding: {
		"raises", "raised", "funding round", "series a", "series b", "series c",
		"seed round", "seed funding", "secures investment", "closes round",
	},
	domain.SignalHiring: {
		"is hiring", "hiring spree", "open roles", "job openings", "recruiting",
		"grows headcount", "now hiring",
	},
	domain.SignalProductLaunch: {
		"launches", "launched", "unveils", "introduces", "general availability",
		"announces the launch",
	},
	domain.SignalLeadershipChange: {
		"appoints", "names new", "joins as", "steps down", "new ceo", "new cto",
		"new cfo", "promotes",
	},
	domain.SignalExpansion: {
		"expands", "expansion", "opens office", "opens new office",
		"enters the", "new headquarters",
	},
	domain.SignalPartnership: {
		"partners with", "partnership", "teams up with", "joins forces",
	},
	domain.SignalAcquisition: {
		"acquires", "acquired", "acquisition", "merges with", "to acquire",
	},
	domain.SignalTechAdoption: {
		"adopts", "migrates to", "standardizes on", "built on", "powered by",
	},
}

// Classify returns every signal type whose keyword vocabulary matches the
// text, in no particular order. Empty means unclassifiable.
func Classify(text string) []domain.SignalType {
	low := strings.ToLower(text)
	var out []domain.SignalType
	for typ, words := range typeKeywords {
		for _, w := range words {
			if strings.Contains(low, w) {
				out = append(out, typ)
				break
			}
		}
	}
	return out
}

// Matches reports whether text classifies as the given type.
func Matches(text string, typ domain.SignalType) bool {
	low := strings.ToLower(text)
	for _, w := range typeKeywords[typ] {
		if strings.Contains(low, w) {
			return true
		}
	}
	return false
}

// companyRe matches "CompanyName raises/launches/announces/..." sentence
// templates. Unattributable items are dropped by callers, not defaulted.
var companyRe = regexp.MustCompile(`(?:^|[.!?]\s+)([A-Z][\w&.\-]*(?:\s+[A-Z][\w&.\-]*){0,3}?)\s+(?:raises|raised|launches|launched|announces|announced|hires|is hiring|expands|partners|acquires|acquired|appoints|names|unveils|secures)\b`)

// CompanyName extracts the subject company from a headline-style sentence.
// Returns "" when no template matches.
func CompanyName(text string) string {
	m := companyRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	name := strings.TrimSpace(m[1])
	switch strings.ToLower(name) {
	case "the", "a", "an", "this", "it", "why", "how", "breaking":
		return ""
	}
	return name
}
