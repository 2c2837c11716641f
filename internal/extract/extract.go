package extract

import (
	"regexp"
	"strings"

	"signalscout-engine/internal/domain"
)

// Extractor pulls structured entities out of free text. The default is the
// regex-based RegexExtractor; swapping in a learned extractor must not touch
// orchestration, aggregation, or ranking code.
type Extractor interface {
	Extract(text string) domain.Entities
}

var (
	amountRe   = regexp.MustCompile(`[$€£]\s?\d+(?:\.\d+)?\s?(?:[MBK]\b|million|billion|thousand)`)
	investorRe = regexp.MustCompile(`(?:led by|from|backed by)\s+([A-Z][A-Za-z&.\- ]*?(?:Capital|Ventures|Partners))`)
	roleRe     = regexp.MustCompile(`(?:hiring|seeking|looking for)\s+(?:an?\s+)?([A-Za-z/+\- ]*?(?:Engineer|Developer|Manager|Director|VP|Lead))`)
	personRe   = regexp.MustCompile(`(?:appoints|names|hires|promotes|welcomes)\s+([A-Z][a-z]+\s+[A-Z][a-z]+)`)
	locationRe = regexp.MustCompile(`(?:expands?\s+(?:to|into)|opens?\s+(?:an?\s+|new\s+)?office\s+in)\s+([A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+)?)`)
)

// RegexExtractor is a best-effort heuristic extractor. It both misses and
// over-matches; confidence scores downstream exist to discount it.
type RegexExtractor struct{}

func (RegexExtractor) Extract(text string) domain.Entities {
	var e domain.Entities

	if m := amountRe.FindString(text); m != "" {
		e.Amount = normalizeAmount(m)
	}
	for _, m := range investorRe.FindAllStringSubmatch(text, -1) {
		e.Investors = appendUniq(e.Investors, strings.TrimSpace(m[1]))
	}
	for _, m := range roleRe.FindAllStringSubmatch(text, -1) {
		e.Roles = appendUniq(e.Roles, strings.TrimSpace(m[1]))
	}
	for _, m := range personRe.FindAllStringSubmatch(text, -1) {
		e.People = appendUniq(e.People, strings.TrimSpace(m[1]))
	}
	for _, m := range locationRe.FindAllStringSubmatch(text, -1) {
		e.Locations = appendUniq(e.Locations, strings.TrimSpace(m[1]))
	}
	return e
}

func normalizeAmount(m string) string {
	m = strings.Join(strings.Fields(m), " ")
	m = strings.ReplaceAll(m, "$ ", "$")
	m = strings.ReplaceAll(m, "€ ", "€")
	m = strings.ReplaceAll(m, "£ ", "£")
	switch {
	case strings.HasSuffix(m, " million"):
		m = strings.TrimSuffix(m, " million") + "M"
	case strings.HasSuffix(m, " billion"):
		m = strings.TrimSuffix(m, " billion") + "B"
	case strings.HasSuffix(m, " thousand"):
		m = strings.TrimSuffix(m, " thousand") + "K"
	}
	return m
}

func appendUniq(list []string, v string) []string {
	if v == "" {
		return list
	}
	for _, have := range list {
		if strings.EqualFold(have, v) {
			return list
		}
	}
	return append(list, v)
}
