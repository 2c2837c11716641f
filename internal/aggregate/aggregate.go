package aggregate

import (
	"sort"
	"strings"
	"time"

	"signalscout-engine/internal/domain"
	"signalscout-engine/internal/sources/util"

	"github.com/google/uuid"
)

const (
	// corroboration bonus per extra source, capped
	bonusPerSource = 0.05
	bonusCap       = 0.2

	// assumed age when no member carries a publication timestamp
	fallbackFreshnessHrs = 72
)

// Engine merges raw observations into company-scoped aggregated signals. The
// clock is injectable so freshness math is testable.
type Engine struct {
	now func() time.Time
}

func New() *Engine {
	return &Engine{now: time.Now}
}

func NewWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

func groupKey(company string, typ domain.SignalType) string {
	return strings.ToLower(strings.TrimSpace(company)) + "-" + string(typ)
}

// Deduplicate collapses exact duplicate evidence before grouping: the same
// company, type, and source URL (or identical snippet when both URLs are
// empty) seen twice keeps only the higher-confidence copy. Distinct
// observations survive so they can count toward corroboration.
func Deduplicate(raw []domain.RawSignal) []domain.RawSignal {
	best := make(map[string]domain.RawSignal, len(raw))
	order := make([]string, 0, len(raw))

	for _, s := range raw {
		evidence := util.CanonicalURL(s.SourceURL)
		if evidence == "" {
			evidence = strings.ToLower(util.CleanText(s.Snippet))
		}
		key := groupKey(s.CompanyName, s.Type) + "|" + evidence

		have, ok := best[key]
		if !ok {
			best[key] = s
			order = append(order, key)
			continue
		}
		if s.Confidence > have.Confidence {
			best[key] = s
		}
	}

	out := make([]domain.RawSignal, 0, len(best))
	for _, key := range order {
		out = append(out, best[key])
	}
	return out
}

// Aggregate groups deduplicated raw signals by (company, type), merging each
// group into one confidence-scored record. Output is ordered fresher and
// higher-confidence first (confidence / max(freshness,1) descending).
func (e *Engine) Aggregate(raw []domain.RawSignal) []domain.AggregatedSignal {
	raw = Deduplicate(raw)

	groups := make(map[string][]domain.RawSignal)
	var keys []string
	for _, s := range raw {
		key := groupKey(s.CompanyName, s.Type)
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], s)
	}

	now := e.now().UTC()
	out := make([]domain.AggregatedSignal, 0, len(keys))
	for _, key := range keys {
		out = append(out, e.merge(groups[key], now))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return rankScore(out[i]) > rankScore(out[j])
	})
	return out
}

func rankScore(a domain.AggregatedSignal) float64 {
	fresh := a.FreshnessHrs
	if fresh < 1 {
		fresh = 1
	}
	return a.Confidence / fresh
}

func (e *Engine) merge(group []domain.RawSignal, now time.Time) domain.AggregatedSignal {
	sort.SliceStable(group, func(i, j int) bool {
		return group[i].Confidence > group[j].Confidence
	})
	primary := group[0]

	agg := domain.AggregatedSignal{
		ID:           uuid.NewString(),
		Type:         primary.Type,
		CompanyName:  primary.CompanyName,
		Domain:       primary.Domain,
		Headline:     primary.Headline,
		Summary:      primary.Snippet,
		DiscoveredAt: now,
	}

	var confSum float64
	var earliest *time.Time
	for _, s := range group {
		confSum += s.Confidence
		agg.Sources = append(agg.Sources, domain.SourceRef{
			Kind:        s.Source,
			URL:         s.SourceURL,
			Snippet:     s.Snippet,
			PublishedAt: s.PublishedAt,
		})
		agg.Entities = mergeEntities(agg.Entities, s.Entities)
		if agg.Domain == "" && s.Domain != "" {
			agg.Domain = s.Domain
		}
		if s.PublishedAt != nil && (earliest == nil || s.PublishedAt.Before(*earliest)) {
			earliest = s.PublishedAt
		}
	}

	n := len(group)
	agg.SourceCount = n

	bonus := bonusPerSource * float64(n)
	if bonus > bonusCap {
		bonus = bonusCap
	}
	conf := confSum/float64(n) + bonus
	if conf > 1 {
		conf = 1
	}
	agg.Confidence = conf

	if earliest != nil {
		agg.FreshnessHrs = now.Sub(*earliest).Hours()
	} else {
		agg.FreshnessHrs = fallbackFreshnessHrs
	}
	return agg
}

func mergeEntities(into, from domain.Entities) domain.Entities {
	if into.Amount == "" {
		into.Amount = from.Amount
	}
	into.Investors = util.Uniq(append(into.Investors, from.Investors...))
	into.Roles = util.Uniq(append(into.Roles, from.Roles...))
	into.People = util.Uniq(append(into.People, from.People...))
	into.Locations = util.Uniq(append(into.Locations, from.Locations...))
	return into
}
