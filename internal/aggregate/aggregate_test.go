package aggregate

import (
	"testing"
	"time"

	"signalscout-engine/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestDeduplicate_SameURLKeepsHigherConfidence(t *testing.T) {
	raw := []domain.RawSignal{
		{CompanyName: "Acme", Type: domain.SignalFunding, SourceURL: "https://news.example/acme?utm_source=rss", Confidence: 0.6},
		{CompanyName: "Acme", Type: domain.SignalFunding, SourceURL: "https://news.example/acme", Confidence: 0.8},
	}

	out := Deduplicate(raw)
	require.Len(t, out, 1)
	assert.Equal(t, 0.8, out[0].Confidence)
}

func TestDeduplicate_CaseInsensitiveCompany(t *testing.T) {
	raw := []domain.RawSignal{
		{CompanyName: "Acme", Type: domain.SignalFunding, SourceURL: "https://a.example/x", Confidence: 0.7},
		{CompanyName: "ACME", Type: domain.SignalFunding, SourceURL: "https://a.example/x", Confidence: 0.5},
	}

	out := Deduplicate(raw)
	assert.Len(t, out, 1)
}

func TestDeduplicate_DistinctEvidenceSurvives(t *testing.T) {
	raw := []domain.RawSignal{
		{CompanyName: "Acme", Type: domain.SignalFunding, SourceURL: "https://a.example/x", Confidence: 0.7},
		{CompanyName: "Acme", Type: domain.SignalFunding, SourceURL: "https://b.example/y", Confidence: 0.7},
		{CompanyName: "Acme", Type: domain.SignalHiring, SourceURL: "https://a.example/x", Confidence: 0.7},
	}

	out := Deduplicate(raw)
	assert.Len(t, out, 3, "different URLs and different types are not duplicates")
}

func TestDeduplicate_EmptyURLFallsBackToSnippet(t *testing.T) {
	raw := []domain.RawSignal{
		{CompanyName: "Acme", Type: domain.SignalFunding, Snippet: "Acme raises $10M", Confidence: 0.6},
		{CompanyName: "Acme", Type: domain.SignalFunding, Snippet: "acme raises $10M ", Confidence: 0.7},
		{CompanyName: "Acme", Type: domain.SignalFunding, Snippet: "Acme opens Berlin office", Confidence: 0.6},
	}

	out := Deduplicate(raw)
	assert.Len(t, out, 2)
}

func TestAggregate_ConfidenceNeverExceedsOne(t *testing.T) {
	e := New()

	var raw []domain.RawSignal
	for i := 0; i < 10; i++ {
		raw = append(raw, domain.RawSignal{
			CompanyName: "Acme",
			Type:        domain.SignalFunding,
			SourceURL:   "https://example.com/" + string(rune('a'+i)),
			Confidence:  0.99,
		})
	}

	out := e.Aggregate(raw)
	require.Len(t, out, 1)
	assert.LessOrEqual(t, out[0].Confidence, 1.0)
	assert.Equal(t, 10, out[0].SourceCount)
}

func TestAggregate_CorroborationRaisesConfidence(t *testing.T) {
	e := New()

	single := e.Aggregate([]domain.RawSignal{
		{CompanyName: "Acme", Type: domain.SignalFunding, SourceURL: "https://a.example/1", Confidence: 0.7},
	})
	double := e.Aggregate([]domain.RawSignal{
		{CompanyName: "Acme", Type: domain.SignalFunding, SourceURL: "https://a.example/1", Confidence: 0.7},
		{CompanyName: "Acme", Type: domain.SignalFunding, SourceURL: "https://b.example/2", Confidence: 0.7},
	})

	require.Len(t, single, 1)
	require.Len(t, double, 1)
	assert.Greater(t, double[0].Confidence, single[0].Confidence,
		"a second independent source must raise confidence")
}

func TestAggregate_MergesFundingEvidence(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	e := NewWithClock(fixedClock(now))

	pubA := now.Add(-24 * time.Hour)
	pubB := now.Add(-48 * time.Hour)

	raw := []domain.RawSignal{
		{
			CompanyName: "Acme Inc",
			Type:        domain.SignalFunding,
			Source:      domain.SourceFeed,
			SourceURL:   "https://feeds.example/acme-series-a",
			Headline:    "Acme Inc raises $10M Series A",
			Snippet:     "Acme Inc raises $10M Series A led by Acme Ventures",
			Entities:    domain.Entities{Amount: "$10M"},
			PublishedAt: &pubA,
			Confidence:  0.75,
		},
		{
			CompanyName: "Acme Inc",
			Type:        domain.SignalFunding,
			Source:      domain.SourceSearch,
			SourceURL:   "https://search.example/acme-funding",
			Headline:    "Acme Inc announces funding round",
			Snippet:     "Acme Inc announces a funding round with Acme Ventures",
			Entities:    domain.Entities{Investors: []string{"Acme Ventures"}},
			PublishedAt: &pubB,
			Confidence:  0.70,
		},
	}

	out := e.Aggregate(raw)
	require.Len(t, out, 1)

	got := out[0]
	assert.Equal(t, "Acme Inc", got.CompanyName)
	assert.Equal(t, domain.SignalFunding, got.Type)
	assert.Equal(t, 2, got.SourceCount)

	// union of entities across members
	assert.Equal(t, "$10M", got.Entities.Amount)
	assert.Equal(t, []string{"Acme Ventures"}, got.Entities.Investors)

	// avg(0.75, 0.70) + 2*0.05 = 0.825
	assert.InDelta(t, 0.825, got.Confidence, 1e-9)
	assert.Greater(t, got.Confidence, 0.75)

	// freshness counts from the earliest publication
	assert.InDelta(t, 48, got.FreshnessHrs, 1e-9)

	// highest-confidence member supplies the headline
	assert.Equal(t, "Acme Inc raises $10M Series A", got.Headline)
}

func TestAggregate_FallbackFreshnessWithoutTimestamps(t *testing.T) {
	e := New()

	out := e.Aggregate([]domain.RawSignal{
		{CompanyName: "Acme", Type: domain.SignalHiring, SourceURL: "https://a.example/1", Confidence: 0.6},
	})
	require.Len(t, out, 1)
	assert.Equal(t, float64(72), out[0].FreshnessHrs)
}

func TestAggregate_FresherSignalsRankFirst(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	e := NewWithClock(fixedClock(now))

	recent := now.Add(-2 * time.Hour)
	stale := now.Add(-200 * time.Hour)

	out := e.Aggregate([]domain.RawSignal{
		{CompanyName: "Old Co", Type: domain.SignalFunding, SourceURL: "https://a.example/1", PublishedAt: &stale, Confidence: 0.9},
		{CompanyName: "New Co", Type: domain.SignalFunding, SourceURL: "https://b.example/2", PublishedAt: &recent, Confidence: 0.6},
	})

	require.Len(t, out, 2)
	assert.Equal(t, "New Co", out[0].CompanyName)
}

func TestAggregate_DomainEnrichedFromAnyMember(t *testing.T) {
	e := New()

	out := e.Aggregate([]domain.RawSignal{
		{CompanyName: "Acme", Type: domain.SignalFunding, SourceURL: "https://a.example/1", Confidence: 0.8},
		{CompanyName: "Acme", Type: domain.SignalFunding, Domain: "acme.io", SourceURL: "https://b.example/2", Confidence: 0.5},
	})

	require.Len(t, out, 1)
	assert.Equal(t, "acme.io", out[0].Domain)
}

func TestAggregate_EmptyInput(t *testing.T) {
	assert.Empty(t, New().Aggregate(nil))
}
