package feeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"signalscout-engine/internal/domain"
	"signalscout-engine/internal/extract"
	"signalscout-engine/internal/sources/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fundingRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Venture News</title>
    <item>
      <title>Acme raises $10 million Series A</title>
      <link>https://news.example/acme-series-a?utm_source=rss</link>
      <description>Acme raises $10 million in a Series A led by Nexus Ventures.</description>
      <pubDate>Wed, 26 Aug 2026 09:00:00 +0000</pubDate>
    </item>
    <item>
      <title>Opinion: why venture is broken</title>
      <link>https://news.example/opinion</link>
      <description>A long essay with no company event in it.</description>
    </item>
    <item>
      <title>launches without a subject</title>
      <link>https://news.example/no-subject</link>
      <description>something raises eyebrows but names no company</description>
    </item>
  </channel>
</rss>`

func testAdapter(feedURL string) *Adapter {
	return New(
		util.NewOriginLimiter(time.Millisecond),
		extract.RegexExtractor{},
		map[domain.SignalType][]string{domain.SignalFunding: {feedURL}},
	)
}

func TestFetchSignals_ClassifiesAndAttributes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(fundingRSS))
	}))
	defer srv.Close()

	res := testAdapter(srv.URL).FetchSignals(context.Background(), []domain.SignalType{domain.SignalFunding})

	assert.Empty(t, res.Errs)
	require.Len(t, res.Signals, 1, "non-matching and unattributable items are dropped")

	sig := res.Signals[0]
	assert.Equal(t, domain.SignalFunding, sig.Type)
	assert.Equal(t, domain.SourceFeed, sig.Source)
	assert.Equal(t, "Acme", sig.CompanyName)
	assert.Equal(t, "https://news.example/acme-series-a", sig.SourceURL, "tracking params stripped")
	assert.Equal(t, "$10M", sig.Entities.Amount)
	assert.Equal(t, []string{"Nexus Ventures"}, sig.Entities.Investors)
	assert.Equal(t, 0.75, sig.Confidence)

	require.NotNil(t, sig.PublishedAt)
	assert.Equal(t, time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC), *sig.PublishedAt)
	assert.Empty(t, sig.Domain, "news-site link is not the company's domain")
}

func TestClassify_CompanySiteLinkResolvesDomain(t *testing.T) {
	a := testAdapter("https://unused.example/feed")
	items := []rssItem{
		{
			Title: "Acme launches its analytics platform",
			Links: []rssLink{{Text: "https://acme.io/blog/launch"}},
			Desc:  "Acme launches a new analytics product for finance teams.",
		},
		{
			Title: "Beta launches a widget",
			Links: []rssLink{{Text: "https://news.example/beta-widget"}},
			Desc:  "Beta launches a widget, covered by the trade press.",
		},
	}

	got := a.classify(items, domain.SignalProductLaunch, "https://unused.example/feed")

	require.Len(t, got, 2)
	assert.Equal(t, "acme.io", got[0].Domain)
	assert.Empty(t, got[1].Domain)
}

func TestFetchSignals_FeedErrorIsNonFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	res := testAdapter(srv.URL).FetchSignals(context.Background(), []domain.SignalType{domain.SignalFunding})

	assert.Empty(t, res.Signals)
	require.Len(t, res.Errs, 1)
	assert.Contains(t, res.Errs[0], "status 503")
}

func TestFetchSignals_UnknownTypeIsSkipped(t *testing.T) {
	res := testAdapter("https://unused.example/feed").FetchSignals(
		context.Background(), []domain.SignalType{domain.SignalHiring})

	assert.Empty(t, res.Signals)
	assert.Empty(t, res.Errs, "no feed configured for the type means nothing to fetch")
}

func TestParseFeedTime(t *testing.T) {
	got := parseFeedTime("", "2026-08-26T09:00:00Z")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC), *got)

	assert.Nil(t, parseFeedTime("not a date"))
	assert.Nil(t, parseFeedTime())
}
