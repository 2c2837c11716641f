package feeds

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"signalscout-engine/internal/domain"
	"signalscout-engine/internal/extract"
	"signalscout-engine/internal/sources/types"
	"signalscout-engine/internal/sources/util"

	"github.com/google/uuid"
)

const feedConfidence = 0.75

// DefaultFeeds maps a signal type to the syndicated feeds worth polling for
// it. Overridable from config.
var DefaultFeeds = map[domain.SignalType][]string{
	domain.SignalFunding: {
		"https://techcrunch.com/category/venture/feed/",
		"https://news.crunchbase.com/feed/",
	},
	domain.SignalProductLaunch: {
		"https://techcrunch.com/category/startups/feed/",
	},
	domain.SignalLeadershipChange: {
		"https://www.prnewswire.com/rss/people-personnel-announcements-list.rss",
	},
	domain.SignalExpansion: {
		"https://www.prnewswire.com/rss/general-business-latest-news-list.rss",
	},
	domain.SignalAcquisition: {
		"https://techcrunch.com/category/ma/feed/",
	},
}

type Adapter struct {
	hc        *http.Client
	limiter   *util.OriginLimiter
	feeds     map[domain.SignalType][]string
	extractor extract.Extractor
}

func New(limiter *util.OriginLimiter, ex extract.Extractor, feeds map[domain.SignalType][]string) *Adapter {
	if len(feeds) == 0 {
		feeds = DefaultFeeds
	}
	return &Adapter{
		hc:        &http.Client{Timeout: 15 * time.Second},
		limiter:   limiter,
		feeds:     feeds,
		extractor: ex,
	}
}

func (a *Adapter) Name() string { return "feeds" }

// rssDoc covers both RSS 2.0 (<channel><item>) and Atom (<entry>) with one
// permissive shape; feeds in the wild are too sloppy for strict parsing.
type rssDoc struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
	Entries []rssItem `xml:"entry"`
}

type rssItem struct {
	Title   string    `xml:"title"`
	Links   []rssLink `xml:"link"`
	Desc    string    `xml:"description"`
	Summary string    `xml:"summary"`
	PubDate string    `xml:"pubDate"`
	Updated string    `xml:"updated"`
}

// rssLink holds both shapes: RSS puts the URL in chardata, Atom in href.
type rssLink struct {
	Href string `xml:"href,attr"`
	Text string `xml:",chardata"`
}

func (it rssItem) link() string {
	for _, l := range it.Links {
		if u := util.CleanText(l.Text); u != "" {
			return u
		}
	}
	for _, l := range it.Links {
		if l.Href != "" {
			return l.Href
		}
	}
	return ""
}

// FetchSignals polls the canned feeds for the requested types and keeps only
// items that classify as the type and carry an extractable company name.
func (a *Adapter) FetchSignals(ctx context.Context, wanted []domain.SignalType) types.FetchResult {
	res := types.FetchResult{Source: a.Name()}

	for _, typ := range wanted {
		for _, feedURL := range a.feeds[typ] {
			items, err := a.fetchFeed(ctx, feedURL)
			if err != nil {
				res.Errs = append(res.Errs, fmt.Sprintf("feed %s: %v", feedURL, err))
				continue
			}
			res.Signals = append(res.Signals, a.classify(items, typ, feedURL)...)
		}
	}
	return res
}

func (a *Adapter) fetchFeed(ctx context.Context, feedURL string) ([]rssItem, error) {
	if err := a.limiter.WaitURL(ctx, feedURL); err != nil {
		return nil, err
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	req.Header.Set("User-Agent", "SignalScout/1.0 (+local)")

	resp, err := a.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var doc rssDoc
	dec := xml.NewDecoder(resp.Body)
	dec.Strict = false
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	items := doc.Channel.Items
	if len(items) == 0 {
		items = doc.Entries
	}
	return items, nil
}

func (a *Adapter) classify(items []rssItem, typ domain.SignalType, feedURL string) []domain.RawSignal {
	now := time.Now().UTC()
	var out []domain.RawSignal

	for _, it := range items {
		title := util.CleanText(it.Title)
		snippet := util.CleanText(it.Desc)
		if snippet == "" {
			snippet = util.CleanText(it.Summary)
		}
		blob := title + ". " + snippet

		if !extract.Matches(blob, typ) {
			continue
		}
		company := extract.CompanyName(blob)
		if company == "" {
			// unattributable items are dropped, never defaulted to "unknown"
			continue
		}

		link := it.link()
		if link == "" {
			link = feedURL
		}

		out = append(out, domain.RawSignal{
			ID:           uuid.NewString(),
			Type:         typ,
			Source:       domain.SourceFeed,
			SourceURL:    util.CanonicalURL(link),
			CompanyName:  company,
			Domain:       util.CompanyDomain(company, link),
			Headline:     title,
			Snippet:      snippet,
			Entities:     a.extractor.Extract(blob),
			PublishedAt:  parseFeedTime(it.PubDate, it.Updated),
			DiscoveredAt: now,
			Confidence:   feedConfidence,
		})
	}
	return out
}

func parseFeedTime(candidates ...string) *time.Time {
	layouts := []string{time.RFC1123Z, time.RFC1123, time.RFC3339, "2006-01-02"}
	for _, c := range candidates {
		c = util.CleanText(c)
		if c == "" {
			continue
		}
		for _, l := range layouts {
			if t, err := time.Parse(l, c); err == nil {
				u := t.UTC()
				return &u
			}
		}
	}
	return nil
}
