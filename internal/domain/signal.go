package domain

import "time"

// SignalType classifies what kind of business event a signal describes.
type SignalType string

const (
	SignalFunding          SignalType = "funding"
	SignalHiring           SignalType = "hiring"
	SignalProductLaunch    SignalType = "product_launch"
	SignalLeadershipChange SignalType = "leadership_change"
	SignalExpansion        SignalType = "expansion"
	SignalPartnership      SignalType = "partnership"
	SignalAcquisition      SignalType = "acquisition"
	SignalTechAdoption     SignalType = "tech_adoption"
)

// SourceKind is where a signal was observed.
type SourceKind string

const (
	SourceFeed        SourceKind = "feed"
	SourceSearch      SourceKind = "search"
	SourceCompanySite SourceKind = "company_site"
	SourceJobBoard    SourceKind = "job_board"
	SourcePress       SourceKind = "press"
	SourceSocial      SourceKind = "social"
	SourceFiling      SourceKind = "filing"
)

// Entities holds whatever the regex extractor managed to pull out of a
// signal's text. Best-effort; fields are empty when nothing matched.
type Entities struct {
	Amount    string   `json:"amount,omitempty"`
	Investors []string `json:"investors,omitempty"`
	Roles     []string `json:"roles,omitempty"`
	People    []string `json:"people,omitempty"`
	Locations []string `json:"locations,omitempty"`
}

// RawSignal is one source's observation of one company event. Adapters create
// these; nothing mutates them afterwards.
type RawSignal struct {
	ID           string     `json:"id"`
	Type         SignalType `json:"type"`
	Source       SourceKind `json:"source"`
	SourceURL    string     `json:"sourceUrl"`
	CompanyName  string     `json:"companyName"`
	Domain       string     `json:"domain,omitempty"`
	Headline     string     `json:"headline"`
	Snippet      string     `json:"snippet"`
	RawContent   string     `json:"-"`
	Entities     Entities   `json:"entities"`
	PublishedAt  *time.Time `json:"publishedAt,omitempty"`
	DiscoveredAt time.Time  `json:"discoveredAt"`
	Confidence   float64    `json:"confidence"`
}

// SourceRef is the evidence trail kept on an aggregated signal.
type SourceRef struct {
	Kind        SourceKind `json:"kind"`
	URL         string     `json:"url"`
	Snippet     string     `json:"snippet"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// AggregatedSignal is the canonical company-scoped signal after merging every
// raw observation sharing the same (company, type) key. Domain is the only
// field that may be enriched after creation.
type AggregatedSignal struct {
	ID           string      `json:"id"`
	Type         SignalType  `json:"type"`
	CompanyName  string      `json:"companyName"`
	Domain       string      `json:"domain,omitempty"`
	Headline     string      `json:"headline"`
	Summary      string      `json:"summary"`
	Sources      []SourceRef `json:"sources"`
	Entities     Entities    `json:"entities"`
	SourceCount  int         `json:"sourceCount"`
	Confidence   float64     `json:"confidence"`
	FreshnessHrs float64     `json:"freshnessHours"`
	DiscoveredAt time.Time   `json:"discoveredAt"`
}
