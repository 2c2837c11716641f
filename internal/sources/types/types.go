package types

import (
	"context"

	"signalscout-engine/internal/domain"
)

// FetchResult is one adapter's haul for one target. Errs holds non-fatal
// failures as strings; an adapter never lets an error escape its boundary.
type FetchResult struct {
	Source  string
	Jobs    []domain.JobPosting
	Signals []domain.RawSignal
	Errs    []string
}

// CompanyAdapter targets one company at a time (job boards, direct site
// crawls). A company simply absent from the source is an empty result, not an
// error.
type CompanyAdapter interface {
	Name() string
	Origin() string
	FetchCompany(ctx context.Context, company domain.CompanyRef) FetchResult
}

// QueryAdapter runs canned queries for a signal type (feeds, search APIs,
// press inboxes) and classifies whatever comes back.
type QueryAdapter interface {
	Name() string
	FetchSignals(ctx context.Context, types []domain.SignalType) FetchResult
}
