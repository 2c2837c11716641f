package httpapi

import (
	"context"
	"sync/atomic"

	"signalscout-engine/internal/domain"
	"signalscout-engine/internal/events"
	"signalscout-engine/internal/plan"
	"signalscout-engine/internal/store"
)

type Deps struct {
	DB  *store.DB
	Hub *events.Hub

	// Live configuration (holds a config.Config) and its on-disk path. The
	// config and secrets endpoints read and update these.
	CfgVal  *atomic.Value
	CfgPath string

	// Default research targets when a request names none.
	Companies []domain.CompanyRef

	// Research entrypoint (injected for testability).
	RunResearch func(ctx context.Context, query string, companies []domain.CompanyRef, onUpdate plan.UpdateFunc) *domain.ResearchResult
}
