package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"signalscout-engine/internal/domain"
	"signalscout-engine/internal/events"
	"signalscout-engine/internal/plan"
	"signalscout-engine/internal/store"
)

type ResearchHandler struct {
	Deps Deps
}

type researchRequest struct {
	Query     string              `json:"query"`
	Companies []domain.CompanyRef `json:"companies,omitempty"`
}

// Run executes a research pass synchronously, streaming progress to the hub
// while the request waits for the full result.
func (h ResearchHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req researchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "query is required")
		return
	}

	companies := req.Companies
	if len(companies) == 0 {
		companies = h.Deps.Companies
	}

	reqID := RequestIDFrom(r.Context())
	h.Deps.Hub.Publish(events.Make(reqID, events.TypeRunStarted, map[string]any{
		"query":     req.Query,
		"companies": len(companies),
	}))

	onUpdate := func(ev plan.ProgressEvent) {
		h.Deps.Hub.Publish(events.Make(reqID, events.TypeStepProgress, ev))
	}

	result := h.Deps.RunResearch(r.Context(), req.Query, companies, onUpdate)

	h.Deps.Hub.Publish(events.Make(result.ID, events.TypeRunFinished, map[string]any{
		"candidates": len(result.Candidates),
		"qualified":  result.Summary.Qualified,
	}))

	if h.Deps.DB != nil {
		// persistence is best-effort; the run already succeeded
		saveCtx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := h.Deps.DB.SaveRun(saveCtx, result); err != nil {
			logSaveError(result.ID, err)
		}
	}

	WriteJSON(w, http.StatusOK, result)
}

// Get returns a stored run by id (path: /api/research/{id}).
func (h ResearchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/research/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "run id is required")
		return
	}

	result, err := h.Deps.DB.GetRun(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, r, http.StatusNotFound, "not_found", "no such run")
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// List returns recent run summaries.
func (h ResearchHandler) List(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Deps.DB.ListRuns(r.Context(), 50)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

// Candidates returns the best candidates across all stored runs.
func (h ResearchHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.Deps.DB.TopCandidates(r.Context(), 20)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"candidates": candidates})
}
