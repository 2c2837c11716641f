package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"signalscout-engine/internal/config"
)

// ConfigHandler serves the live configuration and accepts edits, persisting
// them back to the user's config file.
type ConfigHandler struct {
	Val  *atomic.Value // holds a config.Config
	Path string
}

func (h ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.Val.Load().(config.Config))
}

// Put replaces the whole configuration: validate, write to disk, then swap
// the live copy. A config that fails validation never reaches disk.
func (h ConfigHandler) Put(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var incoming config.Config
	if err := dec.Decode(&incoming); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON body: "+err.Error())
		return
	}
	if err := config.Save(h.Path, incoming); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_config", err.Error())
		return
	}
	h.Val.Store(incoming)
	WriteJSON(w, http.StatusOK, incoming)
}
