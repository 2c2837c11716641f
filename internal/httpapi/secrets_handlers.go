package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"signalscout-engine/internal/config"
	"signalscout-engine/internal/secrets"
)

// SecretsHandler stores credentials in the OS keychain so they never land in
// the config file.
type SecretsHandler struct {
	Val *atomic.Value // holds a config.Config
}

type setSecretRequest struct {
	Value string `json:"value"`
}

func (h SecretsHandler) SetSearchKey(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSecret(w, r)
	if !ok {
		return
	}
	if err := secrets.SetSearchAPIKey(req.Value); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h SecretsHandler) SetIMAPPassword(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSecret(w, r)
	if !ok {
		return
	}
	cfg := h.Val.Load().(config.Config)
	if err := secrets.SetIMAPPassword(cfg, req.Value); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeSecret(w http.ResponseWriter, r *http.Request) (setSecretRequest, bool) {
	var req setSecretRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return req, false
	}
	return req, true
}
