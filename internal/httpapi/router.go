package httpapi

import (
	"encoding/json"
	"net/http"
)

func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	rh := ResearchHandler{Deps: d}
	mux.HandleFunc("/api/research", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: rh.Run,
		http.MethodGet:  rh.List,
	}))
	mux.HandleFunc("/api/research/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.Get, // expects /api/research/{id}
	}))
	mux.HandleFunc("/api/candidates", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.Candidates,
	}))

	ch := ConfigHandler{Val: d.CfgVal, Path: d.CfgPath}
	mux.HandleFunc("/api/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))

	sh := SecretsHandler{Val: d.CfgVal}
	mux.HandleFunc("/api/secrets/search-key", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetSearchKey,
	}))
	mux.HandleFunc("/api/secrets/imap-password", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetIMAPPassword,
	}))

	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/api/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	mux.HandleFunc("/api/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
		},
	}))

	return mux
}
