package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/automoto/wreckfield/shared/browser"
)

const maxRequestBody = 1 << 16

// API serves the registry over HTTP.
type API struct {
	reg    *Registry
	logger *slog.Logger
}

func NewAPI(reg *Registry, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{reg: reg, logger: logger.With("component", "api")}
}

func (a *API) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+browser.PathServers, a.list)
	mux.HandleFunc("POST "+browser.PathRegister, a.register)
	mux.HandleFunc("POST "+browser.PathHeartbeat, a.heartbeat)
	mux.HandleFunc("GET "+browser.PathHealth, a.health)
	return mux
}

// list supports ?region=, ?version= and ?hideFull=true.
func (a *API) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	a.writeJSON(w, http.StatusOK, a.reg.List(Filter{
		Region:   q.Get("region"),
		Version:  q.Get("version"),
		HideFull: q.Get("hideFull") == "true",
	}))
}

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[browser.RegisterRequest](a, w, r)
	if !ok {
		return
	}
	switch {
	case req.Name == "" || req.Address == "":
		a.writeError(w, http.StatusBadRequest, "name and address required")
		return
	case req.Players < 0 || req.MaxPlayers < 0:
		a.writeError(w, http.StatusBadRequest, "player counts must not be negative")
		return
	}
	a.writeJSON(w, http.StatusCreated, browser.RegisterResponse{ID: a.reg.Register(req)})
}

func (a *API) heartbeat(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[browser.HeartbeatRequest](a, w, r)
	if !ok {
		return
	}
	if !a.reg.Heartbeat(req.ID, req.Players) {
		a.writeError(w, http.StatusNotFound, "unknown server")
		return
	}
	a.writeJSON(w, http.StatusOK, browser.Status{Status: "ok"})
}

func (a *API) health(w http.ResponseWriter, _ *http.Request) {
	a.writeJSON(w, http.StatusOK, browser.Status{Status: "ok"})
}

func decode[T any](a *API, w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		a.logger.Debug("bad request body", "path", r.URL.Path, "err", err)
		a.writeError(w, http.StatusBadRequest, "invalid json")
		return v, false
	}
	return v, true
}

func (a *API) writeError(w http.ResponseWriter, status int, msg string) {
	a.writeJSON(w, status, browser.Status{Error: msg})
}

func (a *API) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Warn("response encode failed", "err", err)
	}
}
