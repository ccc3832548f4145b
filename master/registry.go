package main

import (
	"cmp"
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/automoto/wreckfield/shared/browser"
)

type entry struct {
	info     browser.ServerInfo
	lastSeen time.Time
}

// Filter narrows List results. Empty fields match everything.
type Filter struct {
	Region   string
	Version  string
	HideFull bool
}

func (f Filter) match(s browser.ServerInfo) bool {
	switch {
	case f.Region != "" && s.Region != f.Region:
		return false
	case f.Version != "" && s.Version != f.Version:
		return false
	case f.HideFull && s.Full():
		return false
	}
	return true
}

// Registry is an in-memory store of live game servers. Entries that stop
// heartbeating expire after the TTL.
type Registry struct {
	mu      sync.RWMutex
	servers map[string]*entry
	ttl     time.Duration
	now     func() time.Time
	logger  *slog.Logger
}

func NewRegistry(ttl time.Duration, now func() time.Time, logger *slog.Logger) *Registry {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		servers: make(map[string]*entry),
		ttl:     ttl,
		now:     now,
		logger:  logger.With("component", "registry"),
	}
}

func newID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

// Register stores a new server and returns its assigned id.
func (r *Registry) Register(req browser.RegisterRequest) string {
	id := newID()

	r.mu.Lock()
	r.servers[id] = &entry{info: req.Info(id), lastSeen: r.now()}
	r.mu.Unlock()

	r.logger.Info("server registered", "id", id, "name", req.Name, "address", req.Address)
	return id
}

// Heartbeat refreshes a server and its player count. It returns false for
// unknown or already expired ids.
func (r *Registry) Heartbeat(id string, players int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.servers[id]
	if !ok {
		return false
	}
	e.lastSeen = r.now()
	e.info.Players = players
	return true
}

// List returns matching servers ordered by name then id.
func (r *Registry) List(f Filter) []browser.ServerInfo {
	r.mu.RLock()
	out := make([]browser.ServerInfo, 0, len(r.servers))
	for _, e := range r.servers {
		if f.match(e.info) {
			out = append(out, e.info)
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b browser.ServerInfo) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return out
}

// Expire drops every server not seen within the TTL and returns how many
// were removed.
func (r *Registry) Expire() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, e := range r.servers {
		idle := now.Sub(e.lastSeen)
		if idle < r.ttl {
			continue
		}
		r.logger.Info("server expired", "id", id, "name", e.info.Name, "idle", idle.Round(time.Second))
		delete(r.servers, id)
		removed++
	}
	return removed
}

// RunCleanup expires stale servers every interval until ctx is done.
func (r *Registry) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Expire()
		}
	}
}
