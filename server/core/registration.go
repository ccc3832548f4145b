package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/automoto/wreckfield/config"
	"github.com/automoto/wreckfield/shared/browser"
)

// errForgotten means the master no longer knows our id.
var errForgotten = errors.New("master forgot registration")

// PlayerCounter reports the current number of players.
type PlayerCounter interface {
	PlayerCount() int
}

// Registration announces the server to the master browser and keeps the
// listing alive with periodic heartbeats.
type Registration struct {
	masterURL string
	announce  browser.RegisterRequest
	interval  time.Duration
	players   PlayerCounter
	client    *http.Client
	logger    *slog.Logger

	mu       sync.Mutex
	serverID string
}

func NewRegistration(cfg config.ServerConfig, version string, players PlayerCounter, logger *slog.Logger) *Registration {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registration{
		masterURL: cfg.MasterURL,
		announce: browser.RegisterRequest{
			Name:       cfg.Name,
			Address:    cfg.PublicAddress,
			MaxPlayers: cfg.MaxPlayers,
			TickRate:   cfg.TickRate,
			Version:    version,
			Region:     cfg.Region,
		},
		interval: positiveOr(cfg.HeartbeatInterval, 30*time.Second),
		players:  players,
		client:   &http.Client{Timeout: 5 * time.Second},
		logger:   logger.With("component", "registration", "master", cfg.MasterURL),
	}
}

func positiveOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

// ServerID returns the id assigned by the master, empty until registered.
func (r *Registration) ServerID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.serverID
}

func (r *Registration) setServerID(id string) {
	r.mu.Lock()
	r.serverID = id
	r.mu.Unlock()
}

// Run registers and then heartbeats until ctx is done. Failures are logged
// and retried on the next tick; they never stop the game server.
func (r *Registration) Run(ctx context.Context) error {
	if err := r.register(ctx); err != nil {
		r.logger.Warn("initial registration failed", "err", err)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := r.sendHeartbeat(ctx); err != nil {
				r.logger.Warn("heartbeat failed", "err", err)
			}
		}
	}
}

// exchange posts payload as JSON and decodes the reply into out when out is
// non-nil. Any status other than want is an error.
func (r *Registration) exchange(ctx context.Context, path string, payload any, want int, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.masterURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound && path == browser.PathHeartbeat:
		return errForgotten
	case resp.StatusCode != want:
		return fmt.Errorf("post %s: unexpected status %d", path, resp.StatusCode)
	case out == nil:
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (r *Registration) register(ctx context.Context) error {
	req := r.announce
	req.Players = r.players.PlayerCount()

	var res browser.RegisterResponse
	if err := r.exchange(ctx, browser.PathRegister, req, http.StatusCreated, &res); err != nil {
		return err
	}
	r.setServerID(res.ID)
	r.logger.Info("registered with master", "id", res.ID)
	return nil
}

func (r *Registration) sendHeartbeat(ctx context.Context) error {
	id := r.ServerID()
	if id == "" {
		return r.register(ctx)
	}

	err := r.exchange(ctx, browser.PathHeartbeat, browser.HeartbeatRequest{
		ID:      id,
		Players: r.players.PlayerCount(),
	}, http.StatusOK, nil)
	if errors.Is(err, errForgotten) {
		r.logger.Info("master dropped listing, registering again", "id", id)
		r.setServerID("")
		return r.register(ctx)
	}
	return err
}
