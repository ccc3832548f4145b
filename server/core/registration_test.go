package core

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/wreckfield/config"
	"github.com/automoto/wreckfield/shared/browser"
)

type staticCount int

func (c staticCount) PlayerCount() int { return int(c) }

type fakeMaster struct {
	mu         sync.Mutex
	registers  []browser.RegisterRequest
	heartbeats []browser.HeartbeatRequest
	forget     bool
}

func (m *fakeMaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch r.URL.Path {
	case browser.PathRegister:
		var req browser.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		m.registers = append(m.registers, req)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(browser.RegisterResponse{ID: "srv-1"})
	case browser.PathHeartbeat:
		var req browser.HeartbeatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		m.heartbeats = append(m.heartbeats, req)
		if m.forget {
			m.forget = false
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	default:
		http.NotFound(w, r)
	}
}

func (m *fakeMaster) calls() ([]browser.RegisterRequest, []browser.HeartbeatRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]browser.RegisterRequest(nil), m.registers...), append([]browser.HeartbeatRequest(nil), m.heartbeats...)
}

func (m *fakeMaster) forgetNext() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forget = true
}

func newTestRegistration(t *testing.T, master http.Handler) *Registration {
	t.Helper()
	srv := httptest.NewServer(master)
	t.Cleanup(srv.Close)

	cfg := config.Default().Server
	cfg.Name = "test-server"
	cfg.MasterURL = srv.URL
	cfg.PublicAddress = "ws://127.0.0.1:3001/ws"
	cfg.Region = "eu"
	return NewRegistration(cfg, "1.2.3", staticCount(4), discardLogger())
}

func TestRegistration_RegisterAndHeartbeat(t *testing.T) {
	master := &fakeMaster{}
	r := newTestRegistration(t, master)
	ctx := context.Background()

	require.NoError(t, r.register(ctx))
	assert.Equal(t, "srv-1", r.ServerID())
	registers, _ := master.calls()
	require.Len(t, registers, 1)
	assert.Equal(t, browser.RegisterRequest{
		Name:       "test-server",
		Address:    "ws://127.0.0.1:3001/ws",
		Players:    4,
		MaxPlayers: 100,
		TickRate:   60,
		Version:    "1.2.3",
		Region:     "eu",
	}, registers[0])

	require.NoError(t, r.sendHeartbeat(ctx))
	_, heartbeats := master.calls()
	require.Len(t, heartbeats, 1)
	assert.Equal(t, browser.HeartbeatRequest{ID: "srv-1", Players: 4}, heartbeats[0])
}

func TestRegistration_ReregistersWhenForgotten(t *testing.T) {
	master := &fakeMaster{}
	r := newTestRegistration(t, master)
	ctx := context.Background()

	require.NoError(t, r.register(ctx))
	master.forgetNext()

	require.NoError(t, r.sendHeartbeat(ctx))
	registers, heartbeats := master.calls()
	assert.Len(t, registers, 2)
	assert.Len(t, heartbeats, 1)
}

func TestRegistration_HeartbeatWithoutIDRegisters(t *testing.T) {
	master := &fakeMaster{}
	r := newTestRegistration(t, master)

	require.NoError(t, r.sendHeartbeat(context.Background()))
	registers, heartbeats := master.calls()
	assert.Len(t, registers, 1)
	assert.Empty(t, heartbeats)
}

func TestRegistration_UnexpectedStatus(t *testing.T) {
	r := newTestRegistration(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	err := r.register(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Empty(t, r.ServerID())
}
