package server

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/aimtrainer/internal/game"
	"github.com/tomz197/aimtrainer/internal/loop/config"
)

// GameServer is the interface clients use to talk to the hub.
// Each session plays its own game; the hub only counts players, keeps the
// leaderboard and relays shutdown notices.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	SendStats(clientID int, stats game.Stats)
	GetSnapshot() *Snapshot
}

// Server tracks connected sessions.
type Server struct {
	snapshot     atomic.Pointer[Snapshot]
	clients      map[int]*ClientHandle
	nextClientID int
	statsCh      chan ClientStats
	unregisterCh chan int
	mu           sync.RWMutex
	logger       *log.Logger
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a session's registration with the server.
type ClientHandle struct {
	ID       int
	Username string
	Stats    game.Stats
	EventsCh chan ClientEvent // Events sent to the session
}

// ClientStats is a stats report from a session.
type ClientStats struct {
	ClientID int
	Stats    game.Stats
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// NewServer creates a new hub. A nil logger discards.
func NewServer(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		statsCh:      make(chan ClientStats, 256),
		unregisterCh: make(chan int, 16),
		logger:       logger,
	}
	s.snapshot.Store(&Snapshot{})
	return s
}

// Run starts the server loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(config.ServerTickTime)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick processes pending registrations and stats reports, then publishes
// a fresh snapshot.
func (s *Server) Tick() {
	s.processRegistrations()
	s.collectStats()
	s.createSnapshot()
}

// Shutdown notifies every connected client and waits for them to
// disconnect, up to the given timeout.
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	n := len(s.clients)
	s.mu.RUnlock()
	s.logger.Info("shutdown notice sent", "sessions", n)

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			s.logger.Warn("shutdown timeout, sessions still connected", "sessions", s.Players())
			return
		case <-ticker.C:
			// Unregistrations are queued; drain them here since Run may already be stopping
			s.processRegistrations()
			if s.Players() == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new session and returns its handle. The handle
// is visible to Shutdown immediately.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}
	s.clients[id] = handle
	s.mu.Unlock()

	s.logger.Debug("client registered", "id", id, "user", username)
	return handle
}

// UnregisterClient removes a session from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// SendStats reports a session's counters. Reports are dropped when the
// queue is full; the next one carries the same totals.
func (s *Server) SendStats(clientID int, stats game.Stats) {
	select {
	case s.statsCh <- ClientStats{ClientID: clientID, Stats: stats}:
	default:
	}
}

// GetSnapshot returns the current snapshot.
func (s *Server) GetSnapshot() *Snapshot {
	return s.snapshot.Load()
}

// Players returns the number of registered sessions.
func (s *Server) Players() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// processRegistrations handles pending unregistrations. Registrations are
// recorded synchronously so Shutdown always sees every session.
func (s *Server) processRegistrations() {
	for {
		select {
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
				s.logger.Debug("client unregistered", "id", clientID, "user", handle.Username)
			}
			s.mu.Unlock()
		default:
			return
		}
	}
}

// collectStats applies all pending stats reports.
func (s *Server) collectStats() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		select {
		case cs := <-s.statsCh:
			if handle, ok := s.clients[cs.ClientID]; ok {
				handle.Stats = cs.Stats
			}
		default:
			return
		}
	}
}

// createSnapshot publishes an immutable snapshot of the hub.
func (s *Server) createSnapshot() {
	s.mu.RLock()
	snapshot := &Snapshot{
		Players:   len(s.clients),
		TotalHits: totalHits(s.clients),
		TopScores: buildTopScores(s.clients),
	}
	s.mu.RUnlock()

	s.snapshot.Store(snapshot)
}
