package server

import (
	"context"
	"testing"
	"time"

	"github.com/tomz197/aimtrainer/internal/game"
)

func TestRegisterAndUnregister(t *testing.T) {
	s := NewServer(nil)

	a := s.RegisterClient("alice")
	b := s.RegisterClient("bob")
	if a.ID == b.ID {
		t.Fatal("Expected distinct client IDs")
	}
	if s.Players() != 2 {
		t.Errorf("Expected 2 players, got %d", s.Players())
	}

	s.UnregisterClient(a.ID)
	s.Tick()

	if s.Players() != 1 {
		t.Errorf("Expected 1 player after unregister, got %d", s.Players())
	}
	if _, ok := <-a.EventsCh; ok {
		t.Error("Expected events channel closed on unregister")
	}
	if got := s.GetSnapshot().Players; got != 1 {
		t.Errorf("Expected snapshot with 1 player, got %d", got)
	}
}

func TestLeaderboard(t *testing.T) {
	s := NewServer(nil)

	a := s.RegisterClient("alice")
	b := s.RegisterClient("bob")
	c := s.RegisterClient("carol")
	d := s.RegisterClient("dave")

	s.SendStats(a.ID, game.Stats{Hits: 8, Misses: 2})
	s.SendStats(b.ID, game.Stats{Hits: 12, Misses: 8})
	s.SendStats(c.ID, game.Stats{Hits: 8, Misses: 4})
	s.SendStats(d.ID, game.Stats{Hits: 5}) // Too few shots to rank
	s.Tick()

	snap := s.GetSnapshot()
	if snap.TotalHits != 33 {
		t.Errorf("Expected 33 total hits, got %d", snap.TotalHits)
	}

	want := []string{"bob", "alice", "carol"}
	if len(snap.TopScores) != len(want) {
		t.Fatalf("Expected %d leaderboard entries, got %d", len(want), len(snap.TopScores))
	}
	for i, name := range want {
		if snap.TopScores[i].Username != name {
			t.Errorf("Rank %d: expected %s, got %s", i+1, name, snap.TopScores[i].Username)
		}
	}
	if snap.TopScores[1].Accuracy != 80 {
		t.Errorf("Expected alice at 80%% accuracy, got %f", snap.TopScores[1].Accuracy)
	}
}

func TestLeaderboardCapped(t *testing.T) {
	s := NewServer(nil)
	for i := 0; i < 8; i++ {
		h := s.RegisterClient("p")
		s.SendStats(h.ID, game.Stats{Hits: 10 + i, Misses: 1})
	}
	s.Tick()

	top := s.GetSnapshot().TopScores
	if len(top) != 5 {
		t.Fatalf("Expected 5 entries, got %d", len(top))
	}
	if top[0].Hits != 17 {
		t.Errorf("Expected best entry with 17 hits, got %d", top[0].Hits)
	}
}

func TestStatsForUnknownClientIgnored(t *testing.T) {
	s := NewServer(nil)
	s.SendStats(42, game.Stats{Hits: 100})
	s.Tick()

	if s.GetSnapshot().TotalHits != 0 {
		t.Error("Expected stats from unknown clients to be ignored")
	}
}

func TestShutdownNotifiesAndWaits(t *testing.T) {
	s := NewServer(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	h := s.RegisterClient("alice")

	// Client side: leave as soon as the notice arrives
	go func() {
		for ev := range h.EventsCh {
			if ev.Type == EventServerShutdown {
				s.UnregisterClient(h.ID)
				return
			}
		}
	}()

	start := time.Now()
	s.Shutdown(5 * time.Second)
	if time.Since(start) > 4*time.Second {
		t.Error("Expected shutdown to return once the client left")
	}
	if s.Players() != 0 {
		t.Errorf("Expected no players after shutdown, got %d", s.Players())
	}
}

func TestShutdownTimesOut(t *testing.T) {
	s := NewServer(nil)
	s.RegisterClient("stuck")

	start := time.Now()
	s.Shutdown(300 * time.Millisecond)
	if elapsed := time.Since(start); elapsed < 300*time.Millisecond {
		t.Errorf("Expected shutdown to wait for the timeout, returned after %v", elapsed)
	}
}
